package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ehuss/cargo-clone-crate/pkg/buildinfo"
)

// Execute runs the cargo-clone CLI and returns an error if the clone
// fails. This is the main entry point for the application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool
	opts := defaultCloneOpts()

	root := &cobra.Command{
		Use:   "cargo-clone [flags] <spec> [-- <args>...]",
		Short: "Fetch the source of a crate published on crates.io",
		Long: `cargo-clone fetches the source of a published crate, either by
downloading and unpacking the released .crate archive or by cloning the
crate's declared repository with the right version-control tool.

The spec may embed a version after ':' or '@' (e.g. serde:1.0.193), or the
version can be given separately with --vers. Arguments after -- are passed
through to the VCS clone command.

Examples:
  cargo-clone serde                      # latest version, auto-detect method
  cargo-clone serde:^1.0                 # highest 1.x release archive
  cargo-clone --vers 1.0.193 serde       # exact version archive
  cargo-clone --method git serde         # force git clone
  cargo-clone --method git serde -- --depth 1`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.spec = args[0]
			opts.extra = args[1:]
			return runClone(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.Flags().StringVarP(&opts.method, "method", "m", "auto", "method to fetch the package (crate, git, hg, pijul, fossil, auto)")
	root.Flags().StringVar(&opts.version, "vers", "", "version to download (exact or semver range)")
	root.Flags().StringVarP(&opts.path, "path", "p", ".", "destination directory (must exist)")
	root.Flags().StringVar(&opts.configPath, "config", "", "config file (default: user config dir)")

	return root.ExecuteContext(ctx)
}
