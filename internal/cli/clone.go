package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ehuss/cargo-clone-crate/internal/config"
	"github.com/ehuss/cargo-clone-crate/pkg/buildinfo"
	"github.com/ehuss/cargo-clone-crate/pkg/clone"
	"github.com/ehuss/cargo-clone-crate/pkg/hosting"
	"github.com/ehuss/cargo-clone-crate/pkg/registry"
)

// cloneOpts holds the command-line flags and arguments for a clone.
type cloneOpts struct {
	spec       string   // package spec, positional
	method     string   // --method token
	version    string   // --vers flag
	path       string   // --path destination directory
	configPath string   // --config file path
	extra      []string // pass-through args after --
}

func defaultCloneOpts() cloneOpts {
	return cloneOpts{method: "auto", path: "."}
}

// runClone wires the registry client, hosting detector, and subprocess
// runner into a Cloner and executes one clone request.
func runClone(ctx context.Context, opts cloneOpts) error {
	logger := loggerFromContext(ctx)

	method, err := clone.ParseMethod(opts.method)
	if err != nil {
		return err
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath, config.Default(buildinfo.UserAgent()))
	if err != nil {
		return err
	}

	// The destination is caller-owned: it must exist already and is never
	// created here.
	if info, err := os.Stat(opts.path); err != nil {
		return fmt.Errorf("destination directory %s: %w", opts.path, err)
	} else if !info.IsDir() {
		return fmt.Errorf("destination %s is not a directory", opts.path)
	}

	cloner := &clone.Cloner{
		Registry: registry.NewClient(cfg.RegistryURL, cfg.UserAgent, cfg.HTTPTimeout),
		Detector: hosting.NewDetector(cfg.Hosting()),
		Runner:   clone.ExecRunner{},
		Logger: func(format string, args ...any) {
			logger.Infof(format, args...)
		},
	}

	logger.Debugf("resolving %s (method %s)", opts.spec, method)
	res, err := cloner.Clone(ctx, clone.Request{
		Spec:    opts.spec,
		Version: opts.version,
		Method:  method,
		Extra:   opts.extra,
		Dir:     opts.path,
	})
	if err != nil {
		return err
	}

	if res.Decision.Crate {
		for _, entry := range res.Entries {
			printEntry(entry)
		}
		printSuccess("Unpacked %s %s (%d entries)",
			styleHighlight.Render(res.Name), res.Version, len(res.Entries))
	} else {
		printSuccess("Cloned %s %s %s",
			styleHighlight.Render(res.Name), iconArrow,
			styleLink.Render(res.Decision.Target.Location))
	}
	return nil
}
