package clone

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ehuss/cargo-clone-crate/pkg/registry"
)

// Registry is the slice of the crates.io client the cloner needs. The
// concrete implementation is [registry.Client].
type Registry interface {
	Metadata(ctx context.Context, name string) (*registry.Metadata, error)
	Download(ctx context.Context, dlPath string) (io.ReadCloser, error)
	DownloadURL(dlPath string) string
}

// Request describes one clone invocation. All fields are request-scoped;
// a Request is built, executed, and discarded.
type Request struct {
	Spec    string   // package spec, optionally `name:version` or `name@version`
	Version string   // explicit version flag; conflicts with an embedded version
	Method  Method   // requested acquisition method, MethodAuto to detect
	Extra   []string // pass-through arguments for the VCS tool
	Dir     string   // destination directory; must already exist
}

// Result reports what a successful clone did.
type Result struct {
	Name     string
	Decision Decision
	Version  string   // selected version, crate downloads only
	Entries  []string // archive entry paths written, crate downloads only
}

// Cloner orchestrates a single clone: registry lookup, method and version
// resolution, then archive extraction or a VCS subprocess.
//
// The zero value is not usable; populate Registry, Detector, and Runner.
// Logger receives human-oriented progress lines and may be nil.
type Cloner struct {
	Registry Registry
	Detector Detector
	Runner   Runner
	Logger   func(format string, args ...any)
}

// Clone performs the full resolution and acquisition flow for req.
//
// Validation order is fixed: spec-shape errors first (conflicting
// versions, unparsable constraints), then method/argument-shape errors
// (version with a VCS method, extra arguments with the crate method), and
// only then the registry lookup and repository checks. A repo-less crate
// requested as `git --version 1.0` therefore reports the version error,
// not the missing repository.
func (c *Cloner) Clone(ctx context.Context, req Request) (*Result, error) {
	spec, err := ParseSpec(req.Spec)
	if err != nil {
		return nil, err
	}
	if spec.Version != "" && req.Version != "" {
		return nil, fmt.Errorf("%w: cannot specify both %q and an explicit version %s", ErrInvalidSpec, req.Spec, req.Version)
	}

	rawVersion := spec.Version
	if rawVersion == "" {
		rawVersion = req.Version
	}
	var constraint *semver.Constraints
	if rawVersion != "" {
		constraint, err = ParseConstraint(rawVersion)
		if err != nil {
			return nil, err
		}
	}

	if _, isVCS := req.Method.vcs(); isVCS && constraint != nil {
		return nil, fmt.Errorf("%w (method %s)", ErrVersionWithVCS, req.Method)
	}
	if req.Method == MethodCrate && len(req.Extra) > 0 {
		return nil, ErrExtraArguments
	}

	meta, err := c.Registry.Metadata(ctx, spec.Name)
	if err != nil {
		return nil, err
	}

	decision, err := ResolveMethod(ctx, req.Method, c.Detector, meta.Location, constraint != nil)
	if err != nil {
		return nil, err
	}

	res := &Result{Name: spec.Name, Decision: decision}
	if decision.Crate {
		if len(req.Extra) > 0 {
			return nil, ErrExtraArguments
		}
		if err := c.cloneCrate(ctx, res, meta, constraint, req.Dir); err != nil {
			return nil, err
		}
		return res, nil
	}

	c.logf("Running: %s clone %s %s", decision.Target.VCS, decision.Target.Location, strings.Join(req.Extra, " "))
	if err := c.Runner.Run(ctx, decision.Target.VCS, decision.Target.Location, req.Extra, req.Dir); err != nil {
		return nil, err
	}
	return res, nil
}

// cloneCrate downloads and extracts the selected .crate archive. The
// archive's entries all sit under `{name-lowercased}-{version}/`, which is
// also the safety prefix enforced during extraction.
func (c *Cloner) cloneCrate(ctx context.Context, res *Result, meta *registry.Metadata, constraint *semver.Constraints, dir string) error {
	selected, err := SelectVersion(constraint, meta.Versions)
	if err != nil {
		return err
	}
	res.Version = selected.Num

	c.logf("Downloading `%s`", c.Registry.DownloadURL(selected.DLPath))
	body, err := c.Registry.Download(ctx, selected.DLPath)
	if err != nil {
		return err
	}
	defer body.Close()

	prefix := strings.ToLower(res.Name) + "-" + selected.Num
	res.Entries, err = Extract(body, prefix, dir)
	if err != nil {
		return fmt.Errorf("extracting %s-%s: %w", res.Name, selected.Num, err)
	}
	return nil
}

func (c *Cloner) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger(format, args...)
	}
}
