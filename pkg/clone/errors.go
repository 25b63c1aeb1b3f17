package clone

import (
	"errors"
	"fmt"
)

// Sentinel errors for the clone workflow. Each failure is fatal to the
// invocation; nothing is retried.
var (
	// ErrInvalidSpec is returned for a malformed package spec or version:
	// an empty version string, an unparsable constraint, or a version
	// embedded in the spec combined with an explicit --version flag.
	ErrInvalidSpec = errors.New("invalid package spec")

	// ErrNoMatchingVersion is returned when the version constraint matched
	// none of the registry's published versions.
	ErrNoMatchingVersion = errors.New("no matching version")

	// ErrNoRepository is returned when an explicit VCS method was requested
	// but the registry declared neither a repository nor a homepage.
	ErrNoRepository = errors.New("no repository declared on crates.io")

	// ErrVersionWithVCS is returned when a version constraint is combined
	// with a VCS method; versions only select crate archives.
	ErrVersionWithVCS = errors.New("version selection is not supported for VCS methods")

	// ErrExtraArguments is returned when extra pass-through arguments are
	// combined with the crate method; archive downloads accept none.
	ErrExtraArguments = errors.New("crate downloads take no extra arguments")

	// ErrArchiveLayout is returned when an archive entry does not sit under
	// the expected {name}-{version} prefix. This is the safety check that
	// keeps a malicious archive from writing outside the package directory.
	ErrArchiveLayout = errors.New("unexpected archive layout")
)

// ExternalToolError reports that a VCS binary could not be spawned or
// exited non-zero.
type ExternalToolError struct {
	Tool     VCS
	Location string
	Err      error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("`%s clone %s` failed: %v", e.Tool, e.Location, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
