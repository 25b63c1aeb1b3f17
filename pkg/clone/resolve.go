package clone

import (
	"context"
	"fmt"
)

// Detector classifies a declared repository URL into a VCS target. It is
// satisfied by [hosting.Detector]; the indirection keeps method resolution
// free of network access in tests.
type Detector interface {
	Detect(ctx context.Context, location string) (Target, error)
}

// ResolveMethod turns the requested method into a terminal decision.
//
// Under auto, a version constraint forces the crate archive (versions only
// exist in the registry), a declared repository is classified by the
// detector, and a crate with no repository falls back to the archive.
//
// An explicit VCS method trusts the user: the declared location is used
// verbatim with no URL rewriting, because a user who names `git` already
// knows the URL works with `git clone` as-is. It fails with
// [ErrNoRepository] when the registry declared no location at all.
func ResolveMethod(ctx context.Context, method Method, detector Detector, location string, hasConstraint bool) (Decision, error) {
	switch method {
	case MethodAuto:
		if hasConstraint || location == "" {
			return Decision{Crate: true}, nil
		}
		target, err := detector.Detect(ctx, location)
		if err != nil {
			return Decision{}, err
		}
		return Decision{Target: target}, nil

	case MethodCrate:
		return Decision{Crate: true}, nil

	default:
		vcs, ok := method.vcs()
		if !ok {
			return Decision{}, fmt.Errorf("%w: unknown method %q", ErrInvalidSpec, method)
		}
		if location == "" {
			return Decision{}, ErrNoRepository
		}
		return Decision{Target: Target{VCS: vcs, Location: location}}, nil
	}
}
