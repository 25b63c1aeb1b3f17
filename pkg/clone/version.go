package clone

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/ehuss/cargo-clone-crate/pkg/registry"
)

// SelectVersion picks the version to download: the semver-maximum of the
// published versions satisfying the constraint, or of all published
// versions when the constraint is nil.
//
// A version string the registry published but semver cannot parse is a
// malformed registry response and fails the whole selection; it is not a
// user error. An empty result after filtering is [ErrNoMatchingVersion].
//
// Selection is deterministic regardless of input order: version numbers
// are unique within a crate, so the maximum is unambiguous.
func SelectVersion(constraint *semver.Constraints, versions []registry.Version) (registry.Version, error) {
	var (
		best    registry.Version
		bestVer *semver.Version
	)
	for _, v := range versions {
		parsed, err := semver.StrictNewVersion(v.Num)
		if err != nil {
			return registry.Version{}, fmt.Errorf("registry returned unparsable version %q: %w", v.Num, err)
		}
		if constraint != nil && !constraint.Check(parsed) {
			continue
		}
		if bestVer == nil || parsed.GreaterThan(bestVer) {
			best, bestVer = v, parsed
		}
	}
	if bestVer == nil {
		return registry.Version{}, ErrNoMatchingVersion
	}
	return best, nil
}
