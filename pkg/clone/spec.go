package clone

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Spec is a user-supplied package identifier, optionally embedding a
// version token after the first `:` or `@` (cargo-style `serde:1.0` and
// npm-style `serde@1.0` are both accepted).
type Spec struct {
	Name    string
	Version string
}

// ParseSpec splits a raw spec string into name and embedded version token.
// The split happens at the first `:` or `@`, whichever comes first; an
// empty name or a separator with nothing after it is an error.
func ParseSpec(raw string) (Spec, error) {
	idx := strings.IndexAny(raw, ":@")
	if idx < 0 {
		if raw == "" {
			return Spec{}, fmt.Errorf("%w: empty spec", ErrInvalidSpec)
		}
		return Spec{Name: raw}, nil
	}

	name, version := raw[:idx], raw[idx+1:]
	if name == "" {
		return Spec{}, fmt.Errorf("%w: missing package name in %q", ErrInvalidSpec, raw)
	}
	if version == "" {
		return Spec{}, fmt.Errorf("%w: empty version in %q", ErrInvalidSpec, raw)
	}
	return Spec{Name: name, Version: version}, nil
}

// rangeChars are the leading characters that mark a version string as a
// range expression rather than an exact version.
const rangeChars = "<>=^~"

// ParseConstraint parses a version string into a constraint.
//
// Strings starting with one of `< > = ^ ~`, or containing `*`, are parsed
// as range expressions. Anything else must be an exact semantic version
// and is normalized to an exactly-equals constraint. The empty string is
// invalid.
func ParseConstraint(raw string) (*semver.Constraints, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty version", ErrInvalidSpec)
	}

	if strings.ContainsAny(raw[:1], rangeChars) || strings.Contains(raw, "*") {
		c, err := semver.NewConstraint(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: bad version range %q: %v", ErrInvalidSpec, raw, err)
		}
		return c, nil
	}

	if _, err := semver.StrictNewVersion(raw); err != nil {
		return nil, fmt.Errorf("%w: bad version %q: %v", ErrInvalidSpec, raw, err)
	}
	c, err := semver.NewConstraint("=" + raw)
	if err != nil {
		return nil, fmt.Errorf("%w: bad version %q: %v", ErrInvalidSpec, raw, err)
	}
	return c, nil
}
