package clone

import "fmt"

// Method is the acquisition method as requested by the user. MethodAuto is
// request-only: it is resolved to a concrete decision before execution and
// can never appear in a [Decision].
type Method string

const (
	MethodAuto   Method = "auto"
	MethodCrate  Method = "crate"
	MethodGit    Method = "git"
	MethodHg     Method = "hg"
	MethodPijul  Method = "pijul"
	MethodFossil Method = "fossil"
)

// Methods lists every accepted method token, in help-text order.
var Methods = []Method{MethodCrate, MethodGit, MethodHg, MethodPijul, MethodFossil, MethodAuto}

// ParseMethod validates a user-supplied method token.
func ParseMethod(token string) (Method, error) {
	for _, m := range Methods {
		if token == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown method %q (expected one of crate, git, hg, pijul, fossil, auto)", ErrInvalidSpec, token)
}

// vcs returns the version-control tool for an explicit VCS method, or
// ok=false for crate and auto.
func (m Method) vcs() (VCS, bool) {
	switch m {
	case MethodGit:
		return Git, true
	case MethodHg:
		return Mercurial, true
	case MethodPijul:
		return Pijul, true
	case MethodFossil:
		return Fossil, true
	}
	return "", false
}

// VCS identifies a concrete version-control tool. The value doubles as the
// name of the binary to spawn. It is a separate type from [Method] so that
// "auto" is statically excluded from anything executable.
type VCS string

const (
	Git       VCS = "git"
	Mercurial VCS = "hg"
	Pijul     VCS = "pijul"
	Fossil    VCS = "fossil"
)

// Target is a resolved version-control destination: which tool to run and
// the clone URL to hand it.
type Target struct {
	VCS      VCS
	Location string
}

// Decision is the terminal outcome of method resolution: either a crate
// archive download (Crate true, Target zero) or a VCS clone.
type Decision struct {
	Crate  bool
	Target Target
}
