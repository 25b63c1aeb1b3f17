package clone

import (
	"context"
	"os"
	"os/exec"
)

// Runner spawns an external version-control tool. It exists so the
// resolution logic can be tested without real binaries; ExecRunner is the
// production implementation.
type Runner interface {
	// Run executes `tool clone location extra...` in dir, wiring the
	// child's stdout and stderr to the current process.
	Run(ctx context.Context, tool VCS, location string, extra []string, dir string) error
}

// ExecRunner runs VCS tools as real subprocesses via os/exec.
type ExecRunner struct{}

// Run blocks until the child exits. Cancellation of ctx kills the child;
// there is no other timeout. The child's output is passed through
// unmodified so clone progress looks exactly as it would when run by hand.
func (ExecRunner) Run(ctx context.Context, tool VCS, location string, extra []string, dir string) error {
	args := append([]string{"clone", location}, extra...)
	cmd := exec.CommandContext(ctx, string(tool), args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &ExternalToolError{Tool: tool, Location: location, Err: err}
	}
	return nil
}
