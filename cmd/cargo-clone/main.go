package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ehuss/cargo-clone-crate/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		code := exitCode(ctx, err)
		if code != 130 {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(code)
	}
}

// exitCode maps a failed run to its process exit status. Interruption
// exits 130 per shell convention, whether the cancellation surfaced from
// our own code or from a spawned VCS tool killed by the signal.
func exitCode(ctx context.Context, err error) int {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return 130
	}
	return 1
}
