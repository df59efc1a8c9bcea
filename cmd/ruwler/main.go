package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruwler/ruwler-go/errors"
	"github.com/ruwler/ruwler-go/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps setup failures to 2 and everything else to 1.
func exitCode(err error) int {
	if errors.IsSetupCode(errors.CodeOf(err)) {
		return 2
	}
	return 1
}
