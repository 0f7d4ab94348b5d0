package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/offsetcurve/internal/cli"
	oerrors "github.com/matzehuels/offsetcurve/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cli.New(os.Stderr, cli.LogInfo).RootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps err to a process exit status: 130 for interrupts, 2 for
// invalid input or configuration, 1 otherwise.
func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return 130 // Standard shell convention for SIGINT
	}
	fmt.Fprintln(os.Stderr, err)
	if oerrors.ClassOf(err) == oerrors.ClassInput {
		return 2
	}
	return 1
}
