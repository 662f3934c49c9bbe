package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/speich/dGraph/internal/cli"
	dgerrors "github.com/speich/dGraph/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, dgerrors.UserMessage(err))
		os.Exit(exitCode(err))
	}
}

// exitCode maps input problems to 2 and everything else to 1.
func exitCode(err error) int {
	switch dgerrors.GetCode(err) {
	case dgerrors.ErrCodeInvalidInput, dgerrors.ErrCodeInvalidGraph, dgerrors.ErrCodeInvalidLayer,
		dgerrors.ErrCodeInvalidEdge, dgerrors.ErrCodeInvalidFormat, dgerrors.ErrCodeInvalidConfig,
		dgerrors.ErrCodeFileNotFound, dgerrors.ErrCodeNodeNotFound:
		return 2
	default:
		return 1
	}
}
