/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Command readme-agent serves an agent that writes README files for GitHub
// repositories.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); !interrupted(ctx, err) && err != nil {
		os.Exit(1)
	}
}

// interrupted reports whether err is the cancellation caused by a shutdown
// signal on ctx. An interrupted command exits 0.
func interrupted(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil && errors.Is(err, context.Canceled)
}
