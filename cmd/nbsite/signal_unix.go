//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyContext returns the build context, canceled on Ctrl-C or SIGTERM.
// Files not yet started then fail with the context error; pages already
// written stay in the output directory.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
