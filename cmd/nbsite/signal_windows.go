//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext returns the build context, canceled on Ctrl-C.
// SIGTERM does not exist on Windows.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
