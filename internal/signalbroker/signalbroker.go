// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker listens for OS termination signals so a hung
// agent-browser child can be abandoned cleanly. The first signal of a given
// type is logged and otherwise ignored, letting an in-flight batch finish;
// the second signal of the same type cancels the context, which kills any
// running subprocess.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/agentbrowser/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New creates a channel notified on signals that should terminate the
// process. With no arguments it subscribes to the default termination set.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Watch monitors the signal channel and cancels the context on the second
// signal of any given type. It returns when the channel is closed or the
// context is cancelled.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Info(ctx, "received second signal, terminating", "signal", sig.String())
			signal.Stop(sigCh)
			cancel()

			return
		}

		seen[sig] = struct{}{}

		ctxlog.Info(ctx, "received signal, send again to terminate", "signal", sig.String())
	}
}
