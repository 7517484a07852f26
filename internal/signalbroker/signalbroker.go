// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker shields a running cleanup pass from signals that would otherwise end the
// process half way through. Subscribe with New, hand the channel to Watch and release it with Stop.
//
// SIGQUIT is left alone so that a stuck cleanup can still be killed with a goroutine dump.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/cleanups/internal/ctxlog"
)

// DefaultSignals are the signals New subscribes to when none are given: interrupt, terminate
// and hangup, the last being sent when the controlling terminal goes away mid-cleanup.
var DefaultSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

// New subscribes to sigs, or DefaultSignals when sigs is empty, and returns the channel they
// are delivered on.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	if len(sigs) == 0 {
		sigs = DefaultSignals
	}

	ch := make(chan os.Signal, len(sigs))
	signal.Notify(ch, sigs...)

	ctxlog.Debug(ctx, "subscribed to signals", "signals", sigs)

	return ch
}

// Stop stops signal delivery to ch and closes it, which ends a running Watch.
func Stop(ch chan os.Signal) {
	signal.Stop(ch)
	close(ch)
}
