// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/cleanups/internal/ctxlog"
)

// Watch reads sigCh until it is closed.
// The first signal of a given type is logged and otherwise ignored, so that a running cleanup
// pass can finish. The second signal of the same type calls abort and returns.
func Watch(ctx context.Context, sigCh <-chan os.Signal, abort func(os.Signal)) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Warn(ctx, "watchdog", "detail", "received second signal of type, aborting cleanup", "signal", sig.String())
			abort(sig)

			return
		}

		ctxlog.Warn(ctx, "watchdog", "detail", "cleanup in progress, send the signal again to abort", "signal", sig.String())

		seen[sig] = struct{}{}
	}
}
