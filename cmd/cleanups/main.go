// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the cleanups command-line application.
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/cleanups/cmd"
	"github.com/matt-FFFFFF/cleanups/internal/ctxlog"
	"github.com/matt-FFFFFF/cleanups/internal/signalbroker"
)

// exitCodeAborted is used when a second termination signal aborts a cleanup pass.
const exitCodeAborted = 130

func main() {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, func(os.Signal) {
		os.Exit(exitCodeAborted)
	})

	err := cmd.RootCmd.Run(ctx, os.Args)

	signalbroker.Stop(sigCh)

	if err != nil {
		ctxlog.Logger(ctx).Error("command failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Info("command completed successfully")
}
