// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger on a context.Context.
//
// The level of the package loggers is read from the CLEANUPS_LOG_LEVEL environment variable
// ("DEBUG", "INFO", "WARN" or "ERROR"; anything else means "WARN") and can be changed at
// runtime through LevelVar. The default logger writes human-readable lines to stderr using a
// pretty handler.
package ctxlog
