// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cleanup runs a batch of independent cleanup operations with a single call.
//
// Every operation in a batch is attempted, in the order it was added, even when earlier
// operations fail. When at least one operation fails, RunAll returns an *AggregateError whose
// cause is the first failure; every individual failure is logged as it happens.
// RunAllQuietly performs the same pass but only logs the aggregate failure.
//
// An example usage may look like this:
//
//	err := cleanup.OfClosers(conn, file).
//		And(func() error { return os.RemoveAll(tmpDir) }).
//		AndLabeled("flush metrics", metrics.Flush).
//		RunAll(ctx)
//
// Nil operations are silently dropped. A batch is not safe for concurrent use.
package cleanup
