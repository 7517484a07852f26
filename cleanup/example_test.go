// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cleanup_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/matt-FFFFFF/cleanups/cleanup"
)

type resource string

func (r resource) Close() error {
	fmt.Println("closing", string(r))

	if r == "database" {
		return errors.New("connection reset")
	}

	return nil
}

func ExampleBatch_RunAll() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := cleanup.OfClosers(resource("cache"), resource("database")).
		And(func() error {
			fmt.Println("removing temp dir")
			return nil
		}).
		WithLogger(logger).
		RunAll(context.Background())

	fmt.Println(errors.Is(err, cleanup.ErrCleanupFailed))
	fmt.Println(err)
	// Output:
	// closing cache
	// closing database
	// removing temp dir
	// true
	// failed to clean up all resources (1 of 3 failed): connection reset
}

func ExampleBatch_RunAllQuietly() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cleanup.Of(
		func() error { return errors.New("first") },
		nil,
		func() error { return errors.New("second") },
	).WithLogger(logger).RunAllQuietly(context.Background())

	fmt.Println("done")
	// Output:
	// done
}

func ExampleResults_Errors() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	results := cleanup.Empty().
		AndLabeled("flush", func() error { return errors.New("flush failed") }).
		AndLabeled("close", func() error { return errors.New("close failed") }).
		WithLogger(logger).
		Run(context.Background())

	for _, res := range results.Failed() {
		fmt.Printf("%s: %v\n", res.Label, res.Err)
	}

	fmt.Println(results.Err())
	// Output:
	// flush: flush failed
	// close: close failed
	// failed to clean up all resources (2 of 2 failed): flush failed
}
