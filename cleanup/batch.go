// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cleanup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/matt-FFFFFF/cleanups/internal/ctxlog"
)

// Batch is an ordered collection of cleanup operations.
// The zero value is an empty batch ready to use.
type Batch struct {
	steps  []step
	logger *slog.Logger
}

// Empty returns a batch with no operations.
func Empty() *Batch {
	return &Batch{}
}

// Of returns a new batch holding the given non-nil operations.
func Of(fns ...Func) *Batch {
	return Empty().And(fns...)
}

// OfClosers returns a new batch that closes the given non-nil closers.
func OfClosers(closers ...io.Closer) *Batch {
	return Empty().AndClosers(closers...)
}

// And appends the given operations to the end of the batch, skipping nil ones.
// It returns the batch to allow chaining.
func (b *Batch) And(fns ...Func) *Batch {
	for fn := range slices.Values(fns) {
		b.AndLabeled("", fn)
	}

	return b
}

// AndClosers appends an operation closing each closer, skipping nil ones.
// It returns the batch to allow chaining.
func (b *Batch) AndClosers(closers ...io.Closer) *Batch {
	for c := range slices.Values(closers) {
		fn := Closer(c)
		if fn == nil {
			continue
		}

		b.AndLabeled(closerLabel(c), fn)
	}

	return b
}

// AndLabeled appends a single operation with a label that is used when its outcome is logged.
// A nil fn is skipped. It returns the batch to allow chaining.
func (b *Batch) AndLabeled(label string, fn Func) *Batch {
	if fn == nil {
		return b
	}

	b.steps = append(b.steps, step{label: label, fn: fn})

	return b
}

// WithLogger sets the logger that receives failure reports.
// Without one, the logger carried by the context passed to the run methods is used.
func (b *Batch) WithLogger(logger *slog.Logger) *Batch {
	b.logger = logger
	return b
}

// Len returns the number of operations in the batch.
func (b *Batch) Len() int {
	return len(b.steps)
}

// Labels returns the labels of the operations in insertion order.
func (b *Batch) Labels() []string {
	labels := make([]string, len(b.steps))
	for i := range b.steps {
		labels[i] = b.label(i)
	}

	return labels
}

// Run invokes every operation in insertion order and returns the outcome of each.
// A failing operation never stops the pass. Each failure is logged once at error level.
// The context supplies the logger only; cancellation is not observed.
//
// The batch is not cleared, so a second call runs every operation again.
func (b *Batch) Run(ctx context.Context) Results {
	logger := b.loggerFor(ctx)
	results := make(Results, 0, len(b.steps))

	for i, s := range slices.All(b.steps) {
		label := b.label(i)

		logger.Debug("running cleanup operation", "index", i, "label", label)

		res := &Result{
			Index:  i,
			Label:  label,
			Status: StatusSuccess,
		}

		if err := invoke(s.fn); err != nil {
			logger.Error("failed to run cleanup operation", "index", i, "label", label, "error", err)

			res.Status = StatusFailed
			res.Err = err
		}

		results = append(results, res)
	}

	return results
}

// RunAll invokes every operation in insertion order.
// It returns nil if all of them succeeded, otherwise an *AggregateError
// whose cause is the failure of the first failing operation.
func (b *Batch) RunAll(ctx context.Context) error {
	return b.Run(ctx).Err()
}

// RunAllQuietly behaves like RunAll but never returns an error.
// The aggregate failure, if any, is logged at warning level.
func (b *Batch) RunAllQuietly(ctx context.Context) {
	if err := b.RunAll(ctx); err != nil {
		b.loggerFor(ctx).Warn("failed to clean up all of the given operations", "error", err)
	}
}

func (b *Batch) label(i int) string {
	if l := b.steps[i].label; l != "" {
		return l
	}

	return fmt.Sprintf("operation %d", i+1)
}

func (b *Batch) loggerFor(ctx context.Context) *slog.Logger {
	if b.logger != nil {
		return b.logger
	}

	return ctxlog.Logger(ctx)
}

// invoke runs fn, converting a panic into a *PanicError.
func invoke(fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(r)
		}
	}()

	return fn()
}
