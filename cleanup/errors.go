// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cleanup

import (
	"errors"
	"fmt"
)

// ErrCleanupFailed is matched by errors.Is for every error returned from RunAll.
var ErrCleanupFailed = errors.New("failed to clean up all resources")

// AggregateError is returned by RunAll when one or more operations failed.
// Cause holds the first failure only; later failures are logged and otherwise discarded.
type AggregateError struct {
	Cause  error // The failure of the first failing operation
	Failed int   // Number of operations that failed
	Total  int   // Number of operations that were attempted
}

// NewAggregateError creates a new AggregateError with the given first cause and counts.
func NewAggregateError(cause error, failed, total int) *AggregateError {
	return &AggregateError{
		Cause:  cause,
		Failed: failed,
		Total:  total,
	}
}

// Error implements the error interface for AggregateError.
func (e *AggregateError) Error() string {
	return fmt.Sprintf("%s (%d of %d failed): %v", ErrCleanupFailed.Error(), e.Failed, e.Total, e.Cause)
}

// Unwrap returns the first failure.
func (e *AggregateError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrCleanupFailed.
func (e *AggregateError) Is(target error) bool {
	return target == ErrCleanupFailed
}

// PanicError is the failure recorded for an operation that panicked.
// It is constructed with the value that caused the panic.
type PanicError struct {
	v any
}

// NewPanicError creates a new PanicError with the given value.
func NewPanicError(v any) error {
	return &PanicError{v: v}
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	prefix := "cleanup operation panic:"

	switch x := e.v.(type) {
	case string:
		return fmt.Sprintf("%s %s", prefix, x)
	case error:
		return fmt.Sprintf("%s %s", prefix, x.Error())
	default:
		return fmt.Sprintf("%s %v", prefix, x)
	}
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.v.(error); ok {
		return err
	}

	return nil
}

// Value returns the value passed to panic.
func (e *PanicError) Value() any {
	return e.v
}
