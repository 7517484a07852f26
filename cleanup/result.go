// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cleanup

import (
	"slices"

	"github.com/hashicorp/go-multierror"
)

// Status is the outcome of a single cleanup operation.
type Status int

const (
	// StatusSuccess means the operation returned without error.
	StatusSuccess Status = iota
	// StatusFailed means the operation returned an error or panicked.
	StatusFailed
)

// String implements fmt.Stringer for Status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of running one operation of a batch.
type Result struct {
	Index  int    // Position of the operation in the batch
	Label  string // Label of the operation
	Status Status // Outcome of the operation
	Err    error  // Failure, if any
}

// Results holds the outcome of every operation of a batch, in insertion order.
type Results []*Result

// HasError returns true if any of the operations failed.
func (r Results) HasError() bool {
	return slices.ContainsFunc(r, func(res *Result) bool {
		return res.Status == StatusFailed
	})
}

// Failed returns the results of the operations that failed, in insertion order.
func (r Results) Failed() Results {
	var failed Results

	for res := range slices.Values(r) {
		if res.Status == StatusFailed {
			failed = append(failed, res)
		}
	}

	return failed
}

// First returns the failure of the lowest-index failing operation, or nil.
func (r Results) First() error {
	for res := range slices.Values(r) {
		if res.Status == StatusFailed {
			return res.Err
		}
	}

	return nil
}

// Err returns nil if every operation succeeded, otherwise an *AggregateError
// whose cause is the first failure.
func (r Results) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}

	return NewAggregateError(failed[0].Err, len(failed), len(r))
}

// Errors returns every failure combined into a *multierror.Error, or nil if there were none.
// Unlike Err, it keeps the failures of later operations.
func (r Results) Errors() error {
	var merr *multierror.Error

	for res := range slices.Values(r.Failed()) {
		merr = multierror.Append(merr, res.Err)
	}

	return merr.ErrorOrNil()
}
