// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cleanups/cleanup"
	"github.com/matt-FFFFFF/cleanups/internal/ctxlog"
	"github.com/matt-FFFFFF/cleanups/internal/fetch"
)

// ErrLoadPlan is returned when one or more plan files cannot be loaded.
var ErrLoadPlan = errors.New("failed to load cleanup plans")

// getPlan retrieves plan file contents. It is a variable so tests can replace it.
var getPlan = fetch.Get

// Load fetches, parses and validates the plan at src.
// When the plan has no basedir, baseDir is used.
func Load(ctx context.Context, src, baseDir string) (*Plan, error) {
	data, err := getPlan(ctx, src)
	if err != nil {
		return nil, err
	}

	p, err := Parse(fetch.FileName(src), data)
	if err != nil {
		return nil, err
	}

	if p.BaseDir == "" {
		p.BaseDir = baseDir
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "loaded cleanup plan", "source", src, "name", p.Name, "steps", len(p.Steps))

	return p, nil
}

// LoadBatch loads every plan and appends their steps, in argument order, to a single batch.
// All plans are loaded before any error is returned, so every broken file is reported.
func LoadBatch(ctx context.Context, srcs []string, baseDir string) (*cleanup.Batch, error) {
	var merr *multierror.Error

	b := cleanup.Empty()

	for src := range slices.Values(srcs) {
		p, err := Load(ctx, src, baseDir)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", src, err))
			continue
		}

		p.AppendTo(b)
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, errors.Join(ErrLoadPlan, err)
	}

	return b, nil
}
