// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cleanups/cleanup"
	"github.com/spf13/afero"
)

// FS is the filesystem the remove and glob steps operate on.
var FS = afero.NewOsFs()

// RunCommand runs argv in dir for exec steps. It is a variable so tests can replace it.
var RunCommand = runCommand

var (
	// ErrPathNotFound is returned by a remove step with must_exist set when the path is missing.
	ErrPathNotFound = errors.New("path does not exist")
	// ErrNoMatches is returned by a glob step with must_exist set when nothing matched.
	ErrNoMatches = errors.New("pattern matched no paths")
	// ErrCommandFailed is returned when an exec step's command fails.
	ErrCommandFailed = errors.New("cleanup command failed")
)

// AppendTo appends one labelled operation per step to b, in plan order.
// The plan should be validated first; an invalid step yields an operation that fails.
func (p *Plan) AppendTo(b *cleanup.Batch) *cleanup.Batch {
	for i, s := range slices.All(p.Steps) {
		b.AndLabeled(s.Label(p.Name), p.operation(i, s))
	}

	return b
}

// Batch returns a new batch holding the plan's steps.
func (p *Plan) Batch() *cleanup.Batch {
	return p.AppendTo(cleanup.Empty())
}

func (p *Plan) operation(i int, s Step) cleanup.Func {
	if err := p.validateStep(i, s); err != nil {
		return func() error { return err }
	}

	switch s.Type {
	case TypeRemove:
		path := p.resolve(s.Path)
		return func() error { return removePath(path, s.MustExist) }
	case TypeGlob:
		pattern := p.resolve(s.Pattern)
		return func() error { return removeGlob(pattern, s.MustExist) }
	default:
		dir := p.resolve(s.Dir)
		if dir == "" {
			dir = p.BaseDir
		}

		argv := slices.Clone(s.Command)

		return func() error { return RunCommand(dir, argv) }
	}
}

func removePath(path string, mustExist bool) error {
	if mustExist {
		exists, err := afero.Exists(FS, path)
		if err != nil {
			return err
		}

		if !exists {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
	}

	return FS.RemoveAll(path)
}

func removeGlob(pattern string, mustExist bool) error {
	matches, err := afero.Glob(FS, pattern)
	if err != nil {
		return err
	}

	if len(matches) == 0 && mustExist {
		return fmt.Errorf("%w: %s", ErrNoMatches, pattern)
	}

	var merr *multierror.Error

	for m := range slices.Values(matches) {
		if err := FS.RemoveAll(m); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	return merr.ErrorOrNil()
}

func runCommand(dir string, argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec
	cmd.Dir = dir
	cmd.Env = os.Environ()

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%w: %s: %w", ErrCommandFailed, strings.Join(argv, " "), err)
		}

		return fmt.Errorf("%w: %s: %w: %s", ErrCommandFailed, strings.Join(argv, " "), err, msg)
	}

	return nil
}
