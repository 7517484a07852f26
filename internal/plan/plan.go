// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Step types.
const (
	TypeRemove = "remove" // Remove a file or directory tree
	TypeGlob   = "glob"   // Remove every path matching a pattern
	TypeExec   = "exec"   // Run a command
)

var (
	// ErrInvalidPlan is returned when a plan fails validation.
	ErrInvalidPlan = errors.New("invalid cleanup plan")
	// ErrParsePlan is returned when a plan file cannot be decoded.
	ErrParsePlan = errors.New("failed to parse cleanup plan")
)

// Plan is an ordered list of cleanup steps.
type Plan struct {
	Name    string `yaml:"name"    hcl:"name,optional"`
	BaseDir string `yaml:"basedir" hcl:"basedir,optional"` // Relative paths are resolved against it
	Steps   []Step `yaml:"steps"   hcl:"step,block"`
}

// Step is a single cleanup step of a plan.
type Step struct {
	Type      string   `yaml:"type"       hcl:"type,label"`
	Name      string   `yaml:"name"       hcl:"name,label"`
	Path      string   `yaml:"path"       hcl:"path,optional"`
	Pattern   string   `yaml:"pattern"    hcl:"pattern,optional"`
	Command   []string `yaml:"command"    hcl:"command,optional"`
	Dir       string   `yaml:"dir"        hcl:"dir,optional"`
	MustExist bool     `yaml:"must_exist" hcl:"must_exist,optional"`
}

// ErrInvalidStep describes why a step of a plan is invalid.
type ErrInvalidStep struct {
	Index  int
	Name   string
	Reason string
}

// NewErrInvalidStep creates a new ErrInvalidStep.
func NewErrInvalidStep(index int, name, reason string) *ErrInvalidStep {
	return &ErrInvalidStep{
		Index:  index,
		Name:   name,
		Reason: reason,
	}
}

// Error implements the error interface for ErrInvalidStep.
func (e *ErrInvalidStep) Error() string {
	return fmt.Sprintf("step %d (%q): %s", e.Index+1, e.Name, e.Reason)
}

// Label returns the label used for the step's operation.
func (s Step) Label(planName string) string {
	name := s.Name
	if name == "" {
		name = s.Type
	}

	if planName == "" {
		return name
	}

	return planName + "/" + name
}

// Validate checks every step and reports all problems at once.
func (p *Plan) Validate() error {
	var merr *multierror.Error

	for i, s := range slices.All(p.Steps) {
		if err := p.validateStep(i, s); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidPlan, err)
	}

	return nil
}

// validateStep checks s on its own and then against the plan's base directory,
// so that relative paths climbing out of it cannot reach the filesystem root.
func (p *Plan) validateStep(i int, s Step) error {
	if err := s.validate(i); err != nil {
		return err
	}

	switch s.Type {
	case TypeRemove:
		if isRoot(p.resolve(s.Path)) {
			return NewErrInvalidStep(i, s.Name, "refusing to remove the filesystem root")
		}
	case TypeGlob:
		if pattern := p.resolve(s.Pattern); isRoot(pattern) || isRoot(filepath.Dir(pattern)) {
			return NewErrInvalidStep(i, s.Name, "refusing to remove entries of the filesystem root")
		}
	}

	return nil
}

func isRoot(path string) bool {
	path = filepath.Clean(path)

	return path == filepath.VolumeName(path)+string(filepath.Separator)
}

func (s Step) validate(i int) error {
	switch s.Type {
	case TypeRemove:
		if strings.TrimSpace(s.Path) == "" {
			return NewErrInvalidStep(i, s.Name, "remove step requires a path")
		}

	case TypeGlob:
		if strings.TrimSpace(s.Pattern) == "" {
			return NewErrInvalidStep(i, s.Name, "glob step requires a pattern")
		}

		if _, err := filepath.Match(s.Pattern, ""); err != nil {
			return NewErrInvalidStep(i, s.Name, fmt.Sprintf("invalid pattern %q: %v", s.Pattern, err))
		}
	case TypeExec:
		if len(s.Command) == 0 || s.Command[0] == "" {
			return NewErrInvalidStep(i, s.Name, "exec step requires a command")
		}
	case "":
		return NewErrInvalidStep(i, s.Name, "missing step type")
	default:
		return NewErrInvalidStep(i, s.Name, fmt.Sprintf("unknown step type %q", s.Type))
	}

	return nil
}

// resolve joins path to the plan's base directory when it is relative.
func (p *Plan) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || p.BaseDir == "" {
		return path
	}

	return filepath.Join(p.BaseDir, path)
}
