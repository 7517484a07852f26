// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/cleanups/cleanup"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func memFS(t *testing.T, files ...string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("content"), 0o644))
	}

	stubs := gostub.Stub(&FS, fs)
	t.Cleanup(stubs.Reset)

	return fs
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
name: build
basedir: /work
steps:
  - type: remove
    name: dist
    path: dist
    must_exist: true
  - type: glob
    name: logs
    pattern: "*.log"
  - type: exec
    name: prune
    command: ["docker", "image", "prune", "-f"]
    dir: tools
`)

	p, err := Parse("plan.yaml", data)
	require.NoError(t, err)

	assert.Equal(t, "build", p.Name)
	assert.Equal(t, "/work", p.BaseDir)
	require.Len(t, p.Steps, 3)
	assert.Equal(t, Step{Type: TypeRemove, Name: "dist", Path: "dist", MustExist: true}, p.Steps[0])
	assert.Equal(t, "*.log", p.Steps[1].Pattern)
	assert.Equal(t, []string{"docker", "image", "prune", "-f"}, p.Steps[2].Command)
	assert.Equal(t, "tools", p.Steps[2].Dir)
	assert.NoError(t, p.Validate())
}

func TestParseYAML_UnknownField(t *testing.T) {
	_, err := Parse("plan.yml", []byte("steps:\n  - type: remove\n    paht: dist\n"))
	assert.ErrorIs(t, err, ErrParsePlan)
}

func TestParseHCL(t *testing.T) {
	stubs := gostub.StubFunc(&Environ, []string{"HOME=/home/test", "=ignored", "broken"})
	defer stubs.Reset()

	data := []byte(`
name = "build"

step "remove" "dist" {
  path       = "${env.HOME}/dist"
  must_exist = true
}

step "exec" "prune" {
  command = ["docker", "image", "prune", "-f"]
}
`)

	p, err := Parse("plan.HCL", data)
	require.NoError(t, err)

	assert.Equal(t, "build", p.Name)
	require.Len(t, p.Steps, 2)
	assert.Equal(t, Step{Type: TypeRemove, Name: "dist", Path: "/home/test/dist", MustExist: true}, p.Steps[0])
	assert.Equal(t, TypeExec, p.Steps[1].Type)
	assert.Equal(t, []string{"docker", "image", "prune", "-f"}, p.Steps[1].Command)
}

func TestParseHCL_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "syntax error", data: `step "remove" {`},
		{name: "missing label", data: `step "remove" { path = "x" }`},
		{name: "unknown attribute", data: `step "remove" "x" { paht = "x" }`},
		{name: "unknown variable", data: `step "remove" "x" { path = var.nope }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("plan.hcl", []byte(tt.data))
			assert.ErrorIs(t, err, ErrParsePlan)
		})
	}
}

func TestValidate(t *testing.T) {
	p := &Plan{Steps: []Step{
		{Type: TypeRemove, Name: "ok", Path: "dist"},
		{Type: TypeRemove, Name: "no path"},
		{Type: TypeRemove, Name: "root", Path: "/"},
		{Type: TypeGlob, Name: "no pattern"},
		{Type: TypeGlob, Name: "bad pattern", Pattern: "["},
		{Type: TypeExec, Name: "no command"},
		{Name: "no type"},
		{Type: "rollback", Name: "unknown"},
	}}

	err := p.Validate()
	require.ErrorIs(t, err, ErrInvalidPlan)

	var stepErr *ErrInvalidStep
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 1, stepErr.Index, "first invalid step should be reported first")

	for _, name := range []string{"no path", "root", "no pattern", "bad pattern", "no command", "no type", "unknown"} {
		assert.Contains(t, err.Error(), name)
	}

	assert.NotContains(t, err.Error(), `"ok"`)
}

func TestValidate_ResolvedRoot(t *testing.T) {
	tests := []struct {
		name    string
		baseDir string
		step    Step
		wantErr bool
	}{
		{name: "remove climbing out of base dir", baseDir: "/work/project", step: Step{Type: TypeRemove, Path: "../.."}, wantErr: true},
		{name: "remove dot in root base dir", baseDir: "/", step: Step{Type: TypeRemove, Path: "."}, wantErr: true},
		{name: "glob climbing out of base dir", baseDir: "/work/project", step: Step{Type: TypeGlob, Pattern: "../../*"}, wantErr: true},
		{name: "glob of root entries", step: Step{Type: TypeGlob, Pattern: "/*"}, wantErr: true},
		{name: "remove parent inside base dir", baseDir: "/work/project", step: Step{Type: TypeRemove, Path: "../other"}},
		{name: "glob in base dir", baseDir: "/work/project", step: Step{Type: TypeGlob, Pattern: "*.log"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Plan{BaseDir: tt.baseDir, Steps: []Step{tt.step}}

			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPlan)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBatch_ResolvedRootIsNotRemoved(t *testing.T) {
	fs := memFS(t, "/keep")

	p := &Plan{BaseDir: "/work/project", Steps: []Step{{Type: TypeRemove, Name: "escape", Path: "../.."}}}

	results := p.Batch().WithLogger(discard).Run(context.Background())
	require.Len(t, results, 1)

	var stepErr *ErrInvalidStep
	require.ErrorAs(t, results[0].Err, &stepErr)

	exists, err := afero.Exists(fs, "/keep")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "build/dist", Step{Type: TypeRemove, Name: "dist"}.Label("build"))
	assert.Equal(t, "remove", Step{Type: TypeRemove}.Label(""))
}

func TestBatch_RemoveAndGlob(t *testing.T) {
	fs := memFS(t,
		"/work/dist/app",
		"/work/a.log",
		"/work/b.log",
		"/work/keep.txt",
	)

	p := &Plan{Name: "build", BaseDir: "/work", Steps: []Step{
		{Type: TypeRemove, Name: "dist", Path: "dist"},
		{Type: TypeGlob, Name: "logs", Pattern: "*.log"},
	}}

	b := p.Batch()
	assert.Equal(t, []string{"build/dist", "build/logs"}, b.Labels())
	require.NoError(t, b.WithLogger(discard).RunAll(context.Background()))

	for _, gone := range []string{"/work/dist", "/work/a.log", "/work/b.log"} {
		exists, err := afero.Exists(fs, gone)
		require.NoError(t, err)
		assert.False(t, exists, "%s should have been removed", gone)
	}

	exists, err := afero.Exists(fs, "/work/keep.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBatch_MustExist(t *testing.T) {
	memFS(t, "/work/present")

	p := &Plan{Steps: []Step{
		{Type: TypeRemove, Name: "missing", Path: "/work/missing", MustExist: true},
		{Type: TypeGlob, Name: "no logs", Pattern: "/work/*.log", MustExist: true},
		{Type: TypeRemove, Name: "present", Path: "/work/present", MustExist: true},
		{Type: TypeRemove, Name: "missing but optional", Path: "/work/other"},
	}}

	results := p.Batch().WithLogger(discard).Run(context.Background())
	require.Len(t, results, 4)

	assert.ErrorIs(t, results[0].Err, ErrPathNotFound)
	assert.ErrorIs(t, results[1].Err, ErrNoMatches)
	assert.NoError(t, results[2].Err)
	assert.NoError(t, results[3].Err)

	err := results.Err()
	assert.ErrorIs(t, err, cleanup.ErrCleanupFailed)
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.NotErrorIs(t, err, ErrNoMatches)
}

func TestBatch_Exec(t *testing.T) {
	type call struct {
		dir  string
		argv []string
	}

	var calls []call

	errExit := errors.New("exit status 1")

	stubs := gostub.Stub(&RunCommand, func(dir string, argv []string) error {
		calls = append(calls, call{dir: dir, argv: argv})
		if argv[0] == "false" {
			return errExit
		}

		return nil
	})
	defer stubs.Reset()

	p := &Plan{BaseDir: "/work", Steps: []Step{
		{Type: TypeExec, Name: "fails", Command: []string{"false"}},
		{Type: TypeExec, Name: "in tools", Command: []string{"make", "clean"}, Dir: "tools"},
		{Type: TypeExec, Name: "absolute", Command: []string{"true"}, Dir: "/tmp"},
	}}

	err := p.Batch().WithLogger(discard).RunAll(context.Background())
	require.ErrorIs(t, err, errExit)

	assert.Equal(t, []call{
		{dir: "/work", argv: []string{"false"}},
		{dir: filepath.Join("/work", "tools"), argv: []string{"make", "clean"}},
		{dir: "/tmp", argv: []string{"true"}},
	}, calls)
}

func TestBatch_InvalidStepFails(t *testing.T) {
	memFS(t)

	p := &Plan{Steps: []Step{
		{Type: "rollback", Name: "unknown"},
		{Type: TypeRemove, Name: "ok", Path: "/work/x"},
	}}

	results := p.Batch().WithLogger(discard).Run(context.Background())
	require.Len(t, results, 2)

	var stepErr *ErrInvalidStep
	assert.ErrorAs(t, results[0].Err, &stepErr)
	assert.NoError(t, results[1].Err)
}

func TestAppendTo_PreservesExistingOperations(t *testing.T) {
	memFS(t)

	var order []string

	b := cleanup.Of(func() error {
		order = append(order, "first")
		return nil
	})

	p := &Plan{Steps: []Step{{Type: TypeRemove, Name: "dist", Path: "/dist"}}}
	p.AppendTo(b).And(func() error {
		order = append(order, "last")
		return nil
	})

	assert.Equal(t, []string{"operation 1", "dist", "operation 3"}, b.Labels())
	require.NoError(t, b.WithLogger(discard).RunAll(context.Background()))
	assert.Equal(t, []string{"first", "last"}, order)
}
