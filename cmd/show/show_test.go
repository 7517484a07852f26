// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package show

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/cleanups/internal/fetch"
	"github.com/matt-FFFFFF/cleanups/internal/plan"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/plans/a.yaml", []byte("name: a\nsteps:\n  - type: remove\n    name: dist\n    path: dist\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/work/dist/app", []byte("bin"), 0o644))

	stubs := gostub.Stub(&fetch.FS, fs)
	stubs.Stub(&plan.FS, fs)
	defer stubs.Reset()

	var buf bytes.Buffer

	require.NoError(t, show(context.Background(), &buf, []string{"/plans/a.yaml"}, "/work"))
	assert.Contains(t, buf.String(), "1 cleanup step(s):")
	assert.Contains(t, buf.String(), "1. a/dist")

	exists, err := afero.Exists(fs, "/work/dist/app")
	require.NoError(t, err)
	assert.True(t, exists, "show must not run any step")

	assert.Error(t, show(context.Background(), &buf, nil, ""))
	assert.Error(t, show(context.Background(), &buf, []string{"/plans/missing.yaml"}, ""))
}
