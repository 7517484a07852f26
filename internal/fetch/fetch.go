// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fetch reads cleanup plan files from local paths or from any source supported by
// Hashicorp's go-getter (git, http, s3, gcs ...).
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/spf13/afero"
)

// ErrGetPlanFile is returned when a plan file cannot be retrieved.
var ErrGetPlanFile = errors.New("failed to get plan file")

// FS is the filesystem local plan files are read from.
var FS = afero.NewOsFs()

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // Minimum parts in a go-getter URL: scheme, host, and path
)

// Get returns the contents of the plan file at src.
// An existing local path is read directly; anything else is downloaded with go-getter
// into a temporary directory that is removed before Get returns.
func Get(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, ErrGetPlanFile
	}

	if ok, _ := afero.Exists(FS, src); ok {
		b, err := afero.ReadFile(FS, src)
		if err != nil {
			return nil, errors.Join(ErrGetPlanFile, err)
		}

		return b, nil
	}

	return download(ctx, src)
}

// FileName returns the name of the plan file src refers to, without any go-getter
// subdirectory prefix or query string.
func FileName(src string) string {
	if _, fileName := splitFileNameFromGetterURL(src); fileName != "" {
		return fileName
	}

	if before, _, ok := strings.Cut(src, goGetterRefSeparator); ok {
		src = before
	}

	return filepath.Base(src)
}

func download(ctx context.Context, src string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "cleanups-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, err)
	}

	newURL, fileName := splitFileNameFromGetterURL(src)
	if newURL == "" || fileName == "" {
		return nil, fmt.Errorf("%w: invalid URL format: %s", ErrGetPlanFile, src)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     newURL,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, err)
	}

	b, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrGetPlanFile, err)
	}

	return b, nil
}

// splitFileNameFromGetterURL splits a go-getter URL of the form
// "scheme::https://host/repo//path/to/plan.yaml?ref=v1" into the directory URL
// "scheme::https://host/repo//path/to?ref=v1" and the file name "plan.yaml".
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if before, after, ok := strings.Cut(last, goGetterRefSeparator); ok {
		last = before
		ref = after
	}

	dir, fileName := filepath.Split(last)
	if fileName == "" {
		return "", ""
	}

	parts[len(parts)-1] = strings.TrimSuffix(dir, "/")

	newURL := strings.Join(parts, goGetterPathSeparator)
	newURL = strings.TrimSuffix(newURL, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
