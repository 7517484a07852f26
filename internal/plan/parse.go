// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

const hclExt = ".hcl"

// Environ returns the environment exposed to HCL plans as env.<NAME>.
// It is a variable so tests can replace it.
var Environ = os.Environ

// Parse decodes a plan. Files ending in .hcl are read as HCL, anything else as YAML.
// Unknown YAML fields are rejected.
func Parse(filename string, data []byte) (*Plan, error) {
	if strings.EqualFold(filepath.Ext(filename), hclExt) {
		return parseHCL(filename, data)
	}

	return parseYAML(data)
}

func parseYAML(data []byte) (*Plan, error) {
	p := &Plan{}
	if err := yaml.UnmarshalWithOptions(data, p, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.Join(ErrParsePlan, err)
	}

	return p, nil
}

func parseHCL(filename string, data []byte) (*Plan, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Join(ErrParsePlan, diags)
	}

	p := &Plan{}
	if diags := gohcl.DecodeBody(file.Body, evalContext(), p); diags.HasErrors() {
		return nil, errors.Join(ErrParsePlan, diags)
	}

	return p, nil
}

func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)

	for _, kv := range Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		env[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}
