// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package plan reads cleanup plans from YAML or HCL files and turns their steps into
// operations of a cleanup.Batch.
//
// A YAML plan looks like this:
//
//	name: build
//	steps:
//	  - type: remove
//	    name: dist
//	    path: ./dist
//	  - type: glob
//	    name: logs
//	    pattern: "*.log"
//	  - type: exec
//	    name: stop dev container
//	    command: ["docker", "rm", "-f", "dev"]
//
// The same plan in HCL, where env.<NAME> refers to environment variables:
//
//	name = "build"
//
//	step "remove" "dist" {
//	  path = "${env.HOME}/dist"
//	}
package plan
