// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/cleanups"
	"github.com/matt-FFFFFF/cleanups/cmd/run"
	"github.com/matt-FFFFFF/cleanups/cmd/show"
	"github.com/matt-FFFFFF/cleanups/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	logLevelFlag  = "log-level"
	logFormatFlag = "log-format"

	logFormatPretty = "pretty"
	logFormatJSON   = "json"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		show.ShowCmd,
	},
	Flags:     rootFlags(),
	Before:    before,
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "cleanups",
	Version:   fmt.Sprintf("%s (commit: %s)", cleanups.Version, cleanups.Commit),
	Description: `cleanups runs every step of one or more cleanup plans, even when some of them fail.
Plans are YAML or HCL files listing files to remove, globs to clear and commands to run.
When any step fails the first failure is reported and the exit code is 1.`,
	Usage:     "cleanups run plan.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  logLevelFlag,
			Usage: "Log level: DEBUG, INFO, WARN or ERROR. Overrides " + ctxlog.LogLevelEnvVar,
		},
		&cli.StringFlag{
			Name:  logFormatFlag,
			Usage: "Log format: pretty or json",
			Value: logFormatPretty,
		},
	}
}

// before applies the logging flags and stores the chosen logger in the context.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if s := cmd.String(logLevelFlag); s != "" {
		level, err := ctxlog.ParseLevel(s)
		if err != nil {
			return ctx, cli.Exit(err.Error(), 1)
		}

		ctxlog.LevelVar.Set(level)
	}

	switch f := cmd.String(logFormatFlag); f {
	case logFormatPretty, "":
		return ctxlog.New(ctx, ctxlog.DefaultLogger), nil
	case logFormatJSON:
		return ctxlog.New(ctx, ctxlog.JSONLogger), nil
	default:
		return ctx, cli.Exit(fmt.Sprintf("unknown log format %q", f), 1)
	}
}
