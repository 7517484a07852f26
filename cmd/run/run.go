// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the run command, which executes cleanup plans.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/cleanups/internal/ctxlog"
	"github.com/matt-FFFFFF/cleanups/internal/plan"
	"github.com/matt-FFFFFF/cleanups/internal/render"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v3"
)

const (
	quietFlag = "quiet"
	yesFlag   = "yes"
	chdirFlag = "chdir"
)

// Confirm asks the user whether to go ahead. It is a variable so tests can replace it.
var Confirm = confirm

// RunCmd is the command that runs every step of the given cleanup plans.
var RunCmd = &cli.Command{
	Name:      "run",
	Usage:     "Run every step of the given cleanup plans",
	ArgsUsage: "PLAN [PLAN...]",
	Description: `Run loads each plan (a local path or any go-getter source), then runs all of their steps in order.
A failing step never stops the remaining ones. With --quiet failures are only logged and the exit code is always 0.`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    quietFlag,
			Aliases: []string{"q"},
			Usage:   "Log failures instead of returning a non-zero exit code",
		},
		&cli.BoolFlag{
			Name:    yesFlag,
			Aliases: []string{"y"},
			Usage:   "Do not ask for confirmation",
		},
		&cli.StringFlag{
			Name:  chdirFlag,
			Usage: "Directory that relative paths in plans without a basedir are resolved against",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return execute(ctx, cmd.Root().Writer, cmd.Root().ErrWriter, options{
			sources: cmd.Args().Slice(),
			quiet:   cmd.Bool(quietFlag),
			yes:     cmd.Bool(yesFlag),
			baseDir: cmd.String(chdirFlag),
		})
	},
}

type options struct {
	sources []string
	quiet   bool
	yes     bool
	baseDir string
}

func execute(ctx context.Context, w, ew io.Writer, opts options) error {
	if len(opts.sources) == 0 {
		return cli.Exit("Please provide at least one plan file", 1)
	}

	b, err := plan.LoadBatch(ctx, opts.sources, opts.baseDir)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if b.Len() == 0 {
		ctxlog.Warn(ctx, "no cleanup steps found in the provided plans")
		return nil
	}

	if !opts.yes {
		if err := render.Steps(w, b.Labels()); err != nil {
			return err
		}

		ok, err := Confirm(fmt.Sprintf("Run %d cleanup step(s)? [y/N] ", b.Len()))
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to read confirmation: %s", err), 1)
		}

		if !ok {
			_, err := fmt.Fprintln(w, "Aborted.")
			return err
		}
	}

	if opts.quiet {
		b.RunAllQuietly(ctx)
		return nil
	}

	results := b.Run(ctx)

	if err := render.Results(w, results); err != nil {
		return err
	}

	if !results.HasError() {
		return nil
	}

	if _, err := fmt.Fprintln(ew, results.Errors()); err != nil {
		return err
	}

	return cli.Exit(results.Err().Error(), 1)
}

func confirm(prompt string) (bool, error) {
	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.SetCtrlCAborts(true)

	answer, err := line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return false, nil
		}

		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
