// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show implements the show command, which lists the steps of cleanup plans without running them.
package show

import (
	"context"
	"io"

	"github.com/matt-FFFFFF/cleanups/internal/plan"
	"github.com/matt-FFFFFF/cleanups/internal/render"
	"github.com/urfave/cli/v3"
)

const chdirFlag = "chdir"

// ShowCmd is the command that prints the steps of the given cleanup plans in the order they would run.
var ShowCmd = &cli.Command{
	Name:      "show",
	Usage:     "List the steps of the given cleanup plans without running them",
	ArgsUsage: "PLAN [PLAN...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  chdirFlag,
			Usage: "Directory that relative paths in plans without a basedir are resolved against",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return show(ctx, cmd.Root().Writer, cmd.Args().Slice(), cmd.String(chdirFlag))
	},
}

func show(ctx context.Context, w io.Writer, sources []string, baseDir string) error {
	if len(sources) == 0 {
		return cli.Exit("Please provide at least one plan file", 1)
	}

	b, err := plan.LoadBatch(ctx, sources, baseDir)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return render.Steps(w, b.Labels())
}
