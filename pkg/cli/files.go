/*
Copyright © 2025 The Kira Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/report"
)

func statCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "Show details of a single path on the device",
		ArgsUsage: "PATH",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			p := cmd.Args().First()
			if p == "" {
				return errors.New(errors.ErrCodeInvalidRequest, "stat requires a PATH argument")
			}
			dev, err := rt.device(cmd)
			if err != nil {
				return err
			}

			info, err := dev.FileInfo(ctx, p)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, info)
		},
	}
}

func findCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "Search files under a path by name or by content",
		ArgsUsage: "PATH",
		Description: `Exactly one of --name or --content is required.

--name takes a shell glob matched against file names, e.g. '*.jpg'.
--content takes an extended regular expression; the first matching line
of each file is reported, for at most 50 files.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "File name glob",
			},
			&cli.StringFlag{
				Name:  "content",
				Usage: "Regular expression searched in text files",
			},
			&cli.IntFlag{
				Name:  "depth",
				Usage: "Maximum directory depth for --name (0 for unlimited)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			base := cmd.Args().First()
			if base == "" {
				return errors.New(errors.ErrCodeInvalidRequest, "find requires a PATH argument")
			}
			name, content := cmd.String("name"), cmd.String("content")
			if (name == "") == (content == "") {
				return errors.New(errors.ErrCodeInvalidRequest, "find requires exactly one of --name or --content")
			}
			dev, err := rt.device(cmd)
			if err != nil {
				return err
			}

			var results []report.SearchResult
			if name != "" {
				results, err = dev.SearchFiles(ctx, base, name, cmd.Int("depth"))
			} else {
				results, err = dev.SearchContent(ctx, base, content)
			}
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, results)
		},
	}
}
