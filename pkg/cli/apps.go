/*
Copyright © 2025 The Kira Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/report"
	"github.com/kira-tools/kira/pkg/serializer"
)

var packageFilters = []report.PackageFilter{
	report.PackagesAll,
	report.PackagesSystem,
	report.PackagesThirdParty,
	report.PackagesEnabled,
	report.PackagesDisabled,
}

type packageRow struct {
	Package string `json:"package"`
}

func appsCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "apps",
		Usage: "Inspect installed packages",
		Commands: []*cli.Command{
			appsListCmd(rt),
			appsInfoCmd(rt),
			appsPermsCmd(rt),
			appsTopCmd(rt),
			appsLauncherCmd(rt),
		},
	}
}

func appsListCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List installed package names",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "filter",
				Usage: fmt.Sprintf("Package filter (supported values: %v)", packageFilters),
				Value: string(report.PackagesAll),
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			dev, err := rt.device(cmd)
			if err != nil {
				return err
			}

			names, err := dev.Packages(ctx, report.PackageFilter(cmd.String("filter")))
			if err != nil {
				return err
			}
			if format == serializer.FormatTable {
				rows := make([]packageRow, len(names))
				for i, n := range names {
					rows[i] = packageRow{Package: n}
				}
				return rt.write(ctx, cmd, format, rows)
			}
			return rt.write(ctx, cmd, format, names)
		},
	}
}

// packageArg returns the PACKAGE argument or an INVALID_REQUEST error.
func packageArg(cmd *cli.Command) (string, error) {
	pkg := cmd.Args().First()
	if pkg == "" {
		return "", errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("%s requires a PACKAGE argument", cmd.Name))
	}
	return pkg, nil
}

func appsInfoCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show version, install, and state details of a package",
		ArgsUsage: "PACKAGE",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			pkg, err := packageArg(cmd)
			if err != nil {
				return err
			}
			dev, err := rt.device(cmd)
			if err != nil {
				return err
			}

			info, err := dev.AppInfo(ctx, pkg)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, info)
		},
	}
}

func appsPermsCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "perms",
		Usage:     "Show granted and denied permissions of a package",
		ArgsUsage: "PACKAGE",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			pkg, err := packageArg(cmd)
			if err != nil {
				return err
			}
			dev, err := rt.device(cmd)
			if err != nil {
				return err
			}

			perms, err := dev.Permissions(ctx, pkg)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, perms)
		},
	}
}

func appsTopCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "top",
		Usage: "Show the foreground package",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			dev, err := rt.device(cmd)
			if err != nil {
				return err
			}

			top, err := dev.TopPackage(ctx)
			if err != nil {
				return err
			}
			if !top.Found() {
				return errors.New(errors.ErrCodeNotFound, "no foreground package")
			}
			return rt.write(ctx, cmd, format, top)
		},
	}
}

type launcherReport struct {
	Package  string `json:"package" yaml:"package"`
	Activity string `json:"activity" yaml:"activity"`
}

func appsLauncherCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "launcher",
		Usage:     "Resolve the launcher activity of a package",
		ArgsUsage: "PACKAGE",
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			pkg, err := packageArg(cmd)
			if err != nil {
				return err
			}
			dev, err := rt.device(cmd)
			if err != nil {
				return err
			}

			activity, err := dev.LauncherActivity(ctx, pkg)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, launcherReport{Package: pkg, Activity: activity})
		},
	}
}
