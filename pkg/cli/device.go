/*
Copyright © 2025 The Kira Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/kira-tools/kira/pkg/collector"
	"github.com/kira-tools/kira/pkg/defaults"
	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/report"
	"github.com/kira-tools/kira/pkg/serializer"
	"github.com/kira-tools/kira/pkg/snapshotter"
)

func (rt *runtime) snapshotter(dev *collector.Device) *snapshotter.Snapshotter {
	return snapshotter.New(dev,
		snapshotter.WithVersion(version),
		snapshotter.WithConcurrency(rt.cfg.Concurrency),
		snapshotter.WithTimeout(defaults.SnapshotTimeout),
	)
}

func infoCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Capture a device snapshot",
		Description: `Capture identity and state of the device:
  - model, manufacturer, Android version, ABI, and A/B slot
  - /data storage and battery level
  - screen size, maximum refresh rate, and build identifiers

Every field is collected independently; a field that cannot be read is
reported with its error instead of failing the snapshot.`,
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

			snap, err := rt.snapshotter(dev).Snapshot(ctx)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, snap)
		},
	}
}

func perfCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "perf",
		Usage: "Capture a performance profile",
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

			prof, err := rt.snapshotter(dev).Profile(ctx)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, prof)
		},
	}
}

func psCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "ps",
		Usage: "List running processes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "package",
				Aliases: []string{"p"},
				Usage:   "Only processes of this package, including its :service processes",
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

			if pkg := cmd.String("package"); pkg != "" {
				procs, err := dev.FindProcesses(ctx, pkg)
				if err != nil {
					return err
				}
				return rt.write(ctx, cmd, format, procs)
			}

			procs, err := dev.Processes(ctx)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, procs)
		},
	}
}

func lsCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "List a directory on the device",
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
			dir := cmd.Args().First()
			if dir == "" {
				return errors.New(errors.ErrCodeInvalidRequest, "ls requires a PATH argument")
			}
			dev, err := rt.device(cmd)
			if err != nil {
				return err
			}

			listing, err := dev.ListDirectory(ctx, dir)
			if err != nil {
				return err
			}
			if format == serializer.FormatTable {
				return rt.write(ctx, cmd, format, listing.Entries)
			}
			return rt.write(ctx, cmd, format, listing)
		},
	}
}

func mountsCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "mounts",
		Usage: "List mounted filesystems",
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

			mounts, err := dev.Mounts(ctx)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, mounts)
		},
	}
}

func dfCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "df",
		Usage: "Show filesystem usage",
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

			vols, err := dev.Volumes(ctx)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, vols)
		},
	}
}

type rootReport struct {
	Serial string               `json:"serial,omitempty" yaml:"serial,omitempty"`
	Status collector.RootStatus `json:"status" yaml:"status"`
}

func rootCheckCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "root",
		Usage: "Check whether the device shell has root access",
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

			status, err := dev.RootStatus(ctx)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, rootReport{Serial: dev.Serial(), Status: status})
		},
	}
}

func netCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "net",
		Usage: "List network interfaces and their addresses",
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

			ifaces, err := dev.Networks(ctx)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, ifaces)
		},
	}
}

type selinuxReport struct {
	Serial string             `json:"serial,omitempty" yaml:"serial,omitempty"`
	Mode   report.SELinuxMode `json:"mode" yaml:"mode"`
}

func selinuxCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "selinux",
		Usage: "Show the SELinux enforcement mode",
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

			mode, err := dev.SELinux(ctx)
			if err != nil {
				return err
			}
			return rt.write(ctx, cmd, format, selinuxReport{Serial: dev.Serial(), Mode: mode})
		},
	}
}
