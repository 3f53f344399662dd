/*
Copyright © 2025 The Kira Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/kira-tools/kira/pkg/collector"
	"github.com/kira-tools/kira/pkg/config"
	"github.com/kira-tools/kira/pkg/defaults"
	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/logging"
)

const (
	name           = "kira"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// runtime carries the resolved configuration and the device factory into
// command actions. A nil factory is built from the configuration.
type runtime struct {
	cfg      config.Config
	factory  collector.Factory
	stdout   io.Writer
	resolved bool
}

// Execute runs the kira command line and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&runtime{stdout: os.Stdout}).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: 2 for cancellation
// and timeouts, 1 for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled),
		stderrors.Is(err, context.DeadlineExceeded),
		errors.IsCode(err, errors.ErrCodeTimeout):
		return 2
	default:
		return 1
	}
}

func newRootCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Android device telemetry and logcat streaming over adb",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		Writer:                rt.stdout,
		Description: `kira reads device state through adb shell commands and reports it as
JSON, YAML, or a table:

info    - identity, storage, battery, screen, and build of the device
perf    - memory, battery, per-core CPU times and clocks, frame flips, uptime
ps      - running processes
ls      - directory listing
stat    - details of a single path
find    - search files by name or content
net     - network interfaces and addresses
selinux - SELinux enforcement mode
apps    - installed packages, package details, permissions, foreground app
logcat  - live log streaming with filtering, dumps, and buffer management`,
		Flags: globalFlags(),
		Commands: []*cli.Command{
			infoCmd(rt),
			perfCmd(rt),
			psCmd(rt),
			lsCmd(rt),
			statCmd(rt),
			findCmd(rt),
			mountsCmd(rt),
			dfCmd(rt),
			rootCheckCmd(rt),
			netCmd(rt),
			selinuxCmd(rt),
			appsCmd(rt),
			logcatCmd(rt),
		},
	}
}

// resolve layers flags and environment over the configuration file and
// installs the logger. It runs once, from the first action, because flags
// given after a subcommand name are only parsed by then.
func (rt *runtime) resolve(cmd *cli.Command) error {
	if rt.resolved {
		return nil
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if cmd.IsSet("serial") {
		cfg.Serial = cmd.String("serial")
	}
	if cmd.IsSet("adb") {
		cfg.ADBPath = cmd.String("adb")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("concurrency") {
		cfg.Concurrency = cmd.Int("concurrency")
	}
	if cmd.IsSet("timeout") {
		cfg.CommandTimeout = config.Duration(cmd.Duration("timeout"))
	}
	if cmd.IsSet("rate") {
		cfg.CommandRate = cmd.Float("rate")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"serial", cfg.Serial,
		"logLevel", cfg.LogLevel)

	if rt.factory == nil {
		rt.factory = &collector.DefaultFactory{
			ADBPath:    cfg.ADBPath,
			Timeout:    cfg.CommandTimeout.Std(),
			Rate:       cfg.CommandRate,
			Burst:      defaults.CommandBurst,
			Serialized: cfg.Concurrency <= 1,
		}
	}

	rt.cfg = cfg
	rt.resolved = true
	return nil
}

// device resolves configuration and returns the selected device.
func (rt *runtime) device(cmd *cli.Command) (*collector.Device, error) {
	if err := rt.resolve(cmd); err != nil {
		return nil, err
	}
	return rt.factory.CreateDevice(rt.cfg.Serial), nil
}
