/*
Copyright © 2025 The Kira Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/kira-tools/kira/pkg/defaults"
	"github.com/kira-tools/kira/pkg/serializer"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "serial",
			Aliases: []string{"s"},
			Usage:   "Device serial (default: the only attached device)",
			Sources: cli.EnvVars("KIRA_SERIAL", "ANDROID_SERIAL"),
		},
		&cli.StringFlag{
			Name:    "adb",
			Usage:   "Path to the adb binary",
			Sources: cli.EnvVars("KIRA_ADB"),
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Config file (default is $HOME/.kira.yaml)",
			Sources: cli.EnvVars("KIRA_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
		&cli.IntFlag{
			Name:    "concurrency",
			Usage:   "Queries run at once while building a snapshot",
			Sources: cli.EnvVars("KIRA_CONCURRENCY"),
			Value:   defaults.SnapshotConcurrency,
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Timeout for each device command",
			Sources: cli.EnvVars("KIRA_TIMEOUT"),
			Value:   defaults.CommandTimeout,
		},
		&cli.FloatFlag{
			Name:    "rate",
			Usage:   "Maximum device commands per second (0 for unlimited)",
			Sources: cli.EnvVars("KIRA_RATE"),
			Value:   defaults.CommandRate,
		},
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatYAML),
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v",
			format, serializer.SupportedFormats())
	}
	return format, nil
}

// write serializes v to --output, or the runtime's stdout when unset.
func (rt *runtime) write(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	var w *serializer.Writer
	if path := cmd.String("output"); path != "" {
		w = serializer.NewFileWriterOrStdout(format, path)
	} else {
		w = serializer.NewWriter(format, rt.stdout)
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return w.Serialize(ctx, v)
}
