/*
Copyright © 2025 The Kira Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
	"k8s.io/utils/ptr"

	"github.com/kira-tools/kira/pkg/defaults"
	"github.com/kira-tools/kira/pkg/logcat"
	"github.com/kira-tools/kira/pkg/serializer"
)

const formatText = "text"

type bufferRow struct {
	Buffer string `json:"buffer"`
}

func logcatCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "logcat",
		Usage: "Stream, dump, and clear device logs",
		Commands: []*cli.Command{
			logcatStreamCmd(rt),
			logcatDumpCmd(rt),
			logcatClearCmd(rt),
			logcatBuffersCmd(rt),
		},
	}
}

func bufferFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "buffer",
		Aliases: []string{"b"},
		Usage:   "Ring buffer (main, system, radio, events, crash, all, default)",
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "tag",
			Usage: "Only entries whose tag contains this text",
		},
		&cli.StringFlag{
			Name:    "level",
			Aliases: []string{"l"},
			Usage:   "Minimum level as a letter or name (V, D, I, W, E, F)",
		},
		&cli.StringFlag{
			Name:  "grep",
			Usage: "Only entries whose message contains this text",
		},
	}
}

// buffer returns --buffer, falling back to the configured buffer.
func (rt *runtime) buffer(cmd *cli.Command) (logcat.Buffer, error) {
	if !cmd.IsSet("buffer") {
		return rt.cfg.Buffer(), nil
	}
	return logcat.ParseBuffer(cmd.String("buffer"))
}

// filter builds a logcat filter from the filter flags, taking the minimum
// level from the configuration when --level is not given.
func (rt *runtime) filter(cmd *cli.Command) (logcat.Filter, error) {
	f := logcat.Filter{
		Tag:      cmd.String("tag"),
		Message:  cmd.String("grep"),
		MinLevel: ptr.To(rt.cfg.MinLevel()),
	}
	if cmd.IsSet("level") {
		lvl, err := logcat.ParseLevel(cmd.String("level"))
		if err != nil {
			return logcat.Filter{}, err
		}
		f.MinLevel = ptr.To(lvl)
	}
	return f, nil
}

// lineFormat validates the --format of line-oriented output.
func lineFormat(cmd *cli.Command, allowed ...string) (string, error) {
	format := cmd.String("format")
	for _, a := range allowed {
		if format == a {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown output format: %q, supported values: %v", format, allowed)
}

func logcatStreamCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "stream",
		Usage: "Follow the device log until interrupted",
		Description: `Start logcat on the device and print matching entries as they arrive.

The stream stops on Ctrl-C. If the device closes the log (for example
because it was disconnected), the command fails.`,
		Flags: append([]cli.Flag{
			bufferFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   "Line format (text, json)",
				Value:   formatText,
			},
		}, filterFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := lineFormat(cmd, formatText, string(serializer.FormatJSON))
			if err != nil {
				return err
			}
			if err := rt.resolve(cmd); err != nil {
				return err
			}
			buffer, err := rt.buffer(cmd)
			if err != nil {
				return err
			}
			filter, err := rt.filter(cmd)
			if err != nil {
				return err
			}

			streamer := logcat.NewStreamer(rt.factory.CreateLogSource(rt.cfg.Serial),
				logcat.WithBufferSize(rt.cfg.Logcat.BufferSize))
			stream, err := streamer.Start(ctx, buffer, filter)
			if err != nil {
				return err
			}

			slog.Debug("log stream started",
				slog.String("id", stream.ID()),
				slog.String("buffer", buffer.Arg()))

			err = follow(ctx, stream, serializer.NewLineWriter(serializer.Format(format), rt.stdout))
			stop(stream, defaults.CLIShutdownTimeout)
			return err
		},
	}
}

// follow writes entries until the stream ends or ctx is cancelled.
// Cancellation is a normal stop and returns nil.
func follow(ctx context.Context, stream *logcat.Stream, lw *serializer.LineWriter) error {
	for {
		select {
		case e, ok := <-stream.Entries():
			if !ok {
				<-stream.Done()
				return stream.Err()
			}
			if err := lw.WriteLine(e); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// stop closes the stream, giving up after timeout if the child will not exit.
func stop(stream *logcat.Stream, timeout time.Duration) {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		_ = stream.Close()
	}()

	select {
	case <-closed:
	case <-time.After(timeout):
		slog.Warn("log stream did not stop in time",
			slog.String("id", stream.ID()),
			slog.Duration("timeout", timeout))
	}
}

func logcatDumpCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Print the most recent log entries and exit",
		Flags: append([]cli.Flag{
			bufferFlag(),
			&cli.IntFlag{
				Name:    "lines",
				Aliases: []string{"n"},
				Usage:   "Number of most recent lines to read",
				Value:   defaults.LogcatDumpLines,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   "Output format (text, json, yaml, table)",
				Value:   formatText,
			},
			outputFlag(),
		}, filterFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := lineFormat(cmd, append([]string{formatText}, serializer.SupportedFormats()...)...)
			if err != nil {
				return err
			}
			dev, err := rt.device(cmd)
			if err != nil {
				return err
			}
			buffer, err := rt.buffer(cmd)
			if err != nil {
				return err
			}
			filter, err := rt.filter(cmd)
			if err != nil {
				return err
			}

			entries, err := logcat.Read(ctx, dev.Executor(), buffer, cmd.Int("lines"))
			if err != nil {
				return err
			}
			entries = logcat.FilterEntries(entries, filter)

			if format != formatText {
				return rt.write(ctx, cmd, serializer.Format(format), entries)
			}
			lw := serializer.NewLineWriter(serializer.FormatTable, rt.stdout)
			for _, e := range entries {
				if err := lw.WriteLine(e); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func logcatClearCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Clear a log buffer",
		Flags: []cli.Flag{
			bufferFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dev, err := rt.device(cmd)
			if err != nil {
				return err
			}
			buffer, err := rt.buffer(cmd)
			if err != nil {
				return err
			}

			if err := logcat.Clear(ctx, dev.Executor(), buffer); err != nil {
				return err
			}
			fmt.Fprintf(rt.stdout, "cleared %s buffer\n", buffer.Arg())
			return nil
		},
	}
}

func logcatBuffersCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "buffers",
		Usage: "List the device's log buffers",
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

			names, err := logcat.Buffers(ctx, dev.Executor())
			if err != nil {
				return err
			}
			if format == serializer.FormatTable {
				rows := make([]bufferRow, len(names))
				for i, n := range names {
					rows[i] = bufferRow{Buffer: n}
				}
				return rt.write(ctx, cmd, format, rows)
			}
			return rt.write(ctx, cmd, format, names)
		},
	}
}
