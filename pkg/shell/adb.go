// Copyright (c) 2025, The Kira Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shell

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	utilexec "k8s.io/utils/exec"

	"github.com/kira-tools/kira/pkg/defaults"
	"github.com/kira-tools/kira/pkg/errors"
)

// DefaultADBPath is the adb binary looked up on PATH.
const DefaultADBPath = "adb"

// ADB runs shell commands through the adb client binary.
type ADB struct {
	path    string
	serial  string
	timeout time.Duration
	exec    utilexec.Interface
}

// Option configures an ADB executor.
type Option func(*ADB)

// WithADBPath sets the adb binary. Default is "adb" on PATH.
func WithADBPath(path string) Option {
	return func(a *ADB) {
		if path != "" {
			a.path = path
		}
	}
}

// WithTimeout bounds each command. Default is defaults.CommandTimeout.
func WithTimeout(d time.Duration) Option {
	return func(a *ADB) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithExec sets the process runner, mainly for tests.
func WithExec(e utilexec.Interface) Option {
	return func(a *ADB) {
		a.exec = e
	}
}

// NewADB returns an executor for the device with the given serial.
// An empty serial lets adb pick the only connected device.
func NewADB(serial string, opts ...Option) *ADB {
	a := &ADB{
		path:    DefaultADBPath,
		serial:  serial,
		timeout: defaults.CommandTimeout,
		exec:    utilexec.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Serial returns the device serial the executor targets.
func (a *ADB) Serial() string {
	return a.serial
}

// Path returns the adb binary used by the executor.
func (a *ADB) Path() string {
	return a.path
}

// Runner returns the process runner used by the executor.
func (a *ADB) Runner() utilexec.Interface {
	return a.exec
}

// Args prefixes adb arguments with the device selector.
func (a *ADB) Args(args ...string) []string {
	if a.serial == "" {
		return args
	}
	return append([]string{"-s", a.serial}, args...)
}

// Execute runs command in the device shell.
//
// A non-zero exit status of the remote command is not a transport failure:
// its stdout is returned, or its stderr when stdout is empty, so callers can
// recognize messages such as "No such file or directory".
func (a *ADB) Execute(ctx context.Context, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	errCtx := map[string]any{
		"command": command,
		"serial":  a.serial,
	}

	var stderr bytes.Buffer
	cmd := a.exec.CommandContext(ctx, a.path, a.Args("shell", command)...)
	cmd.SetStderr(&stderr)
	out, err := cmd.Output()
	shellCommandDuration.WithLabelValues(program(command)).Observe(time.Since(start).Seconds())

	if err != nil {
		out, err = a.classify(ctx, err, out, stderr.String(), errCtx)
		if err != nil {
			shellCommandTotal.WithLabelValues("transport_error").Inc()
			return "", err
		}
	}

	if !utf8.Valid(out) {
		shellCommandTotal.WithLabelValues("encoding_error").Inc()
		return "", errors.NewWithContext(errors.ErrCodeInvalidEncoding, "command output is not valid UTF-8", errCtx)
	}

	shellCommandTotal.WithLabelValues("success").Inc()
	return strings.TrimSpace(string(out)), nil
}

func (a *ADB) classify(ctx context.Context, err error, stdout []byte, stderr string, errCtx map[string]any) ([]byte, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "command did not complete",
			errors.Wrap(errors.ErrCodeTimeout, "device shell", ctxErr), errCtx)
	}
	if stderrors.Is(err, utilexec.ErrExecutableNotFound) {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "adb binary not found", err, errCtx)
	}

	var exitErr utilexec.ExitError
	if !stderrors.As(err, &exitErr) {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "failed to run adb", err, errCtx)
	}

	msg := strings.TrimSpace(stderr)
	if isADBFailure(msg) {
		errCtx["stderr"] = msg
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "adb reported an error", err, errCtx)
	}

	slog.Debug("remote command exited non-zero",
		slog.String("command", errCtx["command"].(string)),
		slog.Int("status", exitErr.ExitStatus()),
		slog.String("stderr", msg))

	if len(bytes.TrimSpace(stdout)) == 0 {
		return []byte(msg), nil
	}
	return stdout, nil
}

// isADBFailure reports whether stderr comes from the adb client rather than
// the remote command, e.g. "error: device 'emulator-5554' not found".
func isADBFailure(stderr string) bool {
	return strings.HasPrefix(stderr, "error:") ||
		strings.HasPrefix(stderr, "adb: ") ||
		strings.Contains(stderr, "no devices/emulators found")
}
