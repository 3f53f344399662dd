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

package logcat

import (
	"context"
	"io"
	"sync"

	utilexec "k8s.io/utils/exec"

	"github.com/kira-tools/kira/pkg/defaults"
	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/shell"
)

// Process is a running log source child.
type Process interface {
	// Stdout is the continuous line output of the child.
	Stdout() io.Reader
	// Terminate asks the child to exit. It unblocks pending reads on Stdout.
	Terminate() error
	// Wait blocks until the child has exited. It must be called after all
	// reads from Stdout have completed.
	Wait() error
}

// Source starts log source children.
type Source interface {
	Start(ctx context.Context, buffer Buffer) (Process, error)
}

// ADBSource runs `logcat -v threadtime` in the device shell.
type ADBSource struct {
	adb *shell.ADB
}

// NewADBSource returns a source that spawns logcat through adb.
func NewADBSource(adb *shell.ADB) *ADBSource {
	return &ADBSource{adb: adb}
}

// Command returns the device shell command for a buffer.
func Command(buffer Buffer) string {
	return "logcat -v threadtime -b " + buffer.Arg()
}

// Start spawns the child. Its lifetime is independent of ctx: only
// Terminate stops it.
func (s *ADBSource) Start(ctx context.Context, buffer Buffer) (Process, error) {
	errCtx := map[string]any{
		"serial": s.adb.Serial(),
		"buffer": buffer.Arg(),
	}

	procCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	cmd := s.adb.Runner().CommandContext(procCtx, s.adb.Path(), s.adb.Args("shell", Command(buffer))...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "failed to capture logcat output", err, errCtx)
	}
	stderr := newTailBuffer(defaults.StreamStderrLimit)
	cmd.SetStderr(stderr)

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "failed to start logcat", err, errCtx)
	}

	return &adbProcess{
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
		cancel: cancel,
	}, nil
}

type adbProcess struct {
	cmd    utilexec.Cmd
	stdout io.ReadCloser
	stderr *tailBuffer
	cancel context.CancelFunc
}

func (p *adbProcess) Stdout() io.Reader {
	return p.stdout
}

func (p *adbProcess) Terminate() error {
	p.cancel()
	return nil
}

func (p *adbProcess) Wait() error {
	defer p.cancel()
	if err := p.cmd.Wait(); err != nil {
		if msg := p.stderr.String(); msg != "" {
			return errors.WrapWithContext(errors.ErrCodeTransport, "logcat exited", err,
				map[string]any{"stderr": msg})
		}
		return err
	}
	return nil
}

// Stderr returns the captured tail of the child's stderr.
func (p *adbProcess) Stderr() string {
	return p.stderr.String()
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	buf   []byte
	limit int
}

func newTailBuffer(limit int) *tailBuffer {
	return &tailBuffer{limit: limit}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.limit; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
