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
	"context"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/kira-tools/kira/pkg/errors"
)

// Executor runs one shell command on a device and returns its output.
type Executor interface {
	Execute(ctx context.Context, command string) (string, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, command string) (string, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, command string) (string, error) {
	return f(ctx, command)
}

// WithRateLimit returns an Executor that waits for limiter before each command.
// A nil limiter returns e unchanged.
func WithRateLimit(e Executor, limiter *rate.Limiter) Executor {
	if limiter == nil {
		return e
	}
	return ExecutorFunc(func(ctx context.Context, command string) (string, error) {
		if err := limiter.Wait(ctx); err != nil {
			return "", errors.WrapWithContext(errors.ErrCodeTransport, "rate limiter wait failed", err,
				map[string]any{"command": command})
		}
		return e.Execute(ctx, command)
	})
}

// Serialize returns an Executor that runs at most one command at a time,
// for devices that expose a single logical command channel.
func Serialize(e Executor) Executor {
	var mu sync.Mutex
	return ExecutorFunc(func(ctx context.Context, command string) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if err := ctx.Err(); err != nil {
			return "", errors.WrapWithContext(errors.ErrCodeTransport, "context done before command", err,
				map[string]any{"command": command})
		}
		return e.Execute(ctx, command)
	})
}

// Quote single-quotes s for the device shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// program returns the first word of a command, used as a metric label.
func program(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "none"
	}
	return fields[0]
}
