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
	"fmt"
	"path"
	"strings"

	"github.com/kira-tools/kira/pkg/defaults"
	"github.com/kira-tools/kira/pkg/shell"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Read dumps the last lines entries of a buffer and parses them.
// A non-positive lines value uses defaults.LogcatDumpLines.
func Read(ctx context.Context, exec shell.Executor, buffer Buffer, lines int) ([]Entry, error) {
	if lines <= 0 {
		lines = defaults.LogcatDumpLines
	}
	out, err := exec.Execute(ctx, fmt.Sprintf("logcat -d -v threadtime -b %s -t %d", buffer.Arg(), lines))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s buffer: %w", buffer.Arg(), err)
	}
	return ParseLines(out), nil
}

// Clear empties a buffer.
func Clear(ctx context.Context, exec shell.Executor, buffer Buffer) error {
	if _, err := exec.Execute(ctx, "logcat -c -b "+buffer.Arg()); err != nil {
		return fmt.Errorf("failed to clear %s buffer: %w", buffer.Arg(), err)
	}
	return nil
}

// Buffers lists the ring buffers the device reports.
func Buffers(ctx context.Context, exec shell.Executor) ([]string, error) {
	out, err := exec.Execute(ctx, "logcat -g")
	if err != nil {
		return nil, fmt.Errorf("failed to list buffers: %w", err)
	}
	return ParseBuffers(out), nil
}

// ParseBuffers extracts buffer names from `logcat -g` output, in order of
// first appearance. Both "main: ring buffer is ..." and the older
// "/dev/log/main: ring buffer is ..." forms are accepted.
func ParseBuffers(output string) []string {
	seen := sets.New[string]()
	names := make([]string, 0)
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "ring buffer") {
			continue
		}
		head, _, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(head)
		if len(fields) == 0 {
			continue
		}
		name := path.Base(fields[len(fields)-1])
		if seen.Has(name) {
			continue
		}
		seen.Insert(name)
		names = append(names, name)
	}
	return names
}
