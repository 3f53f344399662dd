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

package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/report"
	"github.com/kira-tools/kira/pkg/shell"
)

// MaxContentMatches caps the files returned by SearchContent.
const MaxContentMatches = 50

// FileInfo describes a single path without listing directory contents.
func (d *Device) FileInfo(ctx context.Context, p string) (report.FileInfo, error) {
	if strings.TrimSpace(p) == "" {
		return report.FileInfo{}, errors.New(errors.ErrCodeInvalidRequest, "path is required")
	}
	out, err := d.run(ctx, "file info", "ls -la --full-time -d "+shell.Quote(p))
	if err != nil {
		return report.FileInfo{}, err
	}

	if info, ok := report.ParseFileInfo(p, out); ok {
		return info, nil
	}
	errCtx := map[string]any{"path": p}
	if strings.Contains(out, "Permission denied") {
		return report.FileInfo{}, errors.NewWithContext(errors.ErrCodeUnavailable, "permission denied", errCtx)
	}
	return report.FileInfo{}, errors.NewWithContext(errors.ErrCodeNotFound, "path not found", errCtx)
}

// SearchFiles finds paths under base whose name matches the shell glob
// pattern. A maxDepth of zero or less searches the whole tree. Unreadable
// directories are skipped.
func (d *Device) SearchFiles(ctx context.Context, base, pattern string, maxDepth int) ([]report.SearchResult, error) {
	if err := searchArgs(base, pattern); err != nil {
		return nil, err
	}
	command := "find " + shell.Quote(base)
	if maxDepth > 0 {
		command += fmt.Sprintf(" -maxdepth %d", maxDepth)
	}
	command += " -name " + shell.Quote(pattern) + " 2>/dev/null"

	out, err := d.run(ctx, "file search", command)
	if err != nil {
		return nil, err
	}
	return report.ParseFindOutput(out), nil
}

// SearchContent finds up to MaxContentMatches text files under base that
// contain the extended regular expression pattern, with the first matching
// line of each.
func (d *Device) SearchContent(ctx context.Context, base, pattern string) ([]report.SearchResult, error) {
	if err := searchArgs(base, pattern); err != nil {
		return nil, err
	}
	command := fmt.Sprintf("grep -r -n -I -m 1 -E -e %s -- %s 2>/dev/null | head -n %d",
		shell.Quote(pattern), shell.Quote(base), MaxContentMatches)

	out, err := d.run(ctx, "content search", command)
	if err != nil {
		return nil, err
	}
	return report.ParseGrepMatches(out), nil
}

func searchArgs(base, pattern string) error {
	switch {
	case strings.TrimSpace(base) == "":
		return errors.New(errors.ErrCodeInvalidRequest, "search path is required")
	case pattern == "":
		return errors.New(errors.ErrCodeInvalidRequest, "search pattern is required")
	}
	return nil
}
