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
	"log/slog"

	"github.com/kira-tools/kira/pkg/report"
	"github.com/kira-tools/kira/pkg/shell"
)

// RootStatus describes how much root access the device shell has.
type RootStatus string

const (
	// RootStatusRooted means the shell already runs as uid 0.
	RootStatusRooted RootStatus = "rooted"
	// RootStatusSuBinary means an su binary is installed.
	RootStatusSuBinary RootStatus = "su-binary"
	// RootStatusNotRooted means neither was found.
	RootStatusNotRooted RootStatus = "not-rooted"
)

var suPaths = []string{
	"/system/bin/su",
	"/system/xbin/su",
	"/sbin/su",
	"/vendor/bin/su",
	"/data/local/xbin/su",
}

// RootStatus checks the shell uid, then the usual su locations.
func (d *Device) RootStatus(ctx context.Context) (RootStatus, error) {
	out, err := d.run(ctx, "shell identity", "id")
	if err != nil {
		return "", err
	}
	if report.IsRootID(out) {
		return RootStatusRooted, nil
	}

	for _, p := range suPaths {
		out, err := d.run(ctx, "su binary", "ls -l "+shell.Quote(p))
		if err != nil {
			return "", err
		}
		if out != "" && !isMissing(out) {
			slog.Debug("found su binary", slog.String("path", p))
			return RootStatusSuBinary, nil
		}
	}
	return RootStatusNotRooted, nil
}
