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
)

// Processes lists running processes. Devices whose ps predates -A list
// only the shell's processes with it, so plain ps is tried when -A yields
// nothing.
func (d *Device) Processes(ctx context.Context) ([]report.ProcessInfo, error) {
	out, err := d.run(ctx, "process list", "ps -A")
	if err != nil {
		return nil, err
	}
	procs := report.ParseProcessList(out)
	if len(procs) > 0 {
		return procs, nil
	}

	out, err = d.run(ctx, "process list", "ps")
	if err != nil {
		return nil, err
	}
	return report.ParseProcessList(out), nil
}

// FindProcesses returns the processes whose name contains pkg.
func (d *Device) FindProcesses(ctx context.Context, pkg string) ([]report.ProcessInfo, error) {
	procs, err := d.Processes(ctx)
	if err != nil {
		return nil, err
	}
	return report.FilterByPackage(procs, pkg), nil
}

// ProcessMemory reads /proc/<pid>/status. An exited process is NOT_FOUND.
func (d *Device) ProcessMemory(ctx context.Context, pid int) (report.ProcessMemory, error) {
	if pid <= 0 {
		return report.ProcessMemory{}, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"pid must be positive", map[string]any{"pid": pid})
	}
	out, err := d.run(ctx, "process status", fmt.Sprintf("cat /proc/%d/status", pid))
	if err != nil {
		return report.ProcessMemory{}, err
	}
	if isMissing(out) {
		return report.ProcessMemory{}, errors.NewWithContext(errors.ErrCodeNotFound,
			"process not found", map[string]any{"pid": pid})
	}
	return report.ParseProcStatus(pid, out)
}

// Services lists the components of running services.
func (d *Device) Services(ctx context.Context) ([]string, error) {
	out, err := d.run(ctx, "running services", "dumpsys activity services")
	if err != nil {
		return nil, err
	}
	return report.ParseRunningServices(out), nil
}

// isMissing recognizes the shell's "no such file" diagnostics.
func isMissing(out string) bool {
	return strings.Contains(out, "No such file or directory") ||
		strings.HasSuffix(strings.TrimSpace(out), "not found")
}
