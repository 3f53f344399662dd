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
)

const cpuFreqCommand = "grep -H . /sys/devices/system/cpu/cpu*/cpufreq/scaling_cur_freq"

// Memory reads /proc/meminfo.
func (d *Device) Memory(ctx context.Context) (report.MemoryInfo, error) {
	out, err := d.run(ctx, "memory info", "cat /proc/meminfo")
	if err != nil {
		return report.MemoryInfo{}, err
	}
	return report.ParseMemInfo(out)
}

// Battery reads the battery service dump.
func (d *Device) Battery(ctx context.Context) (report.BatteryInfo, error) {
	out, err := d.run(ctx, "battery", "dumpsys battery")
	if err != nil {
		return report.BatteryInfo{}, err
	}
	return report.ParseBattery(out)
}

// CPUs reads per-core counters from /proc/stat. Clock speeds are added when
// the cpufreq nodes are readable; failing to read them is not an error.
func (d *Device) CPUs(ctx context.Context) ([]report.CPUInfo, error) {
	out, err := d.run(ctx, "cpu stat", "cat /proc/stat")
	if err != nil {
		return nil, err
	}
	cpus := report.ParseCPUStat(out)

	freqs, err := d.exec.Execute(ctx, cpuFreqCommand)
	if err != nil {
		slog.Debug("cpu frequencies unavailable", slog.String("error", err.Error()))
		return cpus, nil
	}
	return report.WithFrequencies(cpus, report.ParseCPUFrequencies(freqs)), nil
}

// Flips reads the SurfaceFlinger page flip counter. Sampling it twice gives
// the frame rate over the interval.
func (d *Device) Flips(ctx context.Context) (uint64, error) {
	out, err := d.run(ctx, "frame counter", "dumpsys SurfaceFlinger")
	if err != nil {
		return 0, err
	}
	return report.ParseFlips(out)
}

// Uptime returns whole seconds since boot.
func (d *Device) Uptime(ctx context.Context) (uint64, error) {
	out, err := d.run(ctx, "uptime", "cat /proc/uptime")
	if err != nil {
		return 0, err
	}
	return report.ParseUptime(out)
}

// LoadAverage reads /proc/loadavg.
func (d *Device) LoadAverage(ctx context.Context) (report.LoadAverage, error) {
	out, err := d.run(ctx, "load average", "cat /proc/loadavg")
	if err != nil {
		return report.LoadAverage{}, err
	}
	return report.ParseLoadAverage(out)
}
