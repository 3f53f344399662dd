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

package report

import (
	"regexp"
	"strconv"
	"strings"

	"k8s.io/utils/ptr"
)

var (
	coreRe     = regexp.MustCompile(`^cpu([0-9]+)$`)
	corePathRe = regexp.MustCompile(`/cpu([0-9]+)/cpufreq/`)
)

// CPUTimes holds the cumulative jiffies of one core from /proc/stat.
type CPUTimes struct {
	User    uint64 `json:"user" yaml:"user"`
	Nice    uint64 `json:"nice" yaml:"nice"`
	System  uint64 `json:"system" yaml:"system"`
	Idle    uint64 `json:"idle" yaml:"idle"`
	IOWait  uint64 `json:"iowait" yaml:"iowait"`
	IRQ     uint64 `json:"irq" yaml:"irq"`
	SoftIRQ uint64 `json:"softirq" yaml:"softirq"`
}

// Total returns the sum of all counters.
func (c CPUTimes) Total() uint64 {
	return c.User + c.Nice + c.System + c.Idle + c.IOWait + c.IRQ + c.SoftIRQ
}

// Busy returns the non-idle share of Total.
func (c CPUTimes) Busy() uint64 {
	return c.Total() - c.Idle - c.IOWait
}

// CPUInfo is one logical core.
type CPUInfo struct {
	Core     string   `json:"core" yaml:"core"`
	Index    int      `json:"index" yaml:"index"`
	Times    CPUTimes `json:"times" yaml:"times"`
	SpeedMHz *uint32  `json:"speedMhz,omitempty" yaml:"speedMhz,omitempty"`
}

// ParseCPUStatLine parses a per-core /proc/stat line such as
// "cpu0 1234 0 567 89012 34 0 12 0 0 0". The aggregate "cpu" line is rejected.
// Counters that are not numbers read as zero.
func ParseCPUStatLine(line string) (CPUInfo, bool) {
	fields := strings.Fields(line)
	if len(fields) < 8 {
		return CPUInfo{}, false
	}
	m := coreRe.FindStringSubmatch(fields[0])
	if m == nil {
		return CPUInfo{}, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return CPUInfo{}, false
	}

	counter := func(i int) uint64 {
		v, _ := strconv.ParseUint(fields[i], 10, 64)
		return v
	}

	return CPUInfo{
		Core:  fields[0],
		Index: idx,
		Times: CPUTimes{
			User:    counter(1),
			Nice:    counter(2),
			System:  counter(3),
			Idle:    counter(4),
			IOWait:  counter(5),
			IRQ:     counter(6),
			SoftIRQ: counter(7),
		},
	}, true
}

// ParseCPUStat returns the per-core entries of /proc/stat in output order.
func ParseCPUStat(output string) []CPUInfo {
	var cpus []CPUInfo
	for _, line := range NewScanner().Lines(output) {
		if cpu, ok := ParseCPUStatLine(line); ok {
			cpus = append(cpus, cpu)
		}
	}
	return cpus
}

// ParseCPUFrequencies parses scaling_cur_freq readings in kHz and returns
// MHz keyed by core index. Lines prefixed with their sysfs path
// ("/sys/devices/system/cpu/cpu3/cpufreq/scaling_cur_freq:1804800") map to
// that core; bare values are assigned to cores in order.
func ParseCPUFrequencies(output string) map[int]uint32 {
	speeds := make(map[int]uint32)
	next := 0
	for _, line := range NewScanner().Lines(output) {
		core := -1
		value := line
		if idx := strings.LastIndex(line, ":"); idx >= 0 {
			if m := corePathRe.FindStringSubmatch(line[:idx]); m != nil {
				core, _ = strconv.Atoi(m[1])
			}
			value = line[idx+1:]
		}

		khz, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
		if err != nil {
			continue
		}
		if core < 0 {
			core = next
			next++
		}
		speeds[core] = uint32(khz / 1000)
	}
	return speeds
}

// WithFrequencies returns a copy of cpus with SpeedMHz set from speeds.
func WithFrequencies(cpus []CPUInfo, speeds map[int]uint32) []CPUInfo {
	out := make([]CPUInfo, len(cpus))
	for i, cpu := range cpus {
		if mhz, ok := speeds[cpu.Index]; ok {
			cpu.SpeedMHz = ptr.To(mhz)
		}
		out[i] = cpu
	}
	return out
}
