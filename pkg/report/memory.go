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
	"strconv"

	"k8s.io/utils/ptr"

	"github.com/kira-tools/kira/pkg/errors"
)

// MemoryInfo holds system memory counters from /proc/meminfo in kilobytes.
// The counters are independent; AvailableKB may exceed TotalKB under pressure.
type MemoryInfo struct {
	TotalKB     uint64 `json:"totalKb" yaml:"totalKb"`
	FreeKB      uint64 `json:"freeKb" yaml:"freeKb"`
	AvailableKB uint64 `json:"availableKb" yaml:"availableKb"`
}

// ProcessMemory holds per-process memory from /proc/<pid>/status.
type ProcessMemory struct {
	PID      int     `json:"pid" yaml:"pid"`
	Name     string  `json:"name" yaml:"name"`
	VmRSSKB  *uint64 `json:"vmRssKb,omitempty" yaml:"vmRssKb,omitempty"`
	VmSizeKB *uint64 `json:"vmSizeKb,omitempty" yaml:"vmSizeKb,omitempty"`
	Threads  *int    `json:"threads,omitempty" yaml:"threads,omitempty"`
}

var colonScanner = NewScanner(WithKVDelimiters(":"))

// ParseMemInfo parses /proc/meminfo. MemTotal must be present and nonzero.
func ParseMemInfo(output string) (MemoryInfo, error) {
	var info MemoryInfo
	for _, p := range colonScanner.Pairs(output) {
		v, err := strconv.ParseUint(firstField(p.Value), 10, 64)
		if err != nil {
			continue
		}
		switch p.Key {
		case "MemTotal":
			info.TotalKB = v
		case "MemFree":
			info.FreeKB = v
		case "MemAvailable":
			info.AvailableKB = v
		}
	}

	if info.TotalKB == 0 {
		return MemoryInfo{}, errors.MissingField("meminfo", "MemTotal")
	}
	return info, nil
}

// ParseProcStatus parses /proc/<pid>/status. Name must be present.
func ParseProcStatus(pid int, output string) (ProcessMemory, error) {
	pm := ProcessMemory{PID: pid}
	found := false
	for _, p := range colonScanner.Pairs(output) {
		switch p.Key {
		case "Name":
			pm.Name = p.Value
			found = true
		case "VmRSS":
			if v, err := strconv.ParseUint(firstField(p.Value), 10, 64); err == nil {
				pm.VmRSSKB = ptr.To(v)
			}
		case "VmSize":
			if v, err := strconv.ParseUint(firstField(p.Value), 10, 64); err == nil {
				pm.VmSizeKB = ptr.To(v)
			}
		case "Threads":
			if v, err := strconv.Atoi(firstField(p.Value)); err == nil {
				pm.Threads = ptr.To(v)
			}
		}
	}

	if !found {
		return ProcessMemory{}, errors.MissingField("proc status", "Name")
	}
	return pm, nil
}
