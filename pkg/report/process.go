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
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// ProcessInfo is one row of `ps -A`.
type ProcessInfo struct {
	PID  int    `json:"pid" yaml:"pid"`
	User string `json:"user" yaml:"user"`
	Name string `json:"name" yaml:"name"`
}

// ParsePSLine parses a `ps -A` row:
// "u0_a123 4567 890 1234567 89012 0 0 S com.example.app".
// The header row and rows with a non-numeric pid are rejected.
func ParsePSLine(line string) (ProcessInfo, bool) {
	fields := strings.Fields(line)
	if len(fields) < 9 {
		return ProcessInfo{}, false
	}
	pid, err := strconv.Atoi(fields[1])
	if err != nil || pid < 0 {
		return ProcessInfo{}, false
	}
	return ProcessInfo{
		PID:  pid,
		User: fields[0],
		Name: fields[len(fields)-1],
	}, true
}

// ParseProcessList parses `ps -A` output. Each pid appears at most once;
// the first row for a pid wins.
func ParseProcessList(output string) []ProcessInfo {
	seen := sets.New[int]()
	procs := []ProcessInfo{}
	for _, line := range NewScanner().Lines(output) {
		p, ok := ParsePSLine(line)
		if !ok || seen.Has(p.PID) {
			continue
		}
		seen.Insert(p.PID)
		procs = append(procs, p)
	}
	return procs
}

// FilterByPackage returns the processes whose name contains pkg, which
// covers both the main process and ":service" sub-processes.
func FilterByPackage(procs []ProcessInfo, pkg string) []ProcessInfo {
	out := []ProcessInfo{}
	for _, p := range procs {
		if strings.Contains(p.Name, pkg) {
			out = append(out, p)
		}
	}
	return out
}

// ParseRunningServices extracts component names from
// `dumpsys activity services`, e.g. "com.android.phone/.TelephonyDebugService".
// Duplicates are dropped and order is preserved.
func ParseRunningServices(output string) []string {
	seen := sets.New[string]()
	services := []string{}
	for _, line := range NewScanner().Lines(output) {
		start := strings.Index(line, "ServiceRecord{")
		if start < 0 {
			continue
		}
		body := line[start+len("ServiceRecord{"):]
		end := strings.Index(body, "}")
		if end < 0 {
			continue
		}
		fields := strings.Fields(body[:end])
		if len(fields) == 0 {
			continue
		}
		name := fields[len(fields)-1]
		if !strings.Contains(name, "/") || seen.Has(name) {
			continue
		}
		seen.Insert(name)
		services = append(services, name)
	}
	return services
}
