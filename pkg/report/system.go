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

	"github.com/kira-tools/kira/pkg/errors"
)

var flipsRe = regexp.MustCompile(`flips=([0-9]+)`)

// LoadAverage is the first three fields of /proc/loadavg.
type LoadAverage struct {
	One     float64 `json:"one" yaml:"one"`
	Five    float64 `json:"five" yaml:"five"`
	Fifteen float64 `json:"fifteen" yaml:"fifteen"`
}

// Mount is one line of /proc/mounts.
type Mount struct {
	Device     string `json:"device" yaml:"device"`
	MountPoint string `json:"mountPoint" yaml:"mountPoint"`
	FSType     string `json:"fsType" yaml:"fsType"`
	Options    string `json:"options" yaml:"options"`
}

// ParseUptime returns whole seconds from /proc/uptime.
func ParseUptime(output string) (uint64, error) {
	secs, err := strconv.ParseFloat(firstField(output), 64)
	if err != nil || secs < 0 {
		return 0, errors.MissingField("uptime", "seconds")
	}
	return uint64(secs), nil
}

// ParseLoadAverage parses /proc/loadavg.
func ParseLoadAverage(output string) (LoadAverage, error) {
	fields := strings.Fields(output)
	if len(fields) < 3 {
		return LoadAverage{}, errors.MissingField("loadavg", "load")
	}
	var vals [3]float64
	for i := range vals {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return LoadAverage{}, errors.MissingField("loadavg", "load")
		}
		vals[i] = v
	}
	return LoadAverage{One: vals[0], Five: vals[1], Fifteen: vals[2]}, nil
}

// ParseMounts parses /proc/mounts, skipping lines with fewer than four fields.
func ParseMounts(output string) []Mount {
	mounts := []Mount{}
	for _, line := range NewScanner().Lines(output) {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		mounts = append(mounts, Mount{
			Device:     fields[0],
			MountPoint: fields[1],
			FSType:     fields[2],
			Options:    fields[3],
		})
	}
	return mounts
}

// ParseFlips returns the first SurfaceFlinger "flips=N" counter.
func ParseFlips(output string) (uint64, error) {
	m := flipsRe.FindStringSubmatch(output)
	if m == nil {
		return 0, errors.MissingField("SurfaceFlinger", "flips")
	}
	flips, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, errors.MissingField("SurfaceFlinger", "flips")
	}
	return flips, nil
}

// IsRootID reports whether `id` output belongs to uid 0.
func IsRootID(output string) bool {
	return strings.Contains(output, "uid=0(") || strings.HasPrefix(strings.TrimSpace(output), "uid=0 ")
}
