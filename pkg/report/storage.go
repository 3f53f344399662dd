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

	"github.com/kira-tools/kira/pkg/errors"
)

// Storage is the capacity of the data partition as printed by df.
// Values keep their original unit formatting.
type Storage struct {
	Total string `json:"total" yaml:"total"`
	Used  string `json:"used" yaml:"used"`
	Free  string `json:"free" yaml:"free"`
}

// Volume is one mounted filesystem reported by `df -k`.
type Volume struct {
	Filesystem  string  `json:"filesystem" yaml:"filesystem"`
	MountPoint  string  `json:"mountPoint" yaml:"mountPoint"`
	TotalBytes  uint64  `json:"totalBytes" yaml:"totalBytes"`
	UsedBytes   uint64  `json:"usedBytes" yaml:"usedBytes"`
	FreeBytes   uint64  `json:"freeBytes" yaml:"freeBytes"`
	PercentUsed float64 `json:"percentUsed" yaml:"percentUsed"`
}

// ParseStorage reads the last data row of df output.
// The result is either three non-empty strings or an error.
func ParseStorage(output string) (Storage, error) {
	lines := NewScanner().Lines(output)
	for i := len(lines) - 1; i >= 0; i-- {
		fields := strings.Fields(lines[i])
		if len(fields) < 4 || !isQuantity(fields[1]) || !isQuantity(fields[2]) || !isQuantity(fields[3]) {
			continue
		}
		return Storage{
			Total: fields[1],
			Used:  fields[2],
			Free:  fields[3],
		}, nil
	}
	return Storage{}, errors.MissingField("df", "capacity")
}

// isQuantity reports whether s starts like a df size ("113G", "118146032").
func isQuantity(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// ParseVolumes parses `df -k` output into the volumes mounted on absolute paths.
func ParseVolumes(output string) []Volume {
	var volumes []Volume
	for _, line := range NewScanner().Lines(output) {
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		mount := fields[len(fields)-1]
		if !strings.HasPrefix(mount, "/") || strings.Contains(mount, ":/") {
			continue
		}

		total, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			// header row
			continue
		}
		used, _ := strconv.ParseUint(fields[2], 10, 64)
		free, _ := strconv.ParseUint(fields[3], 10, 64)

		v := Volume{
			Filesystem: fields[0],
			MountPoint: mount,
			TotalBytes: total * 1024,
			UsedBytes:  used * 1024,
			FreeBytes:  free * 1024,
		}
		if v.TotalBytes > 0 {
			v.PercentUsed = float64(v.UsedBytes) / float64(v.TotalBytes) * 100
		}
		volumes = append(volumes, v)
	}
	return volumes
}
