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

// BatteryInfo is the state reported by `dumpsys battery`.
type BatteryInfo struct {
	// Level is the charge in percent.
	Level uint8 `json:"level" yaml:"level"`
	// Temperature is in tenths of a degree Celsius.
	Temperature int32 `json:"temperature" yaml:"temperature"`
	// Voltage is in millivolts.
	Voltage    uint32  `json:"voltage" yaml:"voltage"`
	Technology *string `json:"technology,omitempty" yaml:"technology,omitempty"`
}

// Celsius returns the temperature in degrees Celsius.
func (b BatteryInfo) Celsius() float64 {
	return float64(b.Temperature) / 10
}

// ParseBattery parses `dumpsys battery`. A dump without a numeric level
// is not a battery report and yields a MISSING_FIELD error.
//
// When the dump reports a scale other than 100 the level is converted to percent.
func ParseBattery(output string) (BatteryInfo, error) {
	var (
		info  BatteryInfo
		level uint64
		scale uint64 = 100
		found bool
	)

	for _, p := range colonScanner.Pairs(output) {
		switch p.Key {
		case "level":
			if found {
				continue
			}
			if v, err := strconv.ParseUint(p.Value, 10, 32); err == nil {
				level = v
				found = true
			}
		case "scale":
			if v, err := strconv.ParseUint(p.Value, 10, 32); err == nil && v > 0 {
				scale = v
			}
		case "temperature":
			if v, err := strconv.ParseInt(p.Value, 10, 32); err == nil {
				info.Temperature = int32(v)
			}
		case "voltage":
			if v, err := strconv.ParseUint(p.Value, 10, 32); err == nil {
				info.Voltage = uint32(v)
			}
		case "technology":
			if p.Value != "" {
				info.Technology = ptr.To(p.Value)
			}
		}
	}

	if !found {
		return BatteryInfo{}, errors.MissingField("battery", "level")
	}

	pct := level * 100 / scale
	if pct > 100 {
		pct = 100
	}
	info.Level = uint8(pct)
	return info, nil
}
