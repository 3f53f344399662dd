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
	"math"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/utils/ptr"

	"github.com/kira-tools/kira/pkg/errors"
)

var (
	sizeRe        = regexp.MustCompile(`([0-9]+)x([0-9]+)`)
	refreshRateRe = regexp.MustCompile(`(?i)refreshrate\s*[:=]?\s*([0-9]+(?:\.[0-9]+)?)`)
)

// ScreenInfo is the display resolution from `wm size`.
type ScreenInfo struct {
	Width    int     `json:"width" yaml:"width"`
	Height   int     `json:"height" yaml:"height"`
	Override *string `json:"override,omitempty" yaml:"override,omitempty"`
}

// String renders the physical resolution as WIDTHxHEIGHT.
func (s ScreenInfo) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// BuildInfo identifies the installed system build.
type BuildInfo struct {
	SecurityPatch *string `json:"securityPatch,omitempty" yaml:"securityPatch,omitempty"`
	BuildID       *string `json:"buildId,omitempty" yaml:"buildId,omitempty"`
}

// ParseScreenSize parses `wm size`:
//
//	Physical size: 1080x2400
//	Override size: 720x1600
func ParseScreenSize(output string) (ScreenInfo, error) {
	var (
		info  ScreenInfo
		found bool
	)
	for _, p := range colonScanner.Pairs(output) {
		switch p.Key {
		case "Physical size":
			m := sizeRe.FindStringSubmatch(p.Value)
			if m == nil {
				continue
			}
			info.Width, _ = strconv.Atoi(m[1])
			info.Height, _ = strconv.Atoi(m[2])
			found = true
		case "Override size":
			if sizeRe.MatchString(p.Value) {
				info.Override = ptr.To(p.Value)
			}
		}
	}
	if !found {
		return ScreenInfo{}, errors.MissingField("wm size", "Physical size")
	}
	return info, nil
}

// ParseMaxRefreshRate returns the highest refresh rate mentioned in
// `dumpsys display`, matching "refreshRate" in any case followed by an
// optional ':' or '='. It reports false when no positive rate is found.
func ParseMaxRefreshRate(output string) (float64, bool) {
	best := 0.0
	for _, line := range strings.Split(output, "\n") {
		for _, m := range refreshRateRe.FindAllStringSubmatch(line, -1) {
			rate, err := strconv.ParseFloat(m[1], 64)
			if err != nil || math.IsInf(rate, 0) {
				continue
			}
			best = max(best, rate)
		}
	}
	return best, best > 0
}
