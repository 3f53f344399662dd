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

	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/report"
)

// ScreenSize reads the physical and override resolution from `wm size`.
func (d *Device) ScreenSize(ctx context.Context) (report.ScreenInfo, error) {
	out, err := d.run(ctx, "screen size", "wm size")
	if err != nil {
		return report.ScreenInfo{}, err
	}
	return report.ParseScreenSize(out)
}

// RefreshRate returns the highest refresh rate the display service reports.
func (d *Device) RefreshRate(ctx context.Context) (float64, error) {
	out, err := d.run(ctx, "display", "dumpsys display")
	if err != nil {
		return 0, err
	}
	rate, ok := report.ParseMaxRefreshRate(out)
	if !ok {
		return 0, errors.MissingField("display", "refreshRate")
	}
	return rate, nil
}

// BuildInfo reads the security patch level and build id. Unset properties
// are left nil.
func (d *Device) BuildInfo(ctx context.Context) (report.BuildInfo, error) {
	patch, err := d.optionalProp(ctx, PropSecurityPatch)
	if err != nil {
		return report.BuildInfo{}, err
	}
	id, err := d.optionalProp(ctx, PropBuildID)
	if err != nil {
		return report.BuildInfo{}, err
	}
	return report.BuildInfo{SecurityPatch: patch, BuildID: id}, nil
}
