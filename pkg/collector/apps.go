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
	"strings"

	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/report"
	"github.com/kira-tools/kira/pkg/shell"
)

// Packages lists installed package names matching filter.
func (d *Device) Packages(ctx context.Context, filter report.PackageFilter) ([]string, error) {
	if filter == "" {
		filter = report.PackagesAll
	}
	if filter.IsUnknown() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "unknown package filter",
			map[string]any{"filter": string(filter)})
	}
	command := "pm list packages"
	if flag := filter.Flag(); flag != "" {
		command += " " + flag
	}
	out, err := d.run(ctx, "package list", command)
	if err != nil {
		return nil, err
	}
	return report.ParsePackageList(out), nil
}

// AppInfo reads the package dump of pkg. A dump with none of the known
// fields means the package is not installed and is NOT_FOUND.
func (d *Device) AppInfo(ctx context.Context, pkg string) (report.AppInfo, error) {
	out, err := d.packageDump(ctx, pkg)
	if err != nil {
		return report.AppInfo{}, err
	}
	info := report.ParseAppInfo(pkg, out)
	if info.Empty() {
		return report.AppInfo{}, errors.NewWithContext(errors.ErrCodeNotFound, "package not found",
			map[string]any{"package": pkg})
	}
	return info, nil
}

// Permissions lists the permissions recorded in the package dump of pkg.
func (d *Device) Permissions(ctx context.Context, pkg string) ([]report.Permission, error) {
	out, err := d.packageDump(ctx, pkg)
	if err != nil {
		return nil, err
	}
	return report.ParsePermissions(out), nil
}

// TopPackage returns the package owning the foreground activity. The zero
// value means nothing is in the foreground.
func (d *Device) TopPackage(ctx context.Context) (report.TopPackage, error) {
	out, err := d.run(ctx, "activity processes", "dumpsys activity processes")
	if err != nil {
		return report.TopPackage{}, err
	}
	return report.ParseTopPackage(out), nil
}

func (d *Device) packageDump(ctx context.Context, pkg string) (string, error) {
	pkg = strings.TrimSpace(pkg)
	if pkg == "" {
		return "", errors.New(errors.ErrCodeInvalidRequest, "package name is required")
	}
	return d.run(ctx, "package dump", "dumpsys package "+shell.Quote(pkg))
}

// LauncherActivity returns the component started by the launcher for pkg,
// as "package/class". A package without one is NOT_FOUND.
func (d *Device) LauncherActivity(ctx context.Context, pkg string) (string, error) {
	pkg = strings.TrimSpace(pkg)
	if pkg == "" {
		return "", errors.New(errors.ErrCodeInvalidRequest, "package name is required")
	}
	out, err := d.run(ctx, "launcher activity",
		"cmd package resolve-activity --brief -c android.intent.category.LAUNCHER "+shell.Quote(pkg))
	if err != nil {
		return "", err
	}
	activity, ok := report.ParseLauncherActivity(out)
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeNotFound, "no launcher activity",
			map[string]any{"package": pkg})
	}
	return activity, nil
}
