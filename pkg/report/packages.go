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
	"k8s.io/utils/ptr"
)

// InstallLocation is the preferred install location of a package.
type InstallLocation string

const (
	InstallAuto           InstallLocation = "auto"
	InstallInternalOnly   InstallLocation = "internalOnly"
	InstallPreferExternal InstallLocation = "preferExternal"
	InstallUnknown        InstallLocation = "unknown"
)

// ParseInstallLocation maps the pm dump value to an InstallLocation.
// Numeric values are the manifest constants.
func ParseInstallLocation(s string) InstallLocation {
	switch strings.TrimSpace(s) {
	case "auto", "0":
		return InstallAuto
	case "internalOnly", "1":
		return InstallInternalOnly
	case "preferExternal", "2":
		return InstallPreferExternal
	default:
		return InstallUnknown
	}
}

// AppInfo is the subset of `pm dump <package>` a user cares about.
// Every attribute is optional because dumps differ across releases and vendors.
type AppInfo struct {
	Package          string          `json:"package" yaml:"package"`
	VersionName      *string         `json:"versionName,omitempty" yaml:"versionName,omitempty"`
	VersionCode      *int64          `json:"versionCode,omitempty" yaml:"versionCode,omitempty"`
	Label            *string         `json:"label,omitempty" yaml:"label,omitempty"`
	InstallLocation  InstallLocation `json:"installLocation" yaml:"installLocation"`
	Flags            []string        `json:"flags,omitempty" yaml:"flags,omitempty"`
	FirstInstallTime *string         `json:"firstInstallTime,omitempty" yaml:"firstInstallTime,omitempty"`
	LastUpdateTime   *string         `json:"lastUpdateTime,omitempty" yaml:"lastUpdateTime,omitempty"`
	CodePath         *string         `json:"codePath,omitempty" yaml:"codePath,omitempty"`
	DataDir          *string         `json:"dataDir,omitempty" yaml:"dataDir,omitempty"`
	System           bool            `json:"system" yaml:"system"`
	Enabled          *bool           `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// Empty reports whether none of the dump fields were found.
func (a AppInfo) Empty() bool {
	return a.VersionName == nil && a.VersionCode == nil && a.Label == nil &&
		a.InstallLocation == InstallUnknown && len(a.Flags) == 0 &&
		a.FirstInstallTime == nil && a.LastUpdateTime == nil &&
		a.CodePath == nil && a.DataDir == nil && a.Enabled == nil
}

// ParseAppInfo scans a package dump for known "key=value" prefixes.
// The first occurrence of each field wins; absent fields stay nil.
func ParseAppInfo(pkg, output string) AppInfo {
	info := AppInfo{Package: pkg, InstallLocation: InstallUnknown}

	for _, line := range NewScanner().Lines(output) {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "versionName":
			if info.VersionName == nil {
				info.VersionName = ptr.To(value)
			}
		case "versionCode":
			if info.VersionCode == nil {
				if code, err := strconv.ParseInt(firstField(value), 10, 64); err == nil {
					info.VersionCode = ptr.To(code)
				}
			}
		case "pkgFlags":
			if info.Flags == nil {
				info.Flags = strings.Fields(strings.Trim(value, "[] "))
				info.System = sets.New(info.Flags...).Has("SYSTEM")
			}
		case "installLocation":
			if info.InstallLocation == InstallUnknown {
				info.InstallLocation = ParseInstallLocation(value)
			}
		case "firstInstallTime":
			if info.FirstInstallTime == nil {
				info.FirstInstallTime = ptr.To(value)
			}
		case "lastUpdateTime":
			if info.LastUpdateTime == nil {
				info.LastUpdateTime = ptr.To(value)
			}
		case "codePath":
			if info.CodePath == nil {
				info.CodePath = ptr.To(value)
			}
		case "dataDir":
			if info.DataDir == nil {
				info.DataDir = ptr.To(value)
			}
		case "label":
			if info.Label == nil {
				info.Label = ptr.To(value)
			}
		case "enabled":
			if info.Enabled == nil {
				info.Enabled = ptr.To(parseEnabled(firstField(value)))
			}
		}
	}

	return info
}

// parseEnabled reads either a boolean or a COMPONENT_ENABLED_STATE number,
// where 0 (default) and 1 (enabled) mean the package can run.
func parseEnabled(s string) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n == 0 || n == 1
	}
	return false
}

// PackageFilter selects which packages `pm list packages` returns.
type PackageFilter string

const (
	PackagesAll        PackageFilter = "all"
	PackagesSystem     PackageFilter = "system"
	PackagesThirdParty PackageFilter = "third-party"
	PackagesEnabled    PackageFilter = "enabled"
	PackagesDisabled   PackageFilter = "disabled"
)

// Flag returns the pm flag for the filter, empty for PackagesAll.
func (f PackageFilter) Flag() string {
	switch f {
	case PackagesSystem:
		return "-s"
	case PackagesThirdParty:
		return "-3"
	case PackagesEnabled:
		return "-e"
	case PackagesDisabled:
		return "-d"
	default:
		return ""
	}
}

// IsUnknown reports whether f is not one of the defined filters.
func (f PackageFilter) IsUnknown() bool {
	switch f {
	case PackagesAll, PackagesSystem, PackagesThirdParty, PackagesEnabled, PackagesDisabled:
		return false
	default:
		return true
	}
}

// ParsePackageList returns the package names of `pm list packages`
// sorted and without duplicates.
func ParsePackageList(output string) []string {
	names := sets.New[string]()
	for _, line := range NewScanner().Lines(output) {
		name, ok := strings.CutPrefix(line, "package:")
		if !ok {
			continue
		}
		// `pm list packages -f` prints "package:/path/base.apk=name"
		if idx := strings.LastIndex(name, "="); idx >= 0 {
			name = name[idx+1:]
		}
		if name = strings.TrimSpace(name); name != "" {
			names.Insert(name)
		}
	}
	return sets.List(names)
}

// PermissionStatus is the grant state of a runtime permission.
type PermissionStatus string

const (
	PermissionGranted PermissionStatus = "granted"
	PermissionDenied  PermissionStatus = "denied"
)

// Permission is one requested permission of a package.
type Permission struct {
	Name   string           `json:"name" yaml:"name"`
	Status PermissionStatus `json:"status" yaml:"status"`
}

// ParsePermissions extracts permissions with a granted= state from a package
// dump. Both "android.permission.CAMERA: granted=true" and the bracketed
// "[name=android.permission.CAMERA] granted=false" forms are recognized.
func ParsePermissions(output string) []Permission {
	seen := sets.New[string]()
	perms := []Permission{}
	for _, line := range NewScanner().Lines(output) {
		var status PermissionStatus
		switch {
		case strings.Contains(line, "granted=true"):
			status = PermissionGranted
		case strings.Contains(line, "granted=false"):
			status = PermissionDenied
		default:
			continue
		}

		name := permissionName(line)
		if name == "" || seen.Has(name) {
			continue
		}
		seen.Insert(name)
		perms = append(perms, Permission{Name: name, Status: status})
	}
	return perms
}

func permissionName(line string) string {
	if idx := strings.Index(line, "name="); idx >= 0 {
		rest := line[idx+len("name="):]
		if end := strings.IndexAny(rest, "],"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return ""
	}
	name, _, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(name)
}
