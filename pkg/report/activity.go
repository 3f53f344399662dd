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

	"k8s.io/utils/ptr"
)

// topActivityMarker tags the foreground process line in `dumpsys activity`.
const topActivityMarker = "top-activity"

// TopPackage is the package owning the foreground activity.
// The zero value means no foreground activity was reported.
type TopPackage struct {
	Name string `json:"name" yaml:"name"`
	PID  *int   `json:"pid,omitempty" yaml:"pid,omitempty"`
}

// Found reports whether a foreground package was present.
func (t TopPackage) Found() bool {
	return t.Name != ""
}

// ParseTopPackage scans `dumpsys activity` output for the process line
// marked top-activity, for example
//
//	Proc # 0: fg     T/A/TOP  LCM  t: 0 12345:com.example.app/u0a123 (top-activity)
//
// and splits its second-to-last token into pid and package. A missing marker
// or an unexpected token yields the zero TopPackage.
func ParseTopPackage(output string) TopPackage {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, topActivityMarker) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return TopPackage{}
		}

		pidPart, pkgPart, ok := strings.Cut(fields[len(fields)-2], ":")
		if !ok || strings.Contains(pkgPart, ":") {
			return TopPackage{}
		}
		name, _, _ := strings.Cut(pkgPart, "/")

		top := TopPackage{Name: name}
		if pid, err := strconv.Atoi(pidPart); err == nil {
			top.PID = ptr.To(pid)
		}
		return top
	}
	return TopPackage{}
}

// ParseLauncherActivity parses
// `cmd package resolve-activity --brief -c android.intent.category.LAUNCHER`,
// whose last line is the component, for example
//
//	priority=0 preferredOrder=0 match=0x108000 specificIndex=-1 isDefault=true
//	com.android.settings/.Settings
//
// Short class names are expanded against the package. False means the package
// has no launcher activity ("No activity found").
func ParseLauncherActivity(output string) (string, bool) {
	lines := NewScanner().Lines(output)
	if len(lines) == 0 {
		return "", false
	}
	last := lines[len(lines)-1]
	pkg, class, ok := strings.Cut(last, "/")
	if !ok || pkg == "" || class == "" || strings.ContainsAny(last, " \t") {
		return "", false
	}
	if strings.HasPrefix(class, ".") {
		class = pkg + class
	}
	return pkg + "/" + class, true
}
