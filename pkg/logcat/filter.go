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

package logcat

import (
	"strings"

	"k8s.io/utils/ptr"
)

// Filter selects entries. Empty fields are not applied, so the zero Filter
// matches every entry.
type Filter struct {
	// Tag matches entries whose tag contains it.
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty"`
	// MinLevel matches entries at or above it.
	MinLevel *Level `json:"minLevel,omitempty" yaml:"minLevel,omitempty"`
	// Message matches entries whose message contains it.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// DefaultFilter matches Info and above.
func DefaultFilter() Filter {
	return Filter{MinLevel: ptr.To(LevelInfo)}
}

// Matches reports whether e satisfies every set field of f.
func (f Filter) Matches(e Entry) bool {
	if f.Tag != "" && !strings.Contains(e.Tag, f.Tag) {
		return false
	}
	if f.MinLevel != nil && e.Level < *f.MinLevel {
		return false
	}
	if f.Message != "" && !strings.Contains(e.Message, f.Message) {
		return false
	}
	return true
}

// FilterEntries returns the entries matching f, preserving order.
func FilterEntries(entries []Entry, f Filter) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
