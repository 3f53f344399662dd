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
	"fmt"
	"strings"
)

// Buffer selects a logcat ring buffer.
type Buffer string

const (
	BufferMain    Buffer = "main"
	BufferSystem  Buffer = "system"
	BufferRadio   Buffer = "radio"
	BufferEvents  Buffer = "events"
	BufferCrash   Buffer = "crash"
	BufferAll     Buffer = "all"
	BufferDefault Buffer = "default"
)

// Arg returns the value passed to `logcat -b`. BufferDefault and the empty
// buffer select main.
func (b Buffer) Arg() string {
	if b == BufferDefault || b == "" {
		return string(BufferMain)
	}
	return string(b)
}

// IsUnknown reports whether b is not one of the defined buffers.
func (b Buffer) IsUnknown() bool {
	switch b {
	case BufferMain, BufferSystem, BufferRadio, BufferEvents, BufferCrash, BufferAll, BufferDefault, "":
		return false
	default:
		return true
	}
}

// ParseBuffer validates a buffer name.
func ParseBuffer(s string) (Buffer, error) {
	b := Buffer(strings.ToLower(strings.TrimSpace(s)))
	if b.IsUnknown() {
		return "", fmt.Errorf("unknown logcat buffer %q", s)
	}
	if b == "" {
		return BufferDefault, nil
	}
	return b, nil
}
