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
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Entry is one parsed log line.
type Entry struct {
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	PID       int    `json:"pid" yaml:"pid"`
	TID       int    `json:"tid" yaml:"tid"`
	Level     Level  `json:"level" yaml:"level"`
	Tag       string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Message   string `json:"message" yaml:"message"`
	Raw       string `json:"-" yaml:"-"`
}

// String renders the entry in threadtime layout.
func (e Entry) String() string {
	ts := e.Timestamp
	if ts == "" {
		ts = "-"
	}
	return fmt.Sprintf("%s %5d %5d %s %s: %s", ts, e.PID, e.TID, e.Level, e.Tag, e.Message)
}

// "I/ActivityManager( 1234): Starting activity"
var briefRe = regexp.MustCompile(`^([VDIWEFSA])/([^(]*)\(\s*(\d+)\):\s?(.*)$`)

// ParseLine parses a single log line. It returns false only for blank input;
// any other line yields an entry, degenerate if no layout matches.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{}, false
	}
	if e, ok := parseThreadtime(line); ok {
		return e, true
	}
	if e, ok := parseBrief(line); ok {
		return e, true
	}
	if e, ok := parseBracketed(line); ok {
		return e, true
	}
	return Entry{Level: LevelDebug, Message: line, Raw: line}, true
}

// ParseLines parses every non-blank line of a logcat dump.
func ParseLines(output string) []Entry {
	entries := make([]Entry, 0)
	for _, line := range strings.Split(output, "\n") {
		if e, ok := ParseLine(line); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

func parseThreadtime(line string) (Entry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 7 || len(fields[4]) != 1 {
		return Entry{}, false
	}
	pid, err := strconv.Atoi(fields[2])
	if err != nil {
		return Entry{}, false
	}
	tid, err := strconv.Atoi(fields[3])
	if err != nil {
		return Entry{}, false
	}

	tag, message := splitTag(skipFields(line, 5))
	return Entry{
		Timestamp: fields[0] + " " + fields[1],
		PID:       pid,
		TID:       tid,
		Level:     LevelFromCode(fields[4][0]),
		Tag:       tag,
		Message:   message,
		Raw:       line,
	}, true
}

func parseBrief(line string) (Entry, bool) {
	m := briefRe.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	pid, err := strconv.Atoi(m[3])
	if err != nil {
		return Entry{}, false
	}
	return Entry{
		PID:     pid,
		Level:   LevelFromCode(m[1][0]),
		Tag:     strings.TrimSpace(m[2]),
		Message: m[4],
		Raw:     line,
	}, true
}

// "[ActivityManager] I Starting activity"
func parseBracketed(line string) (Entry, bool) {
	if !strings.HasPrefix(line, "[") {
		return Entry{}, false
	}
	end := strings.Index(line, "]")
	if end < 0 {
		return Entry{}, false
	}
	e := Entry{
		Tag:   strings.TrimSpace(line[1:end]),
		Level: LevelInfo,
		Raw:   line,
	}
	rest := strings.TrimSpace(line[end+1:])
	code, message, _ := strings.Cut(rest, " ")
	if len(code) == 1 {
		e.Level = LevelFromCode(code[0])
		e.Message = strings.TrimSpace(message)
	} else {
		e.Message = rest
	}
	return e, true
}

// skipFields returns s after its first n whitespace-delimited fields.
func skipFields(s string, n int) string {
	for range n {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			return ""
		}
		s = s[i:]
	}
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// splitTag separates "Tag: message". Tags may be space padded ("chatty  : ...").
func splitTag(rest string) (string, string) {
	if i := strings.Index(rest, ": "); i >= 0 {
		return strings.TrimSpace(rest[:i]), strings.TrimSpace(rest[i+2:])
	}
	tag, message, _ := strings.Cut(rest, " ")
	return strings.TrimSuffix(tag, ":"), strings.TrimSpace(message)
}
