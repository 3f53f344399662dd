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
	"log/slog"
	"strings"
)

// Pair is one key/value line of a report.
type Pair struct {
	Key   string
	Value string
}

// Option configures a Scanner.
type Option func(*Scanner)

// Scanner splits command output into lines and key/value pairs.
type Scanner struct {
	kvDelimiters    string
	vTrimChars      string
	skipComments    bool
	skipEmptyValues bool
}

// WithKVDelimiters sets the characters that separate a key from its value.
// The first occurrence of any of them splits the line. Default is ":=".
func WithKVDelimiters(chars string) Option {
	return func(s *Scanner) {
		s.kvDelimiters = chars
	}
}

// WithVTrimChars sets characters to trim from values.
// Default is no trimming.
func WithVTrimChars(chars string) Option {
	return func(s *Scanner) {
		s.vTrimChars = chars
	}
}

// WithSkipComments sets whether lines starting with '#' are dropped.
// Default is false.
func WithSkipComments(skip bool) Option {
	return func(s *Scanner) {
		s.skipComments = skip
	}
}

// WithSkipEmptyValues sets whether pairs with an empty value are dropped.
// Default is false.
func WithSkipEmptyValues(skip bool) Option {
	return func(s *Scanner) {
		s.skipEmptyValues = skip
	}
}

// NewScanner creates a Scanner with the provided options.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		kvDelimiters: ":=",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lines returns the trimmed, non-empty lines of output.
func (s *Scanner) Lines(output string) []string {
	parts := strings.Split(output, "\n")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		if s.skipComments && strings.HasPrefix(clean, "#") {
			continue
		}
		result = append(result, clean)
	}
	return result
}

// Pairs returns the key/value pairs of output in order.
// Lines without a delimiter are skipped.
func (s *Scanner) Pairs(output string) []Pair {
	lines := s.Lines(output)
	result := make([]Pair, 0, len(lines))
	for _, line := range lines {
		key, value, ok := SplitKV(line, s.kvDelimiters)
		if !ok {
			continue
		}
		if s.vTrimChars != "" {
			value = strings.Trim(value, s.vTrimChars)
		}
		if s.skipEmptyValues && value == "" {
			slog.Debug("skipping entry with empty value", slog.String("key", key))
			continue
		}
		result = append(result, Pair{Key: key, Value: value})
	}
	return result
}

// Map returns the key/value pairs of output as a map.
// When a key repeats, the first value wins.
func (s *Scanner) Map(output string) map[string]string {
	result := make(map[string]string)
	for _, p := range s.Pairs(output) {
		if _, ok := result[p.Key]; ok {
			continue
		}
		result[p.Key] = p.Value
	}
	return result
}

// SplitKV splits line at the first occurrence of any delimiter character.
// Key and value are trimmed. It reports false when no delimiter is present
// or the key is empty.
func SplitKV(line, delimiters string) (key, value string, ok bool) {
	idx := strings.IndexAny(line, delimiters)
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}

// firstField returns the first whitespace-separated token of s.
func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
