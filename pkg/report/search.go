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
	"path"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/ptr"
)

// grepMatchRe splits "path:line:text" as printed by `grep -n`. The path is
// matched lazily so a colon inside the text stays with the text.
var grepMatchRe = regexp.MustCompile(`^(.+?):([0-9]+):(.*)$`)

// SearchResult is one path found by a name or content search.
type SearchResult struct {
	Name        string  `json:"name" yaml:"name"`
	Path        string  `json:"path" yaml:"path"`
	Line        *int    `json:"line,omitempty" yaml:"line,omitempty"`
	MatchedLine *string `json:"matchedLine,omitempty" yaml:"matchedLine,omitempty"`
}

// ParseFileInfo parses `ls -la --full-time -d p`. The entry keeps p as its
// path and the last element of p as its name; false means ls printed no
// entry, typically because p does not exist.
func ParseFileInfo(p, output string) (FileInfo, bool) {
	for _, line := range NewScanner().Lines(output) {
		info, ok := ParseListingLine(line, "")
		if !ok {
			continue
		}
		info.Name = path.Base(info.Name)
		info.Path = p
		info.Category = ClassifyFile(info.Name, info.IsDir).Category
		return info, true
	}
	return FileInfo{}, false
}

// ParseFindOutput parses one path per line as printed by `find`. Diagnostics
// and duplicates are dropped; order is preserved.
func ParseFindOutput(output string) []SearchResult {
	results := []SearchResult{}
	seen := sets.New[string]()
	for _, line := range NewScanner().Lines(output) {
		if isSearchDiagnostic(line) || seen.Has(line) {
			continue
		}
		seen.Insert(line)
		results = append(results, SearchResult{Name: path.Base(line), Path: line})
	}
	return results
}

// ParseGrepMatches parses `grep -r -n -m 1` output into one result per file,
// keeping the first matching line of each.
func ParseGrepMatches(output string) []SearchResult {
	results := []SearchResult{}
	seen := sets.New[string]()
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if isSearchDiagnostic(line) {
			continue
		}
		m := grepMatchRe.FindStringSubmatch(line)
		if m == nil || seen.Has(m[1]) {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		seen.Insert(m[1])
		results = append(results, SearchResult{
			Name:        path.Base(m[1]),
			Path:        m[1],
			Line:        ptr.To(n),
			MatchedLine: ptr.To(strings.TrimSpace(m[3])),
		})
	}
	return results
}

func isSearchDiagnostic(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, "find: ") ||
		strings.HasPrefix(line, "grep: ") ||
		strings.HasPrefix(line, "Binary file ")
}
