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
	"strconv"
	"strings"
	"time"

	"k8s.io/utils/ptr"
)

// fullTimeLayout is the modify-time layout printed by `ls --full-time`.
const fullTimeLayout = "2006-01-02 15:04:05.999999999 -0700"

// minListingFields is the minimum number of whitespace tokens in a listing line.
const minListingFields = 9

// FileInfo is one entry of a directory listing.
type FileInfo struct {
	Name        string       `json:"name" yaml:"name"`
	Path        string       `json:"path" yaml:"path"`
	Permissions string       `json:"permissions" yaml:"permissions"`
	Size        uint64       `json:"size" yaml:"size"`
	IsDir       bool         `json:"isDir" yaml:"isDir"`
	IsSymlink   bool         `json:"isSymlink" yaml:"isSymlink"`
	LinkTarget  *string      `json:"linkTarget,omitempty" yaml:"linkTarget,omitempty"`
	Owner       *string      `json:"owner,omitempty" yaml:"owner,omitempty"`
	Group       *string      `json:"group,omitempty" yaml:"group,omitempty"`
	Modified    *int64       `json:"modified,omitempty" yaml:"modified,omitempty"`
	Category    FileCategory `json:"category" yaml:"category"`
}

// DirectoryListing is the content of one directory plus aggregate counts.
// TotalFiles + TotalDirs always equals len(Entries), and TotalSize is the sum
// of the sizes of the non-directory entries.
type DirectoryListing struct {
	Path       string     `json:"path" yaml:"path"`
	Parent     *string    `json:"parent,omitempty" yaml:"parent,omitempty"`
	Entries    []FileInfo `json:"entries" yaml:"entries"`
	TotalFiles int        `json:"totalFiles" yaml:"totalFiles"`
	TotalDirs  int        `json:"totalDirs" yaml:"totalDirs"`
	TotalSize  uint64     `json:"totalSize" yaml:"totalSize"`
}

// ParseListingLine parses one line of `ls -la` output for an entry of dir.
//
// The line needs at least nine whitespace-separated fields: permissions,
// link count, owner, group, size, modify time, and a name that starts at the
// ninth field and may contain spaces. The modify time is either an epoch
// seconds token or the --full-time layout. Character and block devices print
// "major, minor" in place of the size, which shifts the remaining fields by
// one; their size is reported as 0. Entries named "." or ".." are dropped.
func ParseListingLine(line, dir string) (FileInfo, bool) {
	fields := strings.Fields(line)
	if len(fields) < minListingFields {
		return FileInfo{}, false
	}

	perms := fields[0]
	if !validPermissions(perms) {
		return FileInfo{}, false
	}

	// index of the first modify-time token
	timeAt := 5
	if isDeviceNode(perms) && strings.HasSuffix(fields[4], ",") {
		timeAt++
	}
	nameAt := timeAt + 3
	if len(fields) <= nameAt {
		return FileInfo{}, false
	}

	name := strings.Join(fields[nameAt:], " ")
	var target *string
	isSymlink := perms[0] == 'l'
	if isSymlink {
		if before, after, found := strings.Cut(name, " -> "); found {
			name = before
			target = ptr.To(after)
		}
	}
	if name == "." || name == ".." || name == "" {
		return FileInfo{}, false
	}

	var size uint64
	if !isDeviceNode(perms) {
		size, _ = strconv.ParseUint(fields[4], 10, 64)
	}

	isDir := perms[0] == 'd'
	return FileInfo{
		Name:        name,
		Path:        JoinPath(dir, name),
		Permissions: perms,
		Size:        size,
		IsDir:       isDir,
		IsSymlink:   isSymlink,
		LinkTarget:  target,
		Owner:       ptr.To(fields[2]),
		Group:       ptr.To(fields[3]),
		Modified:    parseModified(fields[timeAt:nameAt]),
		Category:    ClassifyFile(name, isDir).Category,
	}, true
}

func isDeviceNode(perms string) bool {
	return perms[0] == 'c' || perms[0] == 'b'
}

// validPermissions reports whether s looks like "drwxr-x--x", optionally
// followed by an ACL or SELinux marker.
func validPermissions(s string) bool {
	if len(s) < 10 || !strings.ContainsRune("-dlbcps", rune(s[0])) {
		return false
	}
	for _, c := range s[1:10] {
		if !strings.ContainsRune("rwxsStT-", c) {
			return false
		}
	}
	return true
}

func parseModified(fields []string) *int64 {
	if epoch, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
		return ptr.To(epoch)
	}
	ts, err := time.Parse(fullTimeLayout, strings.Join(fields, " "))
	if err != nil {
		return nil
	}
	return ptr.To(ts.Unix())
}

// ParseDirectoryListing folds ParseListingLine over the output of
// `ls -la` run against dir. The "total" header and unparsable lines are
// skipped. Parent is derived from dir itself, never from the output.
func ParseDirectoryListing(dir, output string) DirectoryListing {
	listing := DirectoryListing{
		Path:    dir,
		Parent:  ParentPath(dir),
		Entries: []FileInfo{},
	}

	for _, line := range NewScanner().Lines(output) {
		info, ok := ParseListingLine(line, dir)
		if !ok {
			continue
		}
		if info.IsDir {
			listing.TotalDirs++
		} else {
			listing.TotalFiles++
			listing.TotalSize += info.Size
		}
		listing.Entries = append(listing.Entries, info)
	}

	return listing
}

// ParentPath returns the parent directory of p, or nil when p is the
// root or has no directory component.
func ParentPath(p string) *string {
	clean := path.Clean(strings.TrimSpace(p))
	if clean == "/" || clean == "." {
		return nil
	}
	parent := path.Dir(clean)
	if parent == "." {
		return nil
	}
	return ptr.To(parent)
}

// JoinPath joins a directory and an entry name with a single slash.
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return strings.TrimRight(dir, "/") + "/" + name
}
