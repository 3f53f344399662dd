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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sdcardListing = `total 72
drwxrwx--x  6 root sdcard_rw 3452 2024-01-15 10:30:45.000000000 +0000 .
drwx--x--x  4 root sdcard_rw 3452 2024-01-10 08:00:00.000000000 +0000 ..
drwxrwx--x  5 u0_a1 sdcard_rw 3452 2024-01-15 10:30:45.123456789 +0000 Android
drwxrwx--x  2 u0_a1 sdcard_rw 3452 2024-01-12 09:00:00.000000000 +0000 DCIM
-rw-rw----  1 u0_a1 sdcard_rw 1024 2024-01-14 18:22:01.000000000 +0000 notes.txt
-rw-rw----  1 u0_a1 sdcard_rw 2048 2024-01-14 18:22:01.000000000 +0000 My Photo 1.jpg
lrwxrwxrwx  1 root root 21 2024-01-01 00:00:00.000000000 +0000 link -> /storage/self/primary
garbage line
`

func TestParseDirectoryListing(t *testing.T) {
	listing := ParseDirectoryListing("/sdcard", sdcardListing)

	require.Len(t, listing.Entries, 5)
	assert.Equal(t, "/sdcard", listing.Path)
	require.NotNil(t, listing.Parent)
	assert.Equal(t, "/", *listing.Parent)
	assert.Equal(t, 2, listing.TotalDirs)
	assert.Equal(t, 3, listing.TotalFiles)
	assert.Equal(t, uint64(1024+2048+21), listing.TotalSize)

	photo := listing.Entries[3]
	assert.Equal(t, "My Photo 1.jpg", photo.Name)
	assert.Equal(t, "/sdcard/My Photo 1.jpg", photo.Path)
	assert.Equal(t, CategoryImage, photo.Category)
	require.NotNil(t, photo.Owner)
	assert.Equal(t, "u0_a1", *photo.Owner)
	require.NotNil(t, photo.Modified)
	assert.Equal(t, int64(1705256521), *photo.Modified)

	link := listing.Entries[4]
	assert.True(t, link.IsSymlink)
	assert.Equal(t, "link", link.Name)
	require.NotNil(t, link.LinkTarget)
	assert.Equal(t, "/storage/self/primary", *link.LinkTarget)
}

func TestParseListingLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantOK   bool
		wantName string
		wantDir  bool
		wantMod  *int64
	}{
		{
			name:     "epoch modify time",
			line:     "-rw-r--r-- 1 root root 512 1705312245 x y file name",
			wantOK:   true,
			wantName: "file name",
			wantMod:  int64Ptr(1705312245),
		},
		{
			name:     "directory",
			line:     "drwxr-xr-x 2 system system 4096 2024-01-15 10:30:45.000000000 +0000 app",
			wantOK:   true,
			wantName: "app",
			wantDir:  true,
			wantMod:  int64Ptr(1705314645),
		},
		{name: "dot", line: "drwxr-xr-x 2 root root 4096 2024-01-15 10:30:45.000000000 +0000 .", wantOK: false},
		{name: "dotdot", line: "drwxr-xr-x 2 root root 4096 2024-01-15 10:30:45.000000000 +0000 ..", wantOK: false},
		{name: "too few fields", line: "-rw-r--r-- 1 root root 512 2024-01-15 10:30 short", wantOK: false},
		{name: "total header", line: "total 48", wantOK: false},
		{name: "error message", line: "ls: /data/secret: Permission denied and more words here", wantOK: false},
		{name: "empty", line: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseListingLine(tt.line, "/data")
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantDir, got.IsDir)
			assert.Equal(t, tt.wantMod, got.Modified)
		})
	}
}

func TestParseListingLineDeviceNode(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantMod  int64
	}{
		{
			name:     "character device",
			line:     "crw-rw-rw- 1 root root 1, 3 2024-01-15 10:30:45.000000000 +0000 null",
			wantName: "null",
			wantMod:  1705314645,
		},
		{
			name:     "block device",
			line:     "brw------- 1 root root 259,   0 2024-01-15 10:30:45.000000000 +0000 mmcblk0p1",
			wantName: "mmcblk0p1",
			wantMod:  1705314645,
		},
		{
			name:     "character device with joined numbers",
			line:     "crw-rw-rw- 1 root root 1,3 2024-01-15 10:30:45.000000000 +0000 zero",
			wantName: "zero",
			wantMod:  1705314645,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseListingLine(tt.line, "/dev")
			require.True(t, ok)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, "/dev/"+tt.wantName, got.Path)
			assert.Equal(t, uint64(0), got.Size)
			require.NotNil(t, got.Modified)
			assert.Equal(t, tt.wantMod, *got.Modified)
		})
	}
}

func TestParseDirectoryListingDevices(t *testing.T) {
	listing := ParseDirectoryListing("/dev", `total 0
crw-rw-rw- 1 root root 1, 3 2024-01-15 10:30:45.000000000 +0000 null
drwxr-xr-x 2 root root 0 2024-01-15 10:30:45.000000000 +0000 block
`)

	require.Len(t, listing.Entries, 2)
	assert.Equal(t, "null", listing.Entries[0].Name)
	assert.Equal(t, 1, listing.TotalFiles)
	assert.Equal(t, 1, listing.TotalDirs)
	assert.Equal(t, uint64(0), listing.TotalSize)
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		in   string
		want *string
	}{
		{"/", nil},
		{"", nil},
		{"relative", nil},
		{"/sdcard", strPtr("/")},
		{"/sdcard/", strPtr("/")},
		{"/sdcard/Download", strPtr("/sdcard")},
		{"/a/b/../c", strPtr("/a")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParentPath(tt.in))
		})
	}
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/a", JoinPath("/", "a"))
	assert.Equal(t, "/sdcard/a", JoinPath("/sdcard/", "a"))
	assert.Equal(t, "a", JoinPath("", "a"))
}

func TestClassifyFile(t *testing.T) {
	assert.Equal(t, CategoryDirectory, ClassifyFile("DCIM", true).Category)
	assert.Equal(t, CategoryAPK, ClassifyFile("base.APK", false).Category)
	assert.Equal(t, "apk", ClassifyFile("base.APK", false).Extension)
	assert.Equal(t, CategoryOther, ClassifyFile("README", false).Category)
	assert.Equal(t, "application/octet-stream", ClassifyFile("a.bin", false).MIMEType)
}

func FuzzParseDirectoryListing(f *testing.F) {
	f.Add(sdcardListing)
	f.Add("total 0\n")
	f.Add("-rw-r--r-- 1 a b notanumber 1 2 3 name")

	f.Fuzz(func(t *testing.T, output string) {
		listing := ParseDirectoryListing("/fuzz", output)
		if listing.TotalFiles+listing.TotalDirs != len(listing.Entries) {
			t.Fatalf("totals %d+%d do not match %d entries",
				listing.TotalFiles, listing.TotalDirs, len(listing.Entries))
		}
		var size uint64
		for _, e := range listing.Entries {
			if e.Name == "." || e.Name == ".." {
				t.Fatalf("dot entry leaked: %q", e.Name)
			}
			if strings.TrimSpace(e.Name) == "" {
				t.Fatal("empty entry name")
			}
			if !e.IsDir {
				size += e.Size
			}
		}
		if size != listing.TotalSize {
			t.Fatalf("total size %d, want %d", listing.TotalSize, size)
		}
	})
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
