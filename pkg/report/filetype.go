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
	"strings"
)

// FileCategory groups files by what a user would open them with.
type FileCategory string

const (
	CategoryDirectory FileCategory = "directory"
	CategoryImage     FileCategory = "image"
	CategoryVideo     FileCategory = "video"
	CategoryAudio     FileCategory = "audio"
	CategoryDocument  FileCategory = "document"
	CategoryArchive   FileCategory = "archive"
	CategoryAPK       FileCategory = "apk"
	CategoryCode      FileCategory = "code"
	CategoryOther     FileCategory = "other"
)

// FileType describes a file by extension.
type FileType struct {
	Extension string       `json:"extension,omitempty" yaml:"extension,omitempty"`
	MIMEType  string       `json:"mimeType" yaml:"mimeType"`
	Category  FileCategory `json:"category" yaml:"category"`
}

type fileKind struct {
	mime     string
	category FileCategory
}

var extensionKinds = map[string]fileKind{
	"jpg":  {"image/jpeg", CategoryImage},
	"jpeg": {"image/jpeg", CategoryImage},
	"png":  {"image/png", CategoryImage},
	"gif":  {"image/gif", CategoryImage},
	"bmp":  {"image/bmp", CategoryImage},
	"webp": {"image/webp", CategoryImage},
	"heic": {"image/heic", CategoryImage},
	"mp4":  {"video/mp4", CategoryVideo},
	"mkv":  {"video/x-matroska", CategoryVideo},
	"avi":  {"video/x-msvideo", CategoryVideo},
	"mov":  {"video/quicktime", CategoryVideo},
	"webm": {"video/webm", CategoryVideo},
	"3gp":  {"video/3gpp", CategoryVideo},
	"mp3":  {"audio/mpeg", CategoryAudio},
	"wav":  {"audio/wav", CategoryAudio},
	"ogg":  {"audio/ogg", CategoryAudio},
	"flac": {"audio/flac", CategoryAudio},
	"aac":  {"audio/aac", CategoryAudio},
	"m4a":  {"audio/mp4", CategoryAudio},
	"pdf":  {"application/pdf", CategoryDocument},
	"doc":  {"application/msword", CategoryDocument},
	"docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", CategoryDocument},
	"xls":  {"application/vnd.ms-excel", CategoryDocument},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", CategoryDocument},
	"ppt":  {"application/vnd.ms-powerpoint", CategoryDocument},
	"pptx": {"application/vnd.openxmlformats-officedocument.presentationml.presentation", CategoryDocument},
	"txt":  {"text/plain", CategoryDocument},
	"zip":  {"application/zip", CategoryArchive},
	"rar":  {"application/vnd.rar", CategoryArchive},
	"7z":   {"application/x-7z-compressed", CategoryArchive},
	"tar":  {"application/x-tar", CategoryArchive},
	"gz":   {"application/gzip", CategoryArchive},
	"bz2":  {"application/x-bzip2", CategoryArchive},
	"apk":  {"application/vnd.android.package-archive", CategoryAPK},
	"js":   {"text/javascript", CategoryCode},
	"ts":   {"text/plain", CategoryCode},
	"py":   {"text/x-python", CategoryCode},
	"java": {"text/x-java", CategoryCode},
	"kt":   {"text/plain", CategoryCode},
	"c":    {"text/x-c", CategoryCode},
	"h":    {"text/x-c", CategoryCode},
	"cpp":  {"text/x-c++", CategoryCode},
	"go":   {"text/plain", CategoryCode},
	"rs":   {"text/plain", CategoryCode},
	"html": {"text/html", CategoryCode},
	"css":  {"text/css", CategoryCode},
	"json": {"application/json", CategoryCode},
	"xml":  {"application/xml", CategoryCode},
	"yaml": {"application/yaml", CategoryCode},
	"yml":  {"application/yaml", CategoryCode},
	"toml": {"application/toml", CategoryCode},
}

// ClassifyFile returns the type of a file from its name.
func ClassifyFile(name string, isDir bool) FileType {
	if isDir {
		return FileType{MIMEType: "inode/directory", Category: CategoryDirectory}
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if kind, ok := extensionKinds[ext]; ok {
		return FileType{Extension: ext, MIMEType: kind.mime, Category: kind.category}
	}
	return FileType{Extension: ext, MIMEType: "application/octet-stream", Category: CategoryOther}
}
