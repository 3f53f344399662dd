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

package collector

import (
	"context"
	"strings"

	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/report"
	"github.com/kira-tools/kira/pkg/shell"
)

// Storage reports capacity of the /data partition.
func (d *Device) Storage(ctx context.Context) (report.Storage, error) {
	out, err := d.run(ctx, "storage", "df /data")
	if err != nil {
		return report.Storage{}, err
	}
	return report.ParseStorage(out)
}

// Volumes lists mounted volumes with their usage.
func (d *Device) Volumes(ctx context.Context) ([]report.Volume, error) {
	out, err := d.run(ctx, "volumes", "df -k")
	if err != nil {
		return nil, err
	}
	return report.ParseVolumes(out), nil
}

// Mounts reads /proc/mounts.
func (d *Device) Mounts(ctx context.Context) ([]report.Mount, error) {
	out, err := d.run(ctx, "mounts", "cat /proc/mounts")
	if err != nil {
		return nil, err
	}
	return report.ParseMounts(out), nil
}

// ListDirectory lists dir with full timestamps. A missing path is NOT_FOUND
// and an unreadable one is SERVICE_UNAVAILABLE; an empty directory is a
// listing without entries.
func (d *Device) ListDirectory(ctx context.Context, dir string) (report.DirectoryListing, error) {
	out, err := d.run(ctx, "directory", "ls -la --full-time "+shell.Quote(dir))
	if err != nil {
		return report.DirectoryListing{}, err
	}

	listing := report.ParseDirectoryListing(dir, out)
	if len(listing.Entries) > 0 {
		return listing, nil
	}
	errCtx := map[string]any{"path": dir}
	switch {
	case isMissing(out):
		return report.DirectoryListing{}, errors.NewWithContext(errors.ErrCodeNotFound, "path not found", errCtx)
	case strings.Contains(out, "Permission denied"):
		return report.DirectoryListing{}, errors.NewWithContext(errors.ErrCodeUnavailable, "permission denied", errCtx)
	}
	return listing, nil
}
