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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kira-tools/kira/pkg/errors"
)

func TestParseStorage(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    Storage
		wantErr bool
	}{
		{
			name:   "tail row",
			output: "/dev/block/dm-5  113G  42G  71G  38% /data",
			want:   Storage{Total: "113G", Used: "42G", Free: "71G"},
		},
		{
			name:   "with header",
			output: "Filesystem 1K-blocks Used Available Use% Mounted on\n/dev/block/dm-5 118146032 44040192 74105840 38% /data\n",
			want:   Storage{Total: "118146032", Used: "44040192", Free: "74105840"},
		},
		{name: "header only", output: "Filesystem 1K-blocks Used Available Use% Mounted on", wantErr: true},
		{name: "error text", output: "df: /data: No such file", wantErr: true},
		{name: "empty", output: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStorage(tt.output)
			if tt.wantErr {
				assert.True(t, errors.IsCode(err, errors.ErrCodeMissingField))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.Total)
			assert.NotEmpty(t, got.Used)
			assert.NotEmpty(t, got.Free)
		})
	}
}

func TestParseVolumes(t *testing.T) {
	out := `Filesystem       1K-blocks     Used Available Use% Mounted on
/dev/block/dm-0    3030800  3018884         0 100% /
tmpfs              5716496     1280   5715216   1% /dev
/dev/fuse        118146032 44040192  74105840  38% /storage/emulated
remote:/share          100       50        50  50% host:/mnt`

	vols := ParseVolumes(out)
	require.Len(t, vols, 3)
	assert.Equal(t, "/", vols[0].MountPoint)
	assert.Equal(t, uint64(3030800*1024), vols[0].TotalBytes)
	assert.InDelta(t, 99.6, vols[0].PercentUsed, 0.1)
	assert.Equal(t, "/storage/emulated", vols[2].MountPoint)
}
