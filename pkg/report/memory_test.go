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

func TestParseMemInfo(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    MemoryInfo
		wantErr bool
	}{
		{
			name:   "three counters",
			output: "MemTotal:       11432996 kB\nMemFree:          197724 kB\nMemAvailable:    1680480 kB",
			want:   MemoryInfo{TotalKB: 11432996, FreeKB: 197724, AvailableKB: 1680480},
		},
		{
			name:   "extra keys and whitespace",
			output: "  MemTotal:  2000 kB\nBuffers: 12 kB\nCached:  99 kB\nMemFree: 10 kB\n",
			want:   MemoryInfo{TotalKB: 2000, FreeKB: 10},
		},
		{
			name:   "available above total is kept",
			output: "MemTotal: 100 kB\nMemAvailable: 200 kB",
			want:   MemoryInfo{TotalKB: 100, AvailableKB: 200},
		},
		{name: "missing total", output: "MemFree: 10 kB", wantErr: true},
		{name: "zero total", output: "MemTotal: 0 kB", wantErr: true},
		{name: "garbled total", output: "MemTotal: lots kB", wantErr: true},
		{name: "empty", output: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMemInfo(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrCodeMissingField))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProcStatus(t *testing.T) {
	out := `Name:	com.example.app
State:	S (sleeping)
Pid:	4567
VmSize:	 15432100 kB
VmRSS:	   123456 kB
Threads:	42`

	pm, err := ParseProcStatus(4567, out)
	require.NoError(t, err)
	assert.Equal(t, "com.example.app", pm.Name)
	require.NotNil(t, pm.VmRSSKB)
	assert.Equal(t, uint64(123456), *pm.VmRSSKB)
	require.NotNil(t, pm.VmSizeKB)
	assert.Equal(t, uint64(15432100), *pm.VmSizeKB)
	require.NotNil(t, pm.Threads)
	assert.Equal(t, 42, *pm.Threads)

	// kernel threads have no Vm lines
	pm, err = ParseProcStatus(2, "Name:\tkthreadd\nState:\tS")
	require.NoError(t, err)
	assert.Nil(t, pm.VmRSSKB)

	_, err = ParseProcStatus(1, "cat: /proc/1/status: Permission denied")
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingField))
}
