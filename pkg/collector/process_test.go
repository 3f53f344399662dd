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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kira-tools/kira/pkg/errors"
)

const psOutput = `USER           PID  PPID        VSZ    RSS WCHAN            ADDR S NAME
root             1     0   12345678   9876 SyS_epoll_wait      0 S init
u0_a123       4567   890   34567890  54321 SyS_epoll_wait      0 S com.example.app
u0_a123       4590   890   34567890  14321 SyS_epoll_wait      0 S com.example.app:remote`

func TestProcesses(t *testing.T) {
	fs := newFakeShell(map[string]string{"ps -A": psOutput})
	dev := NewDevice(fs)

	procs, err := dev.Processes(context.Background())
	require.NoError(t, err)
	assert.Len(t, procs, 3)
	assert.Equal(t, []string{"ps -A"}, fs.calls)

	found, err := dev.FindProcesses(context.Background(), "com.example")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, 4567, found[0].PID)
}

func TestProcessesFallsBackToPlainPS(t *testing.T) {
	fs := newFakeShell(map[string]string{
		"ps -A": "bad pid '-A'",
		"ps":    psOutput,
	})

	procs, err := NewDevice(fs).Processes(context.Background())
	require.NoError(t, err)
	assert.Len(t, procs, 3)
	assert.Equal(t, []string{"ps -A", "ps"}, fs.calls)
}

func TestProcessMemory(t *testing.T) {
	dev := NewDevice(newFakeShell(map[string]string{
		"cat /proc/4567/status": "Name:\tcom.example.app\nThreads:\t42\nVmSize:\t 1234 kB\nVmRSS:\t  567 kB",
		"cat /proc/9999/status": "cat: /proc/9999/status: No such file or directory",
	}))
	ctx := context.Background()

	mem, err := dev.ProcessMemory(ctx, 4567)
	require.NoError(t, err)
	assert.Equal(t, "com.example.app", mem.Name)
	require.NotNil(t, mem.VmRSSKB)
	assert.Equal(t, uint64(567), *mem.VmRSSKB)

	_, err = dev.ProcessMemory(ctx, 9999)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	_, err = dev.ProcessMemory(ctx, 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestServices(t *testing.T) {
	dev := NewDevice(newFakeShell(map[string]string{
		"dumpsys activity services": `ACTIVITY MANAGER SERVICES (dumpsys activity services)
  User 0 active services:
  * ServiceRecord{1a2b3c u0 com.example.app/.SyncService}
    intent={cmp=com.example.app/.SyncService}
  * ServiceRecord{4d5e6f u0 com.android.systemui/.ImageWallpaper}`,
	}))

	services, err := dev.Services(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.app/.SyncService", "com.android.systemui/.ImageWallpaper"}, services)
}
