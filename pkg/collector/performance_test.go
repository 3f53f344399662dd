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

func TestMemory(t *testing.T) {
	dev := NewDevice(newFakeShell(map[string]string{
		"cat /proc/meminfo": "MemTotal:       11432996 kB\nMemFree:          197724 kB\nMemAvailable:    1680480 kB",
	}))

	mem, err := dev.Memory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(11432996), mem.TotalKB)
	assert.Equal(t, uint64(197724), mem.FreeKB)
	assert.Equal(t, uint64(1680480), mem.AvailableKB)
}

func TestBattery(t *testing.T) {
	fs := newFakeShell(map[string]string{
		"dumpsys battery": "Current Battery Service state:\n  level: 64\n  voltage: 3900\n  temperature: 301",
	})
	dev := NewDevice(fs)

	info, err := dev.Battery(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint8(64), info.Level)
	assert.Equal(t, int32(301), info.Temperature)

	fs.outputs["dumpsys battery"] = "Can't find service: battery"
	_, err = dev.Battery(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingField))
}

func TestCPUs(t *testing.T) {
	const stat = "cpu  10 0 10 100 0 0 0\ncpu0 5 0 5 50 0 0 0\ncpu1 5 0 5 50 0 0 0\nintr 1"

	t.Run("with frequencies", func(t *testing.T) {
		freqs := "/sys/devices/system/cpu/cpu0/cpufreq/scaling_cur_freq:1804800\n" +
			"/sys/devices/system/cpu/cpu1/cpufreq/scaling_cur_freq:300000"
		dev := NewDevice(newFakeShell(map[string]string{
			"cat /proc/stat": stat,
			cpuFreqCommand:   freqs,
		}))

		cpus, err := dev.CPUs(context.Background())
		require.NoError(t, err)
		require.Len(t, cpus, 2)
		require.NotNil(t, cpus[0].SpeedMHz)
		assert.Equal(t, uint32(1804), *cpus[0].SpeedMHz)
		require.NotNil(t, cpus[1].SpeedMHz)
		assert.Equal(t, uint32(300), *cpus[1].SpeedMHz)
	})

	t.Run("frequencies unavailable", func(t *testing.T) {
		dev := NewDevice(newFakeShell(map[string]string{"cat /proc/stat": stat}))

		cpus, err := dev.CPUs(context.Background())
		require.NoError(t, err)
		require.Len(t, cpus, 2)
		assert.Nil(t, cpus[0].SpeedMHz)
	})

	t.Run("stat unavailable", func(t *testing.T) {
		_, err := NewDevice(newFakeShell(nil)).CPUs(context.Background())
		assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
	})
}

func TestFlipsUptimeLoad(t *testing.T) {
	dev := NewDevice(newFakeShell(map[string]string{
		"dumpsys SurfaceFlinger": "Display 0 HWC layers:\n  flips=12345 frames\n",
		"cat /proc/uptime":       "35079.83 264543.37",
		"cat /proc/loadavg":      "12.37 11.98 11.62 3/3194 22021",
	}))
	ctx := context.Background()

	flips, err := dev.Flips(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), flips)

	up, err := dev.Uptime(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(35079), up)

	load, err := dev.LoadAverage(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 11.98, load.Five, 0.001)
}
