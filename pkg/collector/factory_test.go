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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	utilexec "k8s.io/utils/exec"
	testingexec "k8s.io/utils/exec/testing"

	"github.com/kira-tools/kira/pkg/logcat"
)

func scriptedExec(argv *[][]string, outputs ...string) *testingexec.FakeExec {
	fexec := &testingexec.FakeExec{}
	for _, out := range outputs {
		fcmd := &testingexec.FakeCmd{
			OutputScript: []testingexec.FakeAction{
				func() ([]byte, []byte, error) { return []byte(out), nil, nil },
			},
		}
		fexec.CommandScript = append(fexec.CommandScript, func(cmd string, args ...string) utilexec.Cmd {
			*argv = append(*argv, append([]string{cmd}, args...))
			return testingexec.InitFakeCmd(fcmd, cmd, args...)
		})
	}
	return fexec
}

func TestNewDefaultFactory(t *testing.T) {
	f := NewDefaultFactory()
	assert.Equal(t, "adb", f.ADBPath)
	assert.Equal(t, 10*time.Second, f.Timeout)
	assert.True(t, f.Serialized)
	assert.Zero(t, f.Rate)
}

func TestDefaultFactoryCreateDevice(t *testing.T) {
	var argv [][]string
	f := NewDefaultFactory()
	f.ADBPath = "/opt/platform-tools/adb"
	f.Rate = 100
	f.Burst = 2
	f.Exec = scriptedExec(&argv, "Pixel 8", "14")

	dev := f.CreateDevice("R58M123")
	assert.Equal(t, "R58M123", dev.Serial())

	model, err := dev.Model(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Pixel 8", model)

	version, err := dev.OSVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "14", version)

	assert.Equal(t, [][]string{
		{"/opt/platform-tools/adb", "-s", "R58M123", "shell", "getprop 'ro.product.model'"},
		{"/opt/platform-tools/adb", "-s", "R58M123", "shell", "getprop 'ro.build.version.release'"},
	}, argv)
}

func TestDefaultFactoryCreateLogSource(t *testing.T) {
	f := NewDefaultFactory()
	source := f.CreateLogSource("emulator-5554")
	_, ok := source.(*logcat.ADBSource)
	assert.True(t, ok)
}
