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

package shell

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	utilexec "k8s.io/utils/exec"
	testingexec "k8s.io/utils/exec/testing"

	"github.com/kira-tools/kira/pkg/errors"
)

// fakeADB returns an executor whose single command produces the given result.
func fakeADB(serial string, stdout []byte, err error) (*ADB, *testingexec.FakeCmd) {
	fcmd := &testingexec.FakeCmd{
		OutputScript: []testingexec.FakeAction{
			func() ([]byte, []byte, error) { return stdout, nil, err },
		},
	}
	fexec := &testingexec.FakeExec{
		CommandScript: []testingexec.FakeCommandAction{
			func(cmd string, args ...string) utilexec.Cmd {
				return testingexec.InitFakeCmd(fcmd, cmd, args...)
			},
		},
	}
	return NewADB(serial, WithExec(fexec), WithTimeout(time.Second)), fcmd
}

func TestADBExecute(t *testing.T) {
	adb, fcmd := fakeADB("emulator-5554", []byte("  MemTotal: 100 kB\n"), nil)
	before := testutil.ToFloat64(shellCommandTotal.WithLabelValues("success"))

	out, err := adb.Execute(context.Background(), "cat /proc/meminfo")
	require.NoError(t, err)
	assert.Equal(t, "MemTotal: 100 kB", out)
	assert.Equal(t, []string{"adb", "-s", "emulator-5554", "shell", "cat /proc/meminfo"}, fcmd.Argv)
	assert.InDelta(t, before+1, testutil.ToFloat64(shellCommandTotal.WithLabelValues("success")), 0)
}

func TestADBExecuteWithoutSerial(t *testing.T) {
	adb, fcmd := fakeADB("", []byte("ok"), nil)
	adb.path = "/opt/platform-tools/adb"

	_, err := adb.Execute(context.Background(), "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/platform-tools/adb", "shell", "id"}, fcmd.Argv)
}

func TestADBExecuteErrors(t *testing.T) {
	tests := []struct {
		name     string
		stdout   []byte
		err      error
		wantCode errors.ErrorCode
		wantOut  string
	}{
		{
			name:     "invalid utf8",
			stdout:   []byte{0xff, 0xfe, 'a'},
			wantCode: errors.ErrCodeInvalidEncoding,
		},
		{
			name:     "adb missing",
			err:      utilexec.ErrExecutableNotFound,
			wantCode: errors.ErrCodeTransport,
		},
		{
			name:     "unknown failure",
			err:      assert.AnError,
			wantCode: errors.ErrCodeTransport,
		},
		{
			name:    "remote exit keeps stdout",
			stdout:  []byte("partial output\n"),
			err:     testingexec.FakeExitError{Status: 1},
			wantOut: "partial output",
		},
		{
			name:    "remote exit without output",
			err:     testingexec.FakeExitError{Status: 2},
			wantOut: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adb, _ := fakeADB("serial", tt.stdout, tt.err)
			out, err := adb.Execute(context.Background(), "ls /data")
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOut, out)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
			assert.Empty(t, out)
		})
	}
}

func TestADBExecuteCancelled(t *testing.T) {
	adb, _ := fakeADB("serial", nil, context.Canceled)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adb.Execute(ctx, "dumpsys battery")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
}

func TestADBArgs(t *testing.T) {
	assert.Equal(t, []string{"-s", "abc", "logcat"}, NewADB("abc").Args("logcat"))
	assert.Equal(t, []string{"logcat"}, NewADB("").Args("logcat"))
	assert.Equal(t, DefaultADBPath, NewADB("", WithADBPath("")).Path())
}

func TestIsADBFailure(t *testing.T) {
	tests := []struct {
		stderr string
		want   bool
	}{
		{"error: device 'emulator-5554' not found", true},
		{"error: device unauthorized.", true},
		{"adb: no devices/emulators found", true},
		{"ls: /data/x: No such file or directory", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.stderr, func(t *testing.T) {
			assert.Equal(t, tt.want, isADBFailure(tt.stderr))
		})
	}
}
