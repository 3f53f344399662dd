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

func TestScreenAndRefreshRate(t *testing.T) {
	fs := newFakeShell(map[string]string{
		"wm size":         "Physical size: 1080x2400",
		"dumpsys display": "  mDefaultRefreshRate=60.0\n  supportedRefreshRates=[60.0, 120.0]\n  mRefreshRate: 120.0",
	})
	dev := NewDevice(fs)
	ctx := context.Background()

	screen, err := dev.ScreenSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1080x2400", screen.String())

	rate, err := dev.RefreshRate(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, rate, 0.001)

	fs.outputs["dumpsys display"] = "DISPLAY MANAGER (dumpsys display)"
	_, err = dev.RefreshRate(ctx)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingField))
}

func TestBuildInfo(t *testing.T) {
	fs := newFakeShell(map[string]string{
		"getprop 'ro.build.version.security_patch'": "2024-01-05",
		"getprop 'ro.build.id'":                     "",
	})
	dev := NewDevice(fs)

	info, err := dev.BuildInfo(context.Background())
	require.NoError(t, err)
	require.NotNil(t, info.SecurityPatch)
	assert.Equal(t, "2024-01-05", *info.SecurityPatch)
	assert.Nil(t, info.BuildID)

	delete(fs.outputs, "getprop 'ro.build.id'")
	_, err = dev.BuildInfo(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
}
