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
	"github.com/kira-tools/kira/pkg/report"
)

func TestNetworks(t *testing.T) {
	dev := NewDevice(newFakeShell(map[string]string{
		"ip addr show": "1: lo: <LOOPBACK,UP> mtu 65536 state UNKNOWN\n" +
			"    inet 127.0.0.1/8 scope host lo\n" +
			"3: wlan0: <BROADCAST,UP,LOWER_UP> mtu 1500 qdisc mq state UP\n" +
			"    inet 10.0.2.16/24 brd 10.0.2.255 scope global wlan0",
	}))

	ifaces, err := dev.Networks(context.Background())
	require.NoError(t, err)
	require.Len(t, ifaces, 1)
	assert.Equal(t, "wlan0", ifaces[0].Name)
	assert.Equal(t, []string{"10.0.2.16"}, ifaces[0].IPv4)
}

func TestSELinux(t *testing.T) {
	fs := newFakeShell(map[string]string{"getenforce": "Enforcing"})
	mode, err := NewDevice(fs).SELinux(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.SELinuxEnforcing, mode)

	fs = newFakeShell(map[string]string{"getenforce": "/system/bin/sh: getenforce: not found"})
	_, err = NewDevice(fs).SELinux(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeMissingField))

	_, err = NewDevice(newFakeShell(nil)).SELinux(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
}
