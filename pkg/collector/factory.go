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
	"time"

	"golang.org/x/time/rate"
	utilexec "k8s.io/utils/exec"

	"github.com/kira-tools/kira/pkg/defaults"
	"github.com/kira-tools/kira/pkg/logcat"
	"github.com/kira-tools/kira/pkg/shell"
)

// Factory creates devices and log sources with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateDevice(serial string) *Device
	CreateLogSource(serial string) logcat.Source
}

// DefaultFactory creates adb-backed devices.
type DefaultFactory struct {
	// ADBPath is the adb binary. Empty means "adb" on PATH.
	ADBPath string

	// Timeout bounds each shell command.
	Timeout time.Duration

	// Rate limits shell commands per second. Zero disables limiting.
	Rate float64

	// Burst is the number of commands allowed at once when Rate is set.
	Burst int

	// Serialized runs at most one command at a time per device.
	Serialized bool

	// Exec spawns processes. Nil means the host's exec.
	Exec utilexec.Interface
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{
		ADBPath:    shell.DefaultADBPath,
		Timeout:    defaults.CommandTimeout,
		Rate:       defaults.CommandRate,
		Burst:      defaults.CommandBurst,
		Serialized: true,
	}
}

// CreateDevice returns a device whose commands go through adb.
func (f *DefaultFactory) CreateDevice(serial string) *Device {
	adb := f.adb(serial)

	var exec shell.Executor = adb
	if f.Rate > 0 {
		burst := f.Burst
		if burst <= 0 {
			burst = 1
		}
		exec = shell.WithRateLimit(exec, rate.NewLimiter(rate.Limit(f.Rate), burst))
	}
	if f.Serialized {
		exec = shell.Serialize(exec)
	}
	return NewDevice(exec, WithSerial(serial))
}

// CreateLogSource returns a logcat source for the device.
func (f *DefaultFactory) CreateLogSource(serial string) logcat.Source {
	return logcat.NewADBSource(f.adb(serial))
}

func (f *DefaultFactory) adb(serial string) *shell.ADB {
	opts := []shell.Option{
		shell.WithADBPath(f.ADBPath),
		shell.WithTimeout(f.Timeout),
	}
	if f.Exec != nil {
		opts = append(opts, shell.WithExec(f.Exec))
	}
	return shell.NewADB(serial, opts...)
}
