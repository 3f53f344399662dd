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
	"fmt"

	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/shell"
)

// System properties read by the identity queries.
const (
	PropModel         = "ro.product.model"
	PropManufacturer  = "ro.product.manufacturer"
	PropOSVersion     = "ro.build.version.release"
	PropABI           = "ro.product.cpu.abi"
	PropSlot          = "ro.boot.slot_suffix"
	PropSecurityPatch = "ro.build.version.security_patch"
	PropBuildID       = "ro.build.id"
)

// Device runs queries against one device.
type Device struct {
	exec   shell.Executor
	serial string
}

// DeviceOption configures a Device.
type DeviceOption func(*Device)

// WithSerial records the serial the executor targets.
func WithSerial(serial string) DeviceOption {
	return func(d *Device) {
		d.serial = serial
	}
}

// NewDevice returns a Device issuing commands through exec.
// The serial defaults to the executor's when it is an *shell.ADB.
func NewDevice(exec shell.Executor, opts ...DeviceOption) *Device {
	d := &Device{exec: exec}
	if adb, ok := exec.(*shell.ADB); ok {
		d.serial = adb.Serial()
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Serial returns the device serial, empty when adb picks the only device.
func (d *Device) Serial() string {
	return d.serial
}

// Executor returns the executor queries run through.
func (d *Device) Executor() shell.Executor {
	return d.exec
}

// run executes command and annotates failures with what was being read.
func (d *Device) run(ctx context.Context, what, command string) (string, error) {
	out, err := d.exec.Execute(ctx, command)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", what, err)
	}
	return out, nil
}

// Prop returns a system property. An unset property is NOT_FOUND.
func (d *Device) Prop(ctx context.Context, name string) (string, error) {
	out, err := d.run(ctx, name, "getprop "+shell.Quote(name))
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", errors.NewWithContext(errors.ErrCodeNotFound, "property not set",
			map[string]any{"property": name})
	}
	return out, nil
}

// Model returns the marketing model name.
func (d *Device) Model(ctx context.Context) (string, error) {
	return d.Prop(ctx, PropModel)
}

// Manufacturer returns the device manufacturer.
func (d *Device) Manufacturer(ctx context.Context) (string, error) {
	return d.Prop(ctx, PropManufacturer)
}

// OSVersion returns the Android release, e.g. "14".
func (d *Device) OSVersion(ctx context.Context) (string, error) {
	return d.Prop(ctx, PropOSVersion)
}

// ABI returns the primary CPU ABI.
func (d *Device) ABI(ctx context.Context) (string, error) {
	return d.Prop(ctx, PropABI)
}

// Slot returns the active A/B slot suffix. Devices without A/B partitions
// report NOT_FOUND.
func (d *Device) Slot(ctx context.Context) (string, error) {
	return d.Prop(ctx, PropSlot)
}

// optionalProp returns nil for an unset property and fails only on transport errors.
func (d *Device) optionalProp(ctx context.Context, name string) (*string, error) {
	v, err := d.Prop(ctx, name)
	if errors.IsCode(err, errors.ErrCodeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
