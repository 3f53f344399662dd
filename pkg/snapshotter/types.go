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

package snapshotter

import (
	"github.com/kira-tools/kira/pkg/header"
	"github.com/kira-tools/kira/pkg/report"
)

const (
	// APIDomain is the group of kira documents.
	APIDomain = "kira.dev"
	// APIVersion is the schema version of snapshots and profiles.
	APIVersion = "v1alpha1"
	// FullAPIVersion is the apiVersion written into document headers.
	FullAPIVersion = APIDomain + "/" + APIVersion
)

// DeviceSnapshot describes a device. Every attribute is collected
// independently and may be absent while the others are present.
type DeviceSnapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	Serial       string          `json:"serial,omitempty" yaml:"serial,omitempty"`
	Model        Outcome[string] `json:"model" yaml:"model"`
	Manufacturer Outcome[string] `json:"manufacturer" yaml:"manufacturer"`
	OSVersion    Outcome[string] `json:"osVersion" yaml:"osVersion"`
	ABI          Outcome[string] `json:"abi" yaml:"abi"`
	Slot         Outcome[string] `json:"slot" yaml:"slot"`

	Storage     Outcome[report.Storage]    `json:"storage" yaml:"storage"`
	Battery     Outcome[uint8]             `json:"battery" yaml:"battery"`
	Screen      Outcome[report.ScreenInfo] `json:"screen" yaml:"screen"`
	RefreshRate Outcome[float64]           `json:"refreshRate" yaml:"refreshRate"`
	Build       Outcome[report.BuildInfo]  `json:"build" yaml:"build"`
}

// PerformanceProfile is a point-in-time sample of device load.
type PerformanceProfile struct {
	header.Header `json:",inline" yaml:",inline"`

	Serial  string                      `json:"serial,omitempty" yaml:"serial,omitempty"`
	Memory  Outcome[report.MemoryInfo]  `json:"memory" yaml:"memory"`
	Battery Outcome[report.BatteryInfo] `json:"battery" yaml:"battery"`
	CPUs    Outcome[[]report.CPUInfo]   `json:"cpus" yaml:"cpus"`
	Flips   Outcome[uint64]             `json:"flips" yaml:"flips"`
	Uptime  Outcome[uint64]             `json:"uptimeSeconds" yaml:"uptimeSeconds"`
}
