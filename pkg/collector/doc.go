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

// Package collector queries a connected Android device.
//
// # Overview
//
// A Device wraps a shell.Executor and exposes one query per device report.
// Each query issues a fixed command, hands the output to the matching
// pkg/report parser, and returns the typed value:
//
//	dev := collector.NewDevice(shell.NewADB("emulator-5554"))
//	mem, err := dev.Memory(ctx)
//
// # Errors
//
// Queries surface two kinds of failure unchanged:
//   - TRANSPORT and INVALID_ENCODING errors from the executor
//   - MISSING_FIELD errors when output lacks a report's defining field
//
// A few queries map well-known device messages to NOT_FOUND, for example a
// directory that does not exist or a property that is not set. Optional
// attributes missing from otherwise valid output are nil fields, never errors.
//
// # Factory
//
// The Factory interface builds devices and log sources from shared settings
// (adb binary, command timeout, rate limit), which keeps commands and the
// streaming engine injectable in tests:
//
//	factory := collector.NewDefaultFactory()
//	factory.Rate = 5
//	dev := factory.CreateDevice("R58M123")
//	source := factory.CreateLogSource("R58M123")
//
// Queries are safe for concurrent use when the executor is. The default
// factory serializes commands per device.
package collector
