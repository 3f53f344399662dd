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

package defaults

import "time"

// Command timeouts for device shell round-trips.
const (
	// CommandTimeout bounds a single shell command sent to the device.
	// Executors respect parent context deadlines when shorter.
	CommandTimeout = 10 * time.Second

	// CommandRate is the default number of shell commands per second.
	// Zero disables rate limiting.
	CommandRate = 0.0

	// CommandBurst is the burst size paired with CommandRate.
	CommandBurst = 4
)

// Snapshot settings for composite telemetry.
const (
	// SnapshotTimeout bounds a whole device snapshot or performance profile.
	SnapshotTimeout = 1 * time.Minute

	// SnapshotConcurrency is the number of queries run at once.
	// A device exposes a single logical command channel unless told otherwise.
	SnapshotConcurrency = 1
)

// Logcat settings.
const (
	// StreamBufferSize is the capacity of the entry channel of a log stream.
	StreamBufferSize = 256

	// StreamMaxLineSize is the longest logcat line kept from the child process; longer lines are cut.
	StreamMaxLineSize = 1024 * 1024

	// StreamStderrLimit caps the child's stderr kept for diagnostics.
	StreamStderrLimit = 64 * 1024

	// LogcatDumpLines is the default number of lines read by a logcat dump.
	LogcatDumpLines = 500
)

// CLI timeouts for command-line operations.
const (
	// CLIShutdownTimeout is how long the CLI waits for a stream to drain after an interrupt.
	CLIShutdownTimeout = 5 * time.Second
)
