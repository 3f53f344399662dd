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

// Package snapshotter composes device queries into snapshot documents.
//
// # Overview
//
// A Snapshotter runs a fixed set of independent queries from
// pkg/collector and records each result in its own Outcome field, so one
// failing query never hides the others:
//
//	snap, err := snapshotter.New(dev, snapshotter.WithVersion(version)).Snapshot(ctx)
//	if err != nil {
//	    return err // ctx ended before collection finished
//	}
//	if model, ok := snap.Model.Value(); ok {
//	    fmt.Println(model)
//	}
//
// # Documents
//
// DeviceSnapshot: identity properties, /data capacity, battery level,
// screen resolution, refresh rate and build information.
//
// PerformanceProfile: memory counters, battery state, per-core CPU times
// with clock speeds, the SurfaceFlinger flip counter and uptime.
//
// Both embed header.Header:
//
//	apiVersion: kira.dev/v1alpha1
//	kind: DeviceSnapshot
//	metadata:
//	  serial: emulator-5554
//	  timestamp: "2025-01-15T10:30:00Z"
//	serial: emulator-5554
//	model:
//	  value: Pixel 8
//	slot:
//	  error:
//	    code: NOT_FOUND
//	    message: '[NOT_FOUND] property not set'
//
// # Concurrency
//
// Queries are dispatched through an errgroup limited by WithConcurrency.
// The default of one matches a device with a single command channel; query
// results stay independent either way.
package snapshotter
