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

// Package header provides the envelope shared by kira documents.
//
// Device snapshots and performance profiles embed a Header so every emitted
// document carries its kind, schema version and capture metadata:
//
//	apiVersion: kira.dev/v1alpha1
//	kind: DeviceSnapshot
//	metadata:
//	  serial: emulator-5554
//	  timestamp: "2025-01-15T10:30:00Z"
//	  version: v0.4.0
//
// Use Init to stamp a document at capture time:
//
//	var h header.Header
//	h.Init(header.KindDeviceSnapshot, "kira.dev/v1alpha1", version)
//	h.SetMetadata(header.MetadataSerial, serial)
package header
