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

// Package config loads the kira configuration file.
//
// The file is YAML and lives at $HOME/.kira.yaml unless --config names
// another path. Every key is optional:
//
//	adbPath: /opt/platform-tools/adb
//	serial: 0A151FDD4000BN
//	concurrency: 2
//	commandTimeout: 15s
//	commandRate: 20
//	logLevel: debug
//	logcat:
//	  buffer: crash
//	  bufferSize: 512
//	  minLevel: warn
//
// Precedence, lowest first: built-in defaults, the file, environment
// variables, command-line flags. The last two are resolved by pkg/cli.
package config
