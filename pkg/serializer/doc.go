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

// Package serializer provides encoding and decoding of kira reports in multiple formats.
//
// # Supported Formats
//
// JSON:
//   - Indented for documents, compact for streamed lines
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - Used for the kira configuration file
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - A slice of structs prints as rows, one column per exported field,
//     headed by the upper-cased json tag
//   - Anything else prints as sorted FIELD/VALUE pairs with dotted keys
//   - Nil pointers print as "-"; values implementing Tabular print their
//     TableValue, so a failed query renders as "error: ..."
//   - Write-only
//
// # Usage - Encoding
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "")
//	defer w.Close()
//	if err := w.Serialize(ctx, snap); err != nil {
//	    return err
//	}
//
// Streams:
//
//	lw := serializer.NewLineWriter(serializer.FormatJSON, os.Stdout)
//	for e := range stream.Entries() {
//	    if err := lw.WriteLine(e); err != nil {
//	        return err
//	    }
//	}
//
// # Usage - Decoding
//
//	cfg := config.Default()
//	if err := serializer.IntoFile(path, &cfg, serializer.WithStrict()); err != nil {
//	    return err
//	}
//
// # Format Detection
//
// File extension-based detection:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table
//   - Other → YAML (default)
package serializer
