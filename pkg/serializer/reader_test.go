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

package serializer

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// Test data structures
type testConfig struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

type testNested struct {
	Serial string            `json:"serial" yaml:"serial"`
	Labels map[string]string `json:"labels" yaml:"labels"`
	Logcat struct {
		Buffer string `json:"buffer" yaml:"buffer"`
		Size   int    `json:"size" yaml:"size"`
	} `json:"logcat" yaml:"logcat"`
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Format
	}{
		{"json lowercase", "config.json", FormatJSON},
		{"json uppercase", "CONFIG.JSON", FormatJSON},
		{"yaml extension", "config.yaml", FormatYAML},
		{"yml extension", "config.yml", FormatYAML},
		{"mixed case", "File.YaMl", FormatYAML},
		{"table extension", "output.table", FormatTable},
		{"txt extension", "output.txt", FormatTable},
		{"multiple dots", "file.backup.json", FormatJSON},
		{"dotfile", "/home/user/.kira.yaml", FormatYAML},
		{"unknown extension defaults to yaml", "file.unknown", FormatYAML},
		{"no extension defaults to yaml", "kirarc", FormatYAML},
		{"empty path", "", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := FormatFromPath(tt.path); result != tt.expected {
				t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"table is write-only", FormatTable, true},
		{"unknown", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewReader(tt.format, strings.NewReader("{}"))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewReader() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && reader == nil {
				t.Fatal("Expected non-nil reader")
			}
		})
	}
}

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		want    testConfig
		wantErr bool
	}{
		{"json", FormatJSON, `{"name":"test","value":123}`, testConfig{Name: testName, Value: 123}, false},
		{"yaml", FormatYAML, "name: test\nvalue: 123\n", testConfig{Name: testName, Value: 123}, false},
		{"json type mismatch", FormatJSON, `{"value":"abc"}`, testConfig{}, true},
		{"invalid yaml", FormatYAML, "name: [unclosed", testConfig{}, true},
		{"unicode", FormatJSON, `{"name":"日本語 🚀","value":1}`, testConfig{Name: "日本語 🚀", Value: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewReader(tt.format, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}

			var got testConfig
			err = reader.Deserialize(&got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Deserialize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Deserialize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReader_DeserializeKeepsDefaults(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			input := `{"name":"override"}`
			reader, err := NewReader(format, strings.NewReader(input))
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}

			got := testConfig{Name: "default", Value: 42}
			if err := reader.Deserialize(&got); err != nil {
				t.Fatalf("Deserialize failed: %v", err)
			}
			if got.Name != "override" || got.Value != 42 {
				t.Errorf("Deserialize() = %+v, want name overridden and value kept", got)
			}
		})
	}
}

func TestReader_DeserializeEmpty(t *testing.T) {
	for _, input := range []string{"", "  \n\t\n"} {
		reader, err := NewReader(FormatYAML, strings.NewReader(input))
		if err != nil {
			t.Fatalf("NewReader failed: %v", err)
		}
		got := testConfig{Name: "default"}
		if err := reader.Deserialize(&got); err != nil {
			t.Errorf("empty document should not fail: %v", err)
		}
		if got.Name != "default" {
			t.Errorf("empty document modified target: %+v", got)
		}
	}
}

func TestReader_Strict(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `{"name":"x","typo":1}`},
		{"yaml", FormatYAML, "name: x\ntypo: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lenient, err := NewReader(tt.format, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}
			var cfg testConfig
			if err := lenient.Deserialize(&cfg); err != nil {
				t.Errorf("lenient reader rejected unknown field: %v", err)
			}

			strict, err := NewReader(tt.format, strings.NewReader(tt.input), WithStrict())
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}
			if err := strict.Deserialize(&cfg); err == nil {
				t.Error("strict reader accepted unknown field")
			}
		})
	}
}

func TestReader_DeserializeNilChecks(t *testing.T) {
	var nilReader *Reader
	if err := nilReader.Deserialize(&testConfig{}); err == nil {
		t.Error("Expected error for nil reader")
	}
	if err := nilReader.Close(); err != nil {
		t.Errorf("Close on nil reader should not error: %v", err)
	}

	reader := &Reader{format: FormatJSON}
	if err := reader.Deserialize(&testConfig{}); err == nil {
		t.Error("Expected error for nil input")
	}
}

func TestReader_NestedRoundTrip(t *testing.T) {
	var in testNested
	in.Serial = "emulator-5554"
	in.Labels = map[string]string{"lab": "b2"}
	in.Logcat.Buffer = "crash"
	in.Logcat.Size = 512

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var (
				data []byte
				err  error
			)
			if format == FormatJSON {
				data, err = json.Marshal(in)
			} else {
				data, err = yaml.Marshal(in)
			}
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}

			reader, err := NewReader(format, strings.NewReader(string(data)), WithStrict())
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}
			var out testNested
			if err := reader.Deserialize(&out); err != nil {
				t.Fatalf("Deserialize failed: %v", err)
			}
			if out.Serial != in.Serial || out.Labels["lab"] != "b2" || out.Logcat != in.Logcat {
				t.Errorf("round trip = %+v, want %+v", out, in)
			}
		})
	}
}

func TestNewFileReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("name: file\nvalue: 9\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	t.Run("auto", func(t *testing.T) {
		reader, err := NewFileReaderAuto(path)
		if err != nil {
			t.Fatalf("NewFileReaderAuto failed: %v", err)
		}
		defer reader.Close()

		var got testConfig
		if err := reader.Deserialize(&got); err != nil {
			t.Fatalf("Deserialize failed: %v", err)
		}
		if got.Name != "file" || got.Value != 9 {
			t.Errorf("Deserialize() = %+v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := NewFileReader(FormatYAML, filepath.Join(dir, "nope.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("table format", func(t *testing.T) {
		if _, err := NewFileReader(FormatTable, path); err == nil {
			t.Error("Expected error for table format")
		}
	})
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "data.json")
	if err := os.WriteFile(jsonPath, []byte(`{"name":"json","value":1}`), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := FromFile[testConfig](jsonPath)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if got.Name != "json" || got.Value != 1 {
		t.Errorf("FromFile() = %+v", got)
	}

	if _, err := FromFile[testConfig](filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	txtPath := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(txtPath, []byte("FIELD VALUE"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := FromFile[testConfig](txtPath); err == nil {
		t.Error("Expected error for table file")
	}
}

func TestIntoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	if err := os.WriteFile(path, []byte("value: 5\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got := testConfig{Name: "kept"}
	if err := IntoFile(path, &got, WithStrict()); err != nil {
		t.Fatalf("IntoFile failed: %v", err)
	}
	if got.Name != "kept" || got.Value != 5 {
		t.Errorf("IntoFile() = %+v", got)
	}
}

func TestReader_CustomCloser(t *testing.T) {
	closeCalls := 0
	customReader := &testClosableReader{
		Reader: strings.NewReader(`{"name":"test","value":123}`),
		onClose: func() error {
			closeCalls++
			return nil
		},
	}

	reader, err := NewReader(FormatJSON, customReader)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var result testConfig
	if err := reader.Deserialize(&result); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if closeCalls != 1 {
		t.Errorf("closer called %d times, want 1", closeCalls)
	}
}

// testClosableReader wraps a reader and adds a closer
type testClosableReader struct {
	io.Reader
	onClose func() error
}

func (r *testClosableReader) Close() error {
	if r.onClose != nil {
		return r.onClose()
	}
	return nil
}

func BenchmarkFromFile_YAML(b *testing.B) {
	path := filepath.Join(b.TempDir(), "bench.yaml")
	yamlData, _ := yaml.Marshal(testConfig{Name: "benchmark", Value: 12345})
	if err := os.WriteFile(path, yamlData, 0o600); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FromFile[testConfig](path)
	}
}
