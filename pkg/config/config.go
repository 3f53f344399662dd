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

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kira-tools/kira/pkg/defaults"
	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/logcat"
	"github.com/kira-tools/kira/pkg/serializer"
	"github.com/kira-tools/kira/pkg/shell"
)

// FileName is the configuration file looked up in the home directory.
const FileName = ".kira.yaml"

// Duration is a time.Duration read and written as a Go duration string ("10s").
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Logcat holds defaults for logcat commands.
type Logcat struct {
	Buffer     string `json:"buffer" yaml:"buffer"`
	BufferSize int    `json:"bufferSize" yaml:"bufferSize"`
	MinLevel   string `json:"minLevel" yaml:"minLevel"`
}

// Config is the user configuration. Every field has a default, and CLI
// flags override whatever the file sets.
type Config struct {
	ADBPath        string   `json:"adbPath" yaml:"adbPath"`
	Serial         string   `json:"serial,omitempty" yaml:"serial,omitempty"`
	Concurrency    int      `json:"concurrency" yaml:"concurrency"`
	CommandTimeout Duration `json:"commandTimeout" yaml:"commandTimeout"`
	CommandRate    float64  `json:"commandRate" yaml:"commandRate"`
	LogLevel       string   `json:"logLevel" yaml:"logLevel"`
	Logcat         Logcat   `json:"logcat" yaml:"logcat"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ADBPath:        shell.DefaultADBPath,
		Concurrency:    defaults.SnapshotConcurrency,
		CommandTimeout: Duration(defaults.CommandTimeout),
		CommandRate:    defaults.CommandRate,
		LogLevel:       "info",
		Logcat: Logcat{
			Buffer:     string(logcat.BufferDefault),
			BufferSize: defaults.StreamBufferSize,
			MinLevel:   logcat.LevelInfo.Name(),
		},
	}
}

// DefaultPath returns $HOME/.kira.yaml, or "" when there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads the configuration file at path over the defaults and validates
// the result. An empty path looks for DefaultPath and silently falls back to
// the defaults when that file does not exist; an explicit path must exist.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			slog.Debug("no config file found, using defaults", slog.String("path", path))
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeNotFound, fmt.Sprintf("config file %s not readable", path), err)
	}

	if err := serializer.IntoFile(path, &cfg, serializer.WithStrict()); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid config file", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	slog.Debug("loaded config", slog.String("path", path))
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.ADBPath) == "" {
		problems = append(problems, "adbPath must not be empty")
	}
	if c.Concurrency < 1 {
		problems = append(problems, fmt.Sprintf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if c.CommandTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("commandTimeout must be positive, got %s", c.CommandTimeout.Std()))
	}
	if c.CommandRate < 0 {
		problems = append(problems, fmt.Sprintf("commandRate must not be negative, got %g", c.CommandRate))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("unknown logLevel %q", c.LogLevel))
	}
	if _, err := logcat.ParseBuffer(c.Logcat.Buffer); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Logcat.BufferSize < 1 {
		problems = append(problems, fmt.Sprintf("logcat.bufferSize must be at least 1, got %d", c.Logcat.BufferSize))
	}
	if c.Logcat.MinLevel != "" {
		if _, err := logcat.ParseLevel(c.Logcat.MinLevel); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"invalid configuration: "+strings.Join(problems, "; "),
			map[string]any{"problems": problems})
	}
	return nil
}

// MinLevel returns the parsed logcat minimum level, LevelVerbose when unset.
func (c Config) MinLevel() logcat.Level {
	if c.Logcat.MinLevel == "" {
		return logcat.LevelVerbose
	}
	l, err := logcat.ParseLevel(c.Logcat.MinLevel)
	if err != nil {
		return logcat.LevelVerbose
	}
	return l
}

// Buffer returns the parsed logcat buffer, BufferDefault when invalid.
func (c Config) Buffer() logcat.Buffer {
	b, err := logcat.ParseBuffer(c.Logcat.Buffer)
	if err != nil {
		return logcat.BufferDefault
	}
	return b
}
