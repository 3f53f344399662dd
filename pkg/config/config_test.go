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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/logcat"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "adb", cfg.ADBPath)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.CommandTimeout.Std())
	assert.Equal(t, logcat.LevelInfo, cfg.MinLevel())
	assert.Equal(t, logcat.BufferDefault, cfg.Buffer())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "kira.yaml", `
serial: emulator-5554
concurrency: 3
commandTimeout: 2s
logcat:
  buffer: crash
  minLevel: W
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "emulator-5554", cfg.Serial)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 2*time.Second, cfg.CommandTimeout.Std())
	assert.Equal(t, logcat.BufferCrash, cfg.Buffer())
	assert.Equal(t, logcat.LevelWarning, cfg.MinLevel())

	// unset keys keep their defaults
	assert.Equal(t, "adb", cfg.ADBPath)
	assert.Equal(t, 256, cfg.Logcat.BufferSize)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "kira.json", `{"commandTimeout":"750ms","commandRate":5}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.CommandTimeout.Std())
	assert.InDelta(t, 5.0, cfg.CommandRate, 0.0001)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"unknown key", "adbpath: /usr/bin/adb\n", errors.ErrCodeInvalidRequest},
		{"bad duration", "commandTimeout: soon\n", errors.ErrCodeInvalidRequest},
		{"zero concurrency", "concurrency: 0\n", errors.ErrCodeInvalidRequest},
		{"unknown buffer", "logcat:\n  buffer: kernel\n", errors.ErrCodeInvalidRequest},
		{"unknown level", "logcat:\n  minLevel: loud\n", errors.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "kira.yaml", tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	})
}

func TestLoadImplicitMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadImplicitFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, FileName), []byte("logLevel: debug\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty adb", func(c *Config) { c.ADBPath = " " }, false},
		{"negative rate", func(c *Config) { c.CommandRate = -1 }, false},
		{"zero timeout", func(c *Config) { c.CommandTimeout = 0 }, false},
		{"warning level", func(c *Config) { c.LogLevel = "WARNING" }, true},
		{"trace level", func(c *Config) { c.LogLevel = "trace" }, false},
		{"empty min level", func(c *Config) { c.Logcat.MinLevel = "" }, true},
		{"zero buffer size", func(c *Config) { c.Logcat.BufferSize = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest), "got %v", err)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Concurrency = 0
	cfg.CommandRate = -2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency")
	assert.Contains(t, err.Error(), "commandRate")
}

func TestDuration(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte(" 1m30s ")))
	assert.Equal(t, 90*time.Second, d.Std())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("90")))
}
