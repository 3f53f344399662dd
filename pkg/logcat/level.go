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

package logcat

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Level is a log priority. Levels are ordered from LevelVerbose to LevelSilent.
type Level int

const (
	LevelVerbose Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
	LevelSilent
)

var levelCodes = [...]byte{'V', 'D', 'I', 'W', 'E', 'F', 'S'}

var levelNames = [...]string{"Verbose", "Debug", "Info", "Warning", "Error", "Fatal", "Silent"}

// Levels returns all levels in ascending order.
func Levels() []Level {
	return []Level{LevelVerbose, LevelDebug, LevelInfo, LevelWarning, LevelError, LevelFatal, LevelSilent}
}

// LevelFromCode maps a logcat priority letter to a Level.
// 'A' (assert) is Fatal; any other unknown letter is Debug.
func LevelFromCode(c byte) Level {
	switch c {
	case 'V':
		return LevelVerbose
	case 'D':
		return LevelDebug
	case 'I':
		return LevelInfo
	case 'W':
		return LevelWarning
	case 'E':
		return LevelError
	case 'F', 'A':
		return LevelFatal
	case 'S':
		return LevelSilent
	default:
		return LevelDebug
	}
}

func (l Level) valid() bool {
	return l >= LevelVerbose && l <= LevelSilent
}

// Code returns the single-letter priority code.
func (l Level) Code() byte {
	if !l.valid() {
		return '?'
	}
	return levelCodes[l]
}

// String returns the single-letter priority code.
func (l Level) String() string {
	return string(l.Code())
}

// Name returns the full level name, e.g. "Warning".
func (l Level) Name() string {
	if !l.valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel accepts a priority letter or a level name in any case,
// plus the aliases "warn" and "assert".
func ParseLevel(s string) (Level, error) {
	folded := cases.Fold().String(strings.TrimSpace(s))
	if len(folded) == 1 {
		for i, c := range levelCodes {
			if cases.Fold().String(string(c)) == folded {
				return Level(i), nil
			}
		}
		if folded == "a" {
			return LevelFatal, nil
		}
	}
	for i, name := range levelNames {
		if cases.Fold().String(name) == folded {
			return Level(i), nil
		}
	}
	switch folded {
	case "warn":
		return LevelWarning, nil
	case "assert":
		return LevelFatal, nil
	}
	return LevelDebug, fmt.Errorf("unknown log level %q", s)
}

// MarshalText encodes the level as its priority letter.
func (l Level) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, fmt.Errorf("invalid log level %d", int(l))
	}
	return []byte{l.Code()}, nil
}

// UnmarshalText decodes a priority letter or level name.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
