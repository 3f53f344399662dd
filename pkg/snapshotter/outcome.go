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

package snapshotter

import (
	"encoding/json"
	"fmt"

	"github.com/kira-tools/kira/pkg/errors"
)

// Outcome is the field-scoped result of one query: a value, or the error
// that prevented it. The zero Outcome was never collected.
type Outcome[T any] struct {
	value T
	err   error
	set   bool
}

// Succeeded returns an Outcome holding v.
func Succeeded[T any](v T) Outcome[T] {
	return Outcome[T]{value: v, set: true}
}

// Failed returns an Outcome holding err.
func Failed[T any](err error) Outcome[T] {
	if err == nil {
		err = errors.New(errors.ErrCodeInternal, "query failed without error")
	}
	return Outcome[T]{err: err, set: true}
}

// OK reports whether the query produced a value.
func (o Outcome[T]) OK() bool {
	return o.set && o.err == nil
}

// Get returns the value or the query error.
func (o Outcome[T]) Get() (T, error) {
	if !o.set {
		var zero T
		return zero, errors.New(errors.ErrCodeNotFound, "not collected")
	}
	return o.value, o.err
}

// Value returns the value and whether it is present.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.OK()
}

// Err returns the query error, nil on success or when never collected.
func (o Outcome[T]) Err() error {
	return o.err
}

type outcomeError struct {
	Code    string `json:"code,omitempty" yaml:"code,omitempty"`
	Message string `json:"message" yaml:"message"`
}

type outcomeDoc[T any] struct {
	Value *T            `json:"value,omitempty" yaml:"value,omitempty"`
	Error *outcomeError `json:"error,omitempty" yaml:"error,omitempty"`
}

func (o Outcome[T]) doc() *outcomeDoc[T] {
	if !o.set {
		return nil
	}
	if o.err != nil {
		return &outcomeDoc[T]{Error: &outcomeError{
			Code:    string(errors.CodeOf(o.err)),
			Message: o.err.Error(),
		}}
	}
	v := o.value
	return &outcomeDoc[T]{Value: &v}
}

// MarshalJSON encodes {"value": ...} or {"error": {"code", "message"}},
// and null when never collected.
func (o Outcome[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.doc())
}

// MarshalYAML mirrors MarshalJSON.
func (o Outcome[T]) MarshalYAML() (any, error) {
	return o.doc(), nil
}

// TableValue is what the table format shows for the field.
func (o Outcome[T]) TableValue() any {
	switch {
	case !o.set:
		return "-"
	case o.err != nil:
		return fmt.Sprintf("error: %v", o.err)
	default:
		return o.value
	}
}
