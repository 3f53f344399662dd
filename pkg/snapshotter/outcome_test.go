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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kira-tools/kira/pkg/errors"
)

func TestOutcome(t *testing.T) {
	ok := Succeeded(42)
	v, err := ok.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, ok.OK())
	assert.NoError(t, ok.Err())
	assert.Equal(t, 42, ok.TableValue())

	failed := Failed[int](errors.New(errors.ErrCodeTransport, "offline"))
	_, err = failed.Get()
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransport))
	_, present := failed.Value()
	assert.False(t, present)
	assert.Equal(t, "error: [TRANSPORT] offline", failed.TableValue())

	var zero Outcome[string]
	assert.False(t, zero.OK())
	_, err = zero.Get()
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	assert.Equal(t, "-", zero.TableValue())

	assert.Error(t, Failed[int](nil).Err())
}

func TestOutcomeJSON(t *testing.T) {
	type doc struct {
		A Outcome[string] `json:"a"`
		B Outcome[int]    `json:"b"`
		C Outcome[bool]   `json:"c"`
	}
	data, err := json.Marshal(doc{
		A: Succeeded("x"),
		B: Failed[int](errors.MissingField("battery", "level")),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"a": {"value": "x"},
		"b": {"error": {"code": "MISSING_FIELD", "message": "[MISSING_FIELD] battery report has no level field"}},
		"c": null
	}`, string(data))
}
