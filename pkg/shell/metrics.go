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

package shell

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	shellCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kira_shell_command_duration_seconds",
			Help:    "Duration of device shell commands in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"program"},
	)

	shellCommandTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kira_shell_command_total",
			Help: "Total number of device shell commands by outcome",
		},
		[]string{"status"},
	)
)
