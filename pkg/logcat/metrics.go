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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	streamsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kira_logcat_streams_active",
			Help: "Number of logcat streams currently running",
		},
	)

	streamsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kira_logcat_streams_total",
			Help: "Total number of logcat stream starts by outcome",
		},
		[]string{"status"},
	)

	streamEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kira_logcat_entries_total",
			Help: "Total number of streamed log entries by result",
		},
		[]string{"result"},
	)
)
