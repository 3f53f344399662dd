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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotCollectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kira_snapshot_collection_duration_seconds",
			Help:    "Time taken to collect a complete snapshot or profile",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"kind"}, // snapshot or profile
	)

	snapshotCollectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kira_snapshot_collection_total",
			Help: "Total number of snapshot and profile collections",
		},
		[]string{"kind", "status"}, // success or canceled
	)

	snapshotQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kira_snapshot_query_duration_seconds",
			Help:    "Time taken by individual queries",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"query"},
	)

	snapshotQueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kira_snapshot_query_failures_total",
			Help: "Total number of failed queries by error code",
		},
		[]string{"query", "code"},
	)
)
