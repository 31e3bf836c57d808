// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	engineCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sapsysinfo_engine_calls_total",
			Help: "Total number of automation engine function calls",
		},
		[]string{"function", "status"}, // success or error code
	)

	engineCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sapsysinfo_engine_call_duration_seconds",
			Help:    "Automation engine function call latency in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"function"},
	)
)
