// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package match

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are process-wide: every MatchState registers its observations
// against the same collectors, labeled by match ID, rather than each
// match carrying its own registry.
var (
	flagLatencySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bughouse",
		Subsystem: "match",
		Name:      "flag_detection_latency_seconds",
		Help:      "Delay between a clock's real flag-fall instant and the Tick that observed it.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"match_id"})

	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bughouse",
		Subsystem: "match",
		Name:      "turns_total",
		Help:      "Turns successfully committed, by match.",
	}, []string{"match_id"})

	gamesStartedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bughouse",
		Subsystem: "match",
		Name:      "games_started_total",
		Help:      "Games started, by match.",
	}, []string{"match_id"})
)
