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

package connmon

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pingRoundTripSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bughouse",
		Subsystem: "connmon",
		Name:      "ping_round_trip_seconds",
		Help:      "Ping/pong round-trip latency per connection, post-warmup.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"connection"})

	statusGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bughouse",
		Subsystem: "connmon",
		Name:      "status",
		Help:      "Passive connection status: 0=healthy, 1=temporary-lost, 2=permanently-lost.",
	}, []string{"connection"})
)

// Observe publishes m's current round-trip and status readings to
// Prometheus under label, which should identify the connection (e.g.
// its registry.ID).
func (m *Monitor) Observe(label string, now time.Time) {
	if stats := m.roundTrip.Stats(); stats.NumSamples > 0 {
		pingRoundTripSeconds.WithLabelValues(label).Observe(stats.P50.Seconds())
	}
	statusGauge.WithLabelValues(label).Set(float64(m.Status(now)))
}
