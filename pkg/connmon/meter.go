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
	"fmt"
	"sort"
	"time"
)

// warmupSamples is how many post-(re)connect samples Meter discards
// before it starts recording, since the first few round trips after a
// fresh connection are not representative of steady state (recovered
// from original_source/src/meter.rs, which notes the same skew for
// hdrhistogram-backed meters upstream).
const warmupSamples = 10

// meterCapacity bounds how many samples Meter retains; older samples
// are evicted first-in-first-out once it fills up.
const meterCapacity = 1000

// Stats summarizes a Meter's samples (recovered from
// original_source/src/meter.rs MeterStats).
type Stats struct {
	P50, P90, P99 time.Duration
	NumSamples    int
}

func (s Stats) String() string {
	if s.NumSamples == 0 {
		return "- (N=0)"
	}
	return fmt.Sprintf("P50=%s, P90=%s, P99=%s (N=%d)", s.P50, s.P90, s.P99, s.NumSamples)
}

// Meter accumulates duration samples and reports percentile
// statistics over them, discarding the first warmupSamples after each
// reconnect call (connmon.New makes one for a fresh connection).
type Meter struct {
	samples   []time.Duration
	next      int
	full      bool
	skipLeft  int
	warmedUp  bool
}

// Record folds one sample into the meter, unless it falls within the
// post-(re)connect warmup window.
func (m *Meter) Record(d time.Duration) {
	if !m.warmedUp {
		if m.skipLeft > 0 {
			m.skipLeft--
			return
		}
		m.warmedUp = true
	}
	if m.samples == nil {
		m.samples = make([]time.Duration, meterCapacity)
	}
	m.samples[m.next] = d
	m.next = (m.next + 1) % meterCapacity
	if m.next == 0 {
		m.full = true
	}
}

// reconnect restarts the warmup window, so the next warmupSamples
// recorded are discarded again. Existing samples are kept, matching
// upstream's behavior of only resetting on an explicit consume.
func (m *Meter) reconnect() {
	m.skipLeft = warmupSamples
	m.warmedUp = false
}

// Stats computes percentile statistics over the retained samples.
func (m *Meter) Stats() Stats {
	n := m.next
	if m.full {
		n = meterCapacity
	}
	if n == 0 {
		return Stats{}
	}

	sorted := make([]time.Duration, n)
	copy(sorted, m.samples[:n])
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	quantile := func(q float64) time.Duration {
		idx := int(q * float64(n-1))
		return sorted[idx]
	}
	return Stats{
		P50:        quantile(0.50),
		P90:        quantile(0.90),
		P99:        quantile(0.99),
		NumSamples: n,
	}
}
