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

// Package connmon monitors the health of a single client connection,
// both passively (time since the last message received) and actively
// (a ping/pong round trip), and gathers latency statistics for it
// (spec §3 Connection Monitor, C11; original_source/src/meter.rs).
package connmon

import (
	"time"
)

// Status is the passively observed health of a connection (spec §3
// Connection Monitor).
type Status int

const (
	Healthy Status = iota
	TemporaryLost
	PermanentlyLost
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case TemporaryLost:
		return "temporary-lost"
	case PermanentlyLost:
		return "permanently-lost"
	default:
		return "unknown"
	}
}

// Threshold durations separating the Status bands. TemporaryThreshold
// is the "soft" threshold past which a connection looks stale but is
// still given the benefit of the doubt; PermanentThreshold is the
// point past which a match gives up on the participant outright.
const (
	TemporaryThreshold = 3 * time.Second
	PermanentThreshold = 60 * time.Second

	// PingInterval is how often the active monitor sends a ping while
	// the connection is open.
	PingInterval = 500 * time.Millisecond
)

// Monitor tracks one connection's liveness. It is not safe for
// concurrent use; callers serialize access (pkg/match drives it from
// the game loop and the per-client outbound goroutine).
type Monitor struct {
	lastSeen time.Time

	pingSentAt time.Time
	pingOut    bool

	roundTrip Meter
}

// New returns a Monitor considering the connection alive as of now.
func New(now time.Time) *Monitor {
	m := &Monitor{lastSeen: now}
	m.roundTrip.reconnect()
	return m
}

// Touch records that a message (of any kind) was received from the
// client at now, resetting the passive staleness clock.
func (m *Monitor) Touch(now time.Time) {
	m.lastSeen = now
}

// Status reports the passive health of the connection as of now.
func (m *Monitor) Status(now time.Time) Status {
	idle := now.Sub(m.lastSeen)
	switch {
	case idle >= PermanentThreshold:
		return PermanentlyLost
	case idle >= TemporaryThreshold:
		return TemporaryLost
	default:
		return Healthy
	}
}

// Ping records that a ping was sent at now. The caller is responsible
// for actually writing the ping event to the client.
func (m *Monitor) Ping(now time.Time) {
	m.pingSentAt = now
	m.pingOut = true
}

// Pong records a pong received at now, completing the round trip
// started by the most recent Ping, and folds its latency into the
// round-trip Meter. It also counts as activity for Touch/Status.
func (m *Monitor) Pong(now time.Time) {
	m.Touch(now)
	if !m.pingOut {
		return
	}
	m.pingOut = false
	m.roundTrip.Record(now.Sub(m.pingSentAt))
}

// RoundTrip returns the ping/pong latency statistics gathered so far.
func (m *Monitor) RoundTrip() Stats {
	return m.roundTrip.Stats()
}

// Reconnect resets passive staleness (a new transport just attached)
// and starts excluding round-trip samples again, since the first few
// pings after a reconnect are systematically slower (TCP slow start,
// TLS handshake) and would skew the steady-state percentiles.
func (m *Monitor) Reconnect(now time.Time) {
	m.lastSeen = now
	m.pingOut = false
	m.roundTrip.reconnect()
}
