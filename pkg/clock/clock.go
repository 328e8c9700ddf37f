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

// Package clock implements the per-force chess clock owned by each
// board (spec §4.8). All arithmetic is done against a caller-supplied
// instant rather than time.Now, so that both server (real, monotonic)
// and replay (historical) instants drive the exact same code path.
package clock

import (
	"time"

	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/rules"
)

// Mode controls how a read handles a clock that has already run out.
type Mode int

const (
	// Exact returns the raw, possibly negative remainder: only the
	// server, which is the sole source of truth for whether a flag has
	// actually fallen, should read a clock that way. This deliberately
	// departs from "panic on underflow" - negative remaining time is
	// exactly the signal FlagDefeatMoment needs to locate the instant a
	// flag fell, and a panicking read would force that caller through
	// recover() for an expected, not exceptional, condition.
	Exact Mode = iota
	// Approximate saturates at zero - safe for client-side display,
	// which must never show negative time.
	Approximate
)

// Clock holds one board's two per-force remaining-time budgets.
type Clock struct {
	remaining [2]time.Duration // indexed by force.White/force.Black
	running   *force.Force     // force currently spending time, nil if clock is stopped
	turnStart time.Time        // instant the running force's turn began
	increment time.Duration
}

// New creates a Clock from a match's time control. The clock does not
// start running until StartClock is called.
func New(tc rules.TimeControl) *Clock {
	c := &Clock{increment: tc.Increment}
	c.remaining[force.White] = tc.Starting
	c.remaining[force.Black] = tc.Starting
	return c
}

// StartClock begins the game clock with f to move at instant now.
func (c *Clock) StartClock(f force.Force, now time.Time) {
	running := f
	c.running = &running
	c.turnStart = now
}

// NewTurn charges the previously running force for the time elapsed
// since its turn started, credits it with the configured increment,
// then starts the clock for next, all as of instant now. It is a
// no-op on the elapsed side if the clock was not running.
func (c *Clock) NewTurn(next force.Force, now time.Time) {
	if c.running != nil {
		elapsed := now.Sub(c.turnStart)
		c.remaining[*c.running] -= elapsed
		c.remaining[*c.running] += c.increment
	}
	c.StartClock(next, now)
}

// Stop freezes the clock at instant now, charging whichever force was
// running for its elapsed time and leaving nothing running afterwards.
// Used when a game ends, so both boards' clocks read consistently at
// the instant of game over (spec §4 BughouseGame invariant).
func (c *Clock) Stop(now time.Time) {
	if c.running != nil {
		elapsed := now.Sub(c.turnStart)
		c.remaining[*c.running] -= elapsed
		c.running = nil
	}
}

// Clone returns an independent copy of c, used by AlteredGame to
// compute a speculative local position without mutating the confirmed
// server clock (spec §4.5 local_game).
func (c *Clock) Clone() *Clock {
	cp := *c
	if c.running != nil {
		running := *c.running
		cp.running = &running
	}
	return &cp
}

// IsRunning reports whether the clock currently has a force running.
func (c *Clock) IsRunning() bool {
	return c.running != nil
}

// Running returns the currently running force, if any.
func (c *Clock) Running() (force.Force, bool) {
	if c.running == nil {
		return force.White, false
	}
	return *c.running, true
}

// TimeLeft returns f's remaining time as of instant now under mode.
func (c *Clock) TimeLeft(f force.Force, now time.Time, mode Mode) time.Duration {
	remaining := c.remaining[f]
	if c.running != nil && *c.running == f {
		remaining -= now.Sub(c.turnStart)
	}

	switch mode {
	case Approximate:
		if remaining < 0 {
			return 0
		}
		return remaining
	case Exact:
		return remaining
	default:
		panic("clock: unknown mode")
	}
}

// FlagDefeatMoment returns the instant at or before now at which the
// running force's remaining time first reached zero, or false if it is
// still positive as of now (or the clock is not running).
func (c *Clock) FlagDefeatMoment(now time.Time) (time.Time, bool) {
	if c.running == nil {
		return time.Time{}, false
	}
	remaining := c.TimeLeft(*c.running, now, Exact)
	if remaining > 0 {
		return time.Time{}, false
	}
	// the force had `c.remaining[f]` left when its turn started; it
	// crossed zero `c.remaining[f]` after turnStart.
	deadline := c.turnStart.Add(c.remaining[*c.running])
	if deadline.After(now) {
		deadline = now
	}
	return deadline, true
}
