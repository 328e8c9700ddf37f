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

package clock_test

import (
	"testing"
	"time"

	"laptudirm.com/x/bughouse/pkg/clock"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/rules"
)

func newTestClock() *clock.Clock {
	return clock.New(rules.TimeControl{Starting: time.Minute, Increment: 2 * time.Second})
}

func TestTimeLeftBeforeStart(t *testing.T) {
	c := newTestClock()
	now := time.Now()
	if got := c.TimeLeft(force.White, now, clock.Exact); got != time.Minute {
		t.Errorf("TimeLeft before start = %v, want 1m", got)
	}
	if c.IsRunning() {
		t.Errorf("IsRunning before StartClock = true, want false")
	}
}

func TestNewTurnChargesElapsedAndCreditsIncrement(t *testing.T) {
	c := newTestClock()
	start := time.Now()
	c.StartClock(force.White, start)

	elapsed := 10 * time.Second
	c.NewTurn(force.Black, start.Add(elapsed))

	want := time.Minute - elapsed + 2*time.Second
	if got := c.TimeLeft(force.White, start.Add(elapsed), clock.Exact); got != want {
		t.Errorf("White TimeLeft after NewTurn = %v, want %v", got, want)
	}
	running, ok := c.Running()
	if !ok || running != force.Black {
		t.Errorf("Running() = (%v, %v), want (Black, true)", running, ok)
	}
}

func TestTimeLeftApproximateSaturatesAtZero(t *testing.T) {
	c := newTestClock()
	start := time.Now()
	c.StartClock(force.White, start)

	later := start.Add(2 * time.Minute) // well past the 1-minute allotment
	if got := c.TimeLeft(force.White, later, clock.Exact); got >= 0 {
		t.Fatalf("Exact TimeLeft after flag should be negative, got %v", got)
	}
	if got := c.TimeLeft(force.White, later, clock.Approximate); got != 0 {
		t.Errorf("Approximate TimeLeft after flag = %v, want 0", got)
	}
}

func TestStopFreezesClock(t *testing.T) {
	c := newTestClock()
	start := time.Now()
	c.StartClock(force.White, start)

	stopAt := start.Add(5 * time.Second)
	c.Stop(stopAt)

	if c.IsRunning() {
		t.Errorf("IsRunning after Stop = true, want false")
	}
	want := time.Minute - 5*time.Second
	// Time should no longer advance past the stop instant.
	if got := c.TimeLeft(force.White, stopAt.Add(time.Hour), clock.Exact); got != want {
		t.Errorf("TimeLeft long after Stop = %v, want frozen %v", got, want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := newTestClock()
	start := time.Now()
	c.StartClock(force.White, start)

	cp := c.Clone()
	cp.NewTurn(force.Black, start.Add(time.Second))

	if c.IsRunning() {
		running, _ := c.Running()
		if running != force.White {
			t.Fatalf("original clock should still be White to move, got %v", running)
		}
	} else {
		t.Fatalf("original clock should still be running")
	}
	running, ok := cp.Running()
	if !ok || running != force.Black {
		t.Errorf("clone should have advanced to Black, got (%v, %v)", running, ok)
	}
}

func TestFlagDefeatMoment(t *testing.T) {
	c := newTestClock()
	start := time.Now()
	c.StartClock(force.White, start)

	if _, expired := c.FlagDefeatMoment(start.Add(30 * time.Second)); expired {
		t.Errorf("FlagDefeatMoment at 30s into a 1m clock should not report expired")
	}

	deadline, expired := c.FlagDefeatMoment(start.Add(2 * time.Minute))
	if !expired {
		t.Fatalf("FlagDefeatMoment well past the allotment should report expired")
	}
	want := start.Add(time.Minute)
	if !deadline.Equal(want) {
		t.Errorf("FlagDefeatMoment deadline = %v, want %v", deadline, want)
	}
}
