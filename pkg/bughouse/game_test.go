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

package bughouse_test

import (
	"testing"
	"time"

	"laptudirm.com/x/bughouse/pkg/bughouse"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/rules"
	"laptudirm.com/x/bughouse/pkg/startpos"
)

func newTestGame(t *testing.T) *bughouse.Game {
	t.Helper()
	r := rules.Default()
	var names [envoy.BoardN][force.N]string
	names[envoy.A] = [force.N]string{"Alice", "Bob"}
	names[envoy.B] = [force.N]string{"Carol", "Dave"}
	return bughouse.NewGame(&r, names, startpos.Classical())
}

func TestTeamOf(t *testing.T) {
	cases := map[envoy.Envoy]bughouse.Team{
		{Board: envoy.A, Force: force.White}: bughouse.Red,
		{Board: envoy.B, Force: force.Black}: bughouse.Red,
		{Board: envoy.A, Force: force.Black}: bughouse.Blue,
		{Board: envoy.B, Force: force.White}: bughouse.Blue,
	}
	for e, want := range cases {
		if got := bughouse.TeamOf(e); got != want {
			t.Errorf("TeamOf(%v) = %v, want %v", e, got, want)
		}
	}
}

func TestTeamOther(t *testing.T) {
	if bughouse.Red.Other() != bughouse.Blue {
		t.Errorf("Red.Other() = %v, want Blue", bughouse.Red.Other())
	}
	if bughouse.Blue.Other() != bughouse.Red {
		t.Errorf("Blue.Other() = %v, want Red", bughouse.Blue.Other())
	}
}

func TestNewGameStartsActive(t *testing.T) {
	g := newTestGame(t)
	if !g.Status.IsActive() {
		t.Fatalf("fresh game Status = %v, want Active", g.Status)
	}
	if g.Board(envoy.A) == nil || g.Board(envoy.B) == nil {
		t.Fatalf("both boards should be initialized")
	}
}

func TestStartRunsBothClocksFromGameStart(t *testing.T) {
	g := newTestGame(t)
	now := time.Now()
	g.Start(now)

	for b := envoy.Board(0); int(b) < envoy.BoardN; b++ {
		if !g.Board(b).Clock.IsRunning() {
			t.Errorf("board %v clock should be running after Start", b)
		}
	}
}

func TestResignEndsGameForOtherTeam(t *testing.T) {
	g := newTestGame(t)
	now := time.Now()
	g.Start(now)

	g.Resign(bughouse.Red, now.Add(time.Second))

	if g.Status.IsActive() {
		t.Fatalf("game should be over after Resign")
	}
	if g.Status.Winner != bughouse.Blue {
		t.Errorf("Winner = %v, want Blue", g.Status.Winner)
	}
	if g.Status.Reason != bughouse.ReasonResignation {
		t.Errorf("Reason = %v, want ReasonResignation", g.Status.Reason)
	}
	for b := envoy.Board(0); int(b) < envoy.BoardN; b++ {
		if g.Board(b).Clock.IsRunning() {
			t.Errorf("board %v clock should be stopped after game over", b)
		}
	}
}

func TestTestFlagDecidesByEarlierDeadline(t *testing.T) {
	r := rules.Rules{
		PromotionPolicy: rules.PromotionUpgrade,
		DropAggression:  rules.DropMateAllowed,
		PawnDropRanks:   rules.PawnDropRanks{Min: 1, Max: 6},
		TimeControl:     rules.TimeControl{Starting: time.Minute},
	}
	var names [envoy.BoardN][force.N]string
	names[envoy.A] = [force.N]string{"Alice", "Bob"}
	names[envoy.B] = [force.N]string{"Carol", "Dave"}
	g := bughouse.NewGame(&r, names, startpos.Classical())

	start := time.Now()
	// Only board A's clock is running; board B is left stopped so this
	// exercises the single-board flag path rather than a simultaneous one.
	g.Board(envoy.A).StartClock(start)

	later := start.Add(2 * time.Minute)
	at, flagged := g.TestFlag(later)
	if !flagged {
		t.Fatalf("TestFlag should report a flag once a minute has elapsed")
	}
	if !at.Equal(start.Add(time.Minute)) {
		t.Errorf("flag deadline = %v, want %v", at, start.Add(time.Minute))
	}
	if g.Status.IsActive() {
		t.Fatalf("game should be over after a flag")
	}
	if g.Status.Winner != bughouse.Blue {
		t.Errorf("Winner = %v, want Blue (Red's board-A White flagged)", g.Status.Winner)
	}
	if g.Status.Reason != bughouse.ReasonFlag {
		t.Errorf("Reason = %v, want ReasonFlag", g.Status.Reason)
	}
}

func TestOutcomeWhileActiveIsEmpty(t *testing.T) {
	g := newTestGame(t)
	status, winners, losers := g.Outcome()
	if !status.IsActive() {
		t.Fatalf("expected active status")
	}
	if winners != nil || losers != nil {
		t.Errorf("Outcome while active should report nil winners/losers, got %v / %v", winners, losers)
	}
}

func TestOutcomeAfterResignationNamesAllFourPlayers(t *testing.T) {
	g := newTestGame(t)
	now := time.Now()
	g.Start(now)
	g.Resign(bughouse.Red, now)

	_, winners, losers := g.Outcome()
	if len(winners) != 2 || len(losers) != 2 {
		t.Fatalf("winners=%v losers=%v, want 2 names each", winners, losers)
	}
}
