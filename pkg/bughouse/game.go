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

// Package bughouse implements BughouseGame (spec §4.3, C4): two
// pkg/bgboard Boards coupled by capture-to-reserve relay, steal
// promotion, a single interleaved turn log, and bughouse-specific
// outcome arbitration (simultaneous flags, Koedem). Boards never
// reference each other directly (spec §9 "Cross-board coupling") - all
// coupling lives here.
package bughouse

import (
	"time"

	"laptudirm.com/x/bughouse/pkg/bgboard"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/grid"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/rules"
	"laptudirm.com/x/bughouse/pkg/turn"
)

// Team names one of the two fixed bughouse partnerships: Red is
// {A:White, B:Black}, Blue is {A:Black, B:White} - the pairing that
// shares a reserve pool via envoy.Partner (spec glossary "Envoy").
type Team int8

const (
	Red Team = iota
	Blue
)

func (t Team) String() string {
	if t == Red {
		return "Red"
	}
	return "Blue"
}

func (t Team) Other() Team {
	if t == Red {
		return Blue
	}
	return Red
}

// TeamOf returns the team e belongs to.
func TeamOf(e envoy.Envoy) Team {
	onA := e.Board == envoy.A
	white := e.Force == force.White
	if onA == white {
		return Red
	}
	return Blue
}

// Reason extends bgboard.Reason with bughouse-only outcomes.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonCheckmate
	ReasonFlag
	ReasonResignation
	ReasonThreefoldRepetition
	ReasonSimultaneousFlag
	ReasonStalemate
	ReasonExplosion
	ReasonKoedemAllKings
)

func (r Reason) String() string {
	switch r {
	case ReasonCheckmate:
		return "Checkmate"
	case ReasonFlag:
		return "Flag"
	case ReasonResignation:
		return "Resignation"
	case ReasonThreefoldRepetition:
		return "ThreefoldRepetition"
	case ReasonSimultaneousFlag:
		return "SimultaneousFlag"
	case ReasonStalemate:
		return "Stalemate"
	case ReasonExplosion:
		return "Explosion"
	case ReasonKoedemAllKings:
		return "KoedemAllKings"
	default:
		return "None"
	}
}

func fromBoardReason(r bgboard.Reason) Reason {
	switch r {
	case bgboard.ReasonCheckmate:
		return ReasonCheckmate
	case bgboard.ReasonFlag:
		return ReasonFlag
	case bgboard.ReasonResignation:
		return ReasonResignation
	case bgboard.ReasonThreefoldRepetition:
		return ReasonThreefoldRepetition
	case bgboard.ReasonSimultaneousFlag:
		return ReasonSimultaneousFlag
	case bgboard.ReasonStalemate:
		return ReasonStalemate
	case bgboard.ReasonExplosion:
		return ReasonExplosion
	default:
		return ReasonNone
	}
}

// StatusKind discriminates the variants of Status.
type StatusKind int

const (
	Active StatusKind = iota
	Victory
	Draw
)

// Status is the bughouse game's terminal (or non-terminal) outcome.
type Status struct {
	Kind   StatusKind
	Winner Team // meaningful only when Kind == Victory
	Reason Reason
}

func ActiveStatus() Status { return Status{Kind: Active} }

func (s Status) IsActive() bool { return s.Kind == Active }

// Game is two coupled Boards plus the single interleaved turn log that
// is the authoritative record of a bughouse game (spec §3 BughouseGame,
// §4.3).
type Game struct {
	Rules  *rules.Rules
	Boards [envoy.BoardN]*bgboard.Board

	// StartGrid is the shared starting position both boards were seeded
	// from, retained so the game can be replayed from scratch (wayback
	// display, reconnection, BPGN starting-FEN export).
	StartGrid grid.Grid

	StartTime time.Time
	Status    Status
	Log       []turn.Expanded

	nextNumber int
}

// NewGame creates a two-board bughouse game from one starting grid
// shared by both boards (spec §9: Fischer random setups are identical
// for all four players) and per-envoy player names.
func NewGame(r *rules.Rules, names [envoy.BoardN][force.N]string, start grid.Grid) *Game {
	g := &Game{
		Rules:      r,
		StartGrid:  start,
		Status:     ActiveStatus(),
		nextNumber: 1,
	}
	for b := envoy.Board(0); int(b) < envoy.BoardN; b++ {
		g.Boards[b] = bgboard.New(r, names[b], start)
	}
	return g
}

// Clone returns an independent deep copy of g, the basis for
// pkg/altered's local_game computation (spec §4.5).
func (g *Game) Clone() *Game {
	cp := *g
	for b := envoy.Board(0); int(b) < envoy.BoardN; b++ {
		cp.Boards[b] = g.Boards[b].Clone()
	}
	cp.Log = append([]turn.Expanded(nil), g.Log...)
	return &cp
}

// Board returns the board identified by b.
func (g *Game) Board(b envoy.Board) *bgboard.Board { return g.Boards[b] }

// Start begins both boards' clocks at once - in bughouse both clocks
// run from game start, not from each board's own first move (spec §8
// scenario S6: "Board B clock was started by A's move" describes the
// shared game start, since a double-play player may move A before B
// ever sees a turn).
func (g *Game) Start(now time.Time) {
	g.StartTime = now
	for _, b := range g.Boards {
		b.StartClock(now)
	}
}

// TryTurn resolves input as e's next turn and, on success, couples the
// result across boards: captures are relayed to the partner envoy's
// reserve, steal promotions are verified and applied against the
// partner board, and the combined game Status is updated (spec §4.3).
func (g *Game) TryTurn(e envoy.Envoy, input turn.Input, mode turn.Mode, now time.Time) (turn.Expanded, error) {
	if !g.Status.IsActive() {
		return turn.Expanded{}, gameerror.Of(gameerror.GameOver)
	}

	board := g.Boards[e.Board]
	facts, err := board.TryTurn(e.Force, input, mode, now)
	if err != nil {
		return turn.Expanded{}, err
	}

	if facts.Pending {
		partner := g.Boards[e.Board.Other()]
		stolenKind, err := partner.VerifySiblingTurn(facts.StealSource)
		if err != nil {
			// Fail closed: the board-level check already validated the
			// move assuming the steal would succeed, but nothing was
			// committed, so no rollback is needed (spec §9 Open
			// Question: steal race fails closed, promotion aborted).
			return turn.Expanded{}, err
		}
		partner.ApplySiblingTurn(facts.StealSource)
		facts = board.FinishSteal(e.Force, facts, stolenKind, now)
	}

	g.relayCaptures(e, facts.Captures)

	rec := turn.Expanded{
		Record: turn.Record{Envoy: e, Input: input, Instant: now},
		Turn:   facts.Turn,
		Algebraic: facts.Algebraic,
		Index: turn.Index{
			Number: g.nextNumber,
			Force:  e.Force,
			Duck:   facts.Turn.Kind == turn.KindPlaceDuck,
		},
		Captures:       facts.Captures,
		Relocated:      facts.Relocated,
		ClockRemaining: facts.ClockRemaining,
	}
	g.nextNumber++
	g.Log = append(g.Log, rec)

	g.updateStatus(e, board, now)

	return rec, nil
}

// relayCaptures adds each captured piece's original kind to the
// capturing envoy's partner's reserve (spec §4.3). Under Koedem,
// captured kings are added too, becoming droppable; otherwise a
// captured king (only possible under a Regicide variant, since
// check/checkmate ordinarily forbids it) is not recycled - there is no
// "reserve king" outside Koedem.
func (g *Game) relayCaptures(e envoy.Envoy, captures []piece.Piece) {
	partner := e.Partner()
	partnerBoard := g.Boards[partner.Board]
	for _, captured := range captures {
		if captured.Kind == piece.King && !g.Rules.Koedem {
			continue
		}
		partnerBoard.ReceiveCapture(captured.Kind, partner.Force)
	}
}

// updateStatus recomputes the combined game Status after a committed
// turn on board: a Koedem all-kings win takes priority, then the
// moved-on board's own terminal status, if any, decides the game
// (spec §4.3 "the worst of the two boards' statuses").
func (g *Game) updateStatus(e envoy.Envoy, board *bgboard.Board, now time.Time) {
	if g.Rules.Koedem {
		if status, ok := g.koedemStatus(); ok {
			g.Status = status
			g.stopAll(now)
			return
		}
	}

	if board.Status.IsActive() {
		return
	}

	switch board.Status.Kind {
	case bgboard.Victory:
		g.Status = Status{
			Kind:   Victory,
			Winner: TeamOf(envoy.Envoy{Board: e.Board, Force: board.Status.Winner}),
			Reason: fromBoardReason(board.Status.Reason),
		}
	case bgboard.Draw:
		g.Status = Status{Kind: Draw, Reason: fromBoardReason(board.Status.Reason)}
	}
}

// koedemStatus reports whether one team has captured every king
// belonging to the other, across both boards (glossary "Koedem").
func (g *Game) koedemStatus() (Status, bool) {
	redKings := g.Boards[envoy.A].CountKings(force.White) + g.Boards[envoy.B].CountKings(force.Black)
	blueKings := g.Boards[envoy.A].CountKings(force.Black) + g.Boards[envoy.B].CountKings(force.White)
	switch {
	case blueKings == 0 && redKings > 0:
		return Status{Kind: Victory, Winner: Red, Reason: ReasonKoedemAllKings}, true
	case redKings == 0 && blueKings > 0:
		return Status{Kind: Victory, Winner: Blue, Reason: ReasonKoedemAllKings}, true
	default:
		return Status{}, false
	}
}

func (g *Game) stopAll(now time.Time) {
	for _, b := range g.Boards {
		b.Clock.Stop(now)
	}
}

// TestFlag checks both boards' clocks for an expired flag as of now. If
// exactly one board's active force has run out, that force loses and
// both clocks freeze at the flag instant. If both boards flag at the
// exact same instant, the game is a simultaneous-flag draw (spec §4.3,
// §8 property 8); otherwise the earlier flag decides the game even if
// the other board flags microseconds later, since both clocks stop the
// moment the game ends (spec §3 BughouseGame invariant).
func (g *Game) TestFlag(now time.Time) (time.Time, bool) {
	if !g.Status.IsActive() {
		return time.Time{}, false
	}

	var deadline [envoy.BoardN]time.Time
	var flagged [envoy.BoardN]bool
	for b := envoy.Board(0); int(b) < envoy.BoardN; b++ {
		if d, ok := g.Boards[b].Clock.FlagDefeatMoment(now); ok {
			deadline[b], flagged[b] = d, true
		}
	}
	if !flagged[envoy.A] && !flagged[envoy.B] {
		return time.Time{}, false
	}

	var at time.Time
	switch {
	case flagged[envoy.A] && flagged[envoy.B]:
		if deadline[envoy.A].Before(deadline[envoy.B]) {
			at = deadline[envoy.A]
		} else {
			at = deadline[envoy.B]
		}
	case flagged[envoy.A]:
		at = deadline[envoy.A]
	default:
		at = deadline[envoy.B]
	}

	simultaneous := flagged[envoy.A] && flagged[envoy.B] && deadline[envoy.A].Equal(deadline[envoy.B])
	if simultaneous {
		g.Boards[envoy.A].Clock.Stop(at)
		g.Boards[envoy.B].Clock.Stop(at)
		g.Status = Status{Kind: Draw, Reason: ReasonSimultaneousFlag}
		return at, true
	}

	var loserBoard envoy.Board
	if flagged[envoy.A] && deadline[envoy.A].Equal(at) {
		loserBoard = envoy.A
	} else {
		loserBoard = envoy.B
	}
	loser := g.Boards[loserBoard]
	loserForce, _ := loser.Clock.Running()
	loser.TestFlag(at)
	g.Boards[loserBoard.Other()].Clock.Stop(at)

	winnerEnvoy := envoy.Envoy{Board: loserBoard, Force: loserForce.Opposite()}
	g.Status = Status{Kind: Victory, Winner: TeamOf(winnerEnvoy), Reason: ReasonFlag}
	return at, true
}

// Resign ends the game with loser's team losing by resignation,
// stopping both clocks at now (spec §4.5 MatchState Resign handler).
func (g *Game) Resign(loser Team, now time.Time) {
	g.Status = Status{Kind: Victory, Winner: loser.Other(), Reason: ReasonResignation}
	g.stopAll(now)
}

// Outcome reports the game's status plus the winning and losing
// players' names, empty slices while the game is still active.
func (g *Game) Outcome() (status Status, winners, losers []string) {
	if g.Status.IsActive() {
		return g.Status, nil, nil
	}
	for b := envoy.Board(0); int(b) < envoy.BoardN; b++ {
		names := g.Boards[b].Names()
		for f := force.Force(0); int(f) < force.N; f++ {
			e := envoy.Envoy{Board: b, Force: f}
			if g.Status.Kind == Draw || TeamOf(e) == g.Status.Winner {
				winners = append(winners, names[f])
			} else {
				losers = append(losers, names[f])
			}
		}
	}
	if g.Status.Kind == Draw {
		losers = nil
	}
	return g.Status, winners, losers
}

// ApplyTurnRecord re-applies a previously logged turn record, used for
// replay and reconnection (spec §4.3 apply_turn_record). It goes
// through TryTurn, so the turn is validated and appended to g's log
// like any other; callers apply records in log order to a fresh Game
// built from the same starting position.
func (g *Game) ApplyTurnRecord(rec turn.Record, mode turn.Mode) (turn.Expanded, error) {
	return g.TryTurn(rec.Envoy, rec.Input, mode, rec.Instant)
}
