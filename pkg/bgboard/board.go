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

// Package bgboard implements a single bughouse board: the grid, per-force
// reserves, castling rights, en-passant target, clock and status, plus the
// turn validator that is the rule engine's core (spec §4.2, C1). It knows
// nothing about its partner board - cross-board capture relay and steal
// promotion live one level up, in pkg/bughouse.
package bgboard

import (
	"time"

	"laptudirm.com/x/bughouse/pkg/castling"
	"laptudirm.com/x/bughouse/pkg/clock"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/grid"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/reserve"
	"laptudirm.com/x/bughouse/pkg/rules"
	"laptudirm.com/x/bughouse/pkg/square"
)

// Reason names why a board left the Active status.
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
	default:
		return "None"
	}
}

// StatusKind discriminates the variants of Status.
type StatusKind int

const (
	Active StatusKind = iota
	Victory
	Draw
)

// Status is a board's terminal (or non-terminal) game state. Winner is
// only meaningful when Kind == Victory.
type Status struct {
	Kind   StatusKind
	Winner force.Force
	Reason Reason
}

func ActiveStatus() Status { return Status{Kind: Active} }

func (s Status) IsActive() bool { return s.Kind == Active }

// Board is one 8x8 bughouse board: a position plus everything needed to
// validate and apply one turn against it (spec §3 Board, §4.2).
type Board struct {
	Rules *rules.Rules

	Grid     grid.Grid
	Reserve  [force.N]reserve.Reserve
	Castling castling.Rights
	EnPassant square.Square

	ToMove force.Force
	Clock  *clock.Clock
	Status Status

	// Drops counts every drop made on this board so far; it is folded
	// into the repetition fingerprint because a drop always resets
	// threefold counting (spec §3 Position fingerprint).
	Drops int

	repetition map[fingerprint]int

	names [force.N]string

	nextID piece.ID
}

// New builds a Board from a fully populated starting grid, inferring
// castling rights by scanning each force's home rank for the king and
// any rooks flanking it (spec §4.2 "new"). The grid's pieces must
// already carry stable IDs; the grids pkg/startpos builds assign them.
func New(r *rules.Rules, names [force.N]string, start grid.Grid) *Board {
	b := &Board{
		Rules:      r,
		Grid:       start,
		EnPassant:  square.None,
		ToMove:     force.White,
		Status:     ActiveStatus(),
		repetition: make(map[fingerprint]int),
		names:      names,
	}
	b.Reserve[force.White] = reserve.New()
	b.Reserve[force.Black] = reserve.New()
	b.Clock = clock.New(r.TimeControl)

	var maxID piece.ID
	for s := square.Square(0); int(s) < len(b.Grid); s++ {
		p := b.Grid.At(s)
		if !p.IsZero() && p.ID > maxID {
			maxID = p.ID
		}
	}
	b.nextID = maxID + 1

	b.Castling = inferCastling(&b.Grid)
	b.repetition[b.fingerprint()] = 1
	return b
}

func inferCastling(g *grid.Grid) castling.Rights {
	r := castling.New()
	for _, f := range []force.Force{force.White, force.Black} {
		home := square.Rank1
		if f == force.Black {
			home = square.Rank8
		}
		kingSq, ok := findOnRank(g, home, f, piece.King)
		if !ok {
			continue
		}
		for file := square.FileA; file < square.FileN; file++ {
			s := square.New(file, home)
			p := g.At(s)
			if p.IsZero() || p.Kind != piece.Rook || p.Force != f {
				continue
			}
			if file < kingSq.File() {
				r.Grant(f, castling.ASide, int8(file))
			} else if file > kingSq.File() {
				r.Grant(f, castling.HSide, int8(file))
			}
		}
	}
	return r
}

func findOnRank(g *grid.Grid, rank square.Rank, f force.Force, kind piece.Kind) (square.Square, bool) {
	for file := square.FileA; file < square.FileN; file++ {
		s := square.New(file, rank)
		p := g.At(s)
		if !p.IsZero() && p.Kind == kind && p.Force == f {
			return s, true
		}
	}
	return square.None, false
}

// Clone returns an independent deep copy of b, used by pkg/altered to
// compute a speculative local position from the confirmed game without
// mutating it (spec §4.5 local_game).
func (b *Board) Clone() *Board {
	cp := *b
	cp.Clock = b.Clock.Clone()
	cp.Reserve[force.White] = b.Reserve[force.White].Clone()
	cp.Reserve[force.Black] = b.Reserve[force.Black].Clone()
	cp.repetition = make(map[fingerprint]int, len(b.repetition))
	for k, v := range b.repetition {
		cp.repetition[k] = v
	}
	return &cp
}

// AllocateID returns a fresh, board-unique piece ID, used when a drop
// materializes a reserve piece as a grid piece (reserves are tracked by
// kind + count, not by individual identity, until dropped).
func (b *Board) AllocateID() piece.ID {
	id := b.nextID
	b.nextID++
	return id
}

// Names returns the two players' display names, indexed by force.
func (b *Board) Names() [force.N]string { return b.names }

// ReceiveCapture adds a captured piece's original kind to f's reserve,
// as relayed across boards by pkg/bughouse.
func (b *Board) ReceiveCapture(kind piece.Kind, f force.Force) {
	b.Reserve[f].Add(kind)
}

// StartClock begins this board's clock with the given force to move.
func (b *Board) StartClock(now time.Time) {
	b.Clock.StartClock(b.ToMove, now)
}

// TestFlag checks whether the currently active force's clock has run
// out as of now; if so it sets Status to Victory(other, Flag) and stops
// the clock, returning the instant of the flag fall.
func (b *Board) TestFlag(now time.Time) (time.Time, bool) {
	if !b.Status.IsActive() {
		return time.Time{}, false
	}
	deadline, flagged := b.Clock.FlagDefeatMoment(now)
	if !flagged {
		return time.Time{}, false
	}
	b.Clock.Stop(deadline)
	b.Status = Status{Kind: Victory, Winner: b.ToMove.Opposite(), Reason: ReasonFlag}
	return deadline, true
}

// Resign sets the board's status to a resignation victory for the
// opposing force, stopping the clock at now.
func (b *Board) Resign(loser force.Force, now time.Time) {
	b.Clock.Stop(now)
	b.Status = Status{Kind: Victory, Winner: loser.Opposite(), Reason: ReasonResignation}
}
