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

// Package rules bundles every gameplay-affecting knob of a bughouse
// match into one immutable value, shared by reference between both
// boards of a game (spec §4.1, §9 "Variant configuration"). All
// variant-specific branching in pkg/bgboard dispatches on these fields,
// never on a separate type tag.
package rules

import (
	"fmt"
	"time"
)

// PromotionPolicy controls which promotion choices a pawn reaching the
// last rank may make.
type PromotionPolicy int

const (
	// Upgrade lets a pawn become any non-pawn, non-king piece.
	PromotionUpgrade PromotionPolicy = iota
	// Steal additionally allows taking a specific non-king piece from
	// the partner board instead of receiving a fresh one.
	PromotionSteal
	// Discard additionally allows promoting into nothing - the pawn
	// simply vanishes, useful under some drop-aggression tournaments.
	PromotionDiscard
)

// DropAggression controls whether a drop may check or checkmate.
type DropAggression int

const (
	DropMateAllowed   DropAggression = iota // drops may check and mate freely
	DropNoChessMate                         // a drop may check but not deliver mate
	DropNoCheck                             // a drop may not even check
)

// PawnDropRanks is the inclusive, subjective-rank window (spec §3,
// square.Square.SubjectiveRank) a pawn may be dropped into: normally
// [1,6], i.e. never on either back rank.
type PawnDropRanks struct {
	Min, Max int8 // subjective ranks, 0-indexed (0 = own back rank)
}

// Rules is the immutable, shared configuration of one bughouse match.
// It is constructed once at match creation and never mutated; both
// boards of every game in the match hold the same *Rules pointer.
type Rules struct {
	// Starting position
	FischerRandom bool // randomize back-rank setup, shared by all four players

	// Fairy variants
	FairyPieces bool // enable Cardinal/Empress/Amazon promotion choices
	DuckChess   bool // a duck occupies a square and blocks all movement through it
	FogOfWar    bool // each player only sees their own reachable squares
	Atomic      bool // captures explode, destroying surrounding non-pawn pieces
	Koedem      bool // kings are capturable and droppable; win by collecting all enemy kings

	PromotionPolicy PromotionPolicy
	DropAggression  DropAggression
	PawnDropRanks   PawnDropRanks

	// TimeControl is the starting allotment per force. Increment is
	// added after each of that force's turns (Fischer increment).
	TimeControl TimeControl

	Rated  bool // affects double-play and leaderboard eligibility (external)
	Public bool // visible in match listings (external)
}

// TimeControl is a starting clock allotment plus an increment.
type TimeControl struct {
	Starting  time.Duration
	Increment time.Duration
}

// Default returns a standard, non-variant rule set: classical setup,
// upgrade-only promotion, unrestricted drop aggression, pawn drops
// anywhere but the back ranks, and a 5+2 time control.
func Default() Rules {
	return Rules{
		PromotionPolicy: PromotionUpgrade,
		DropAggression:  DropMateAllowed,
		PawnDropRanks:   PawnDropRanks{Min: 1, Max: 6},
		TimeControl: TimeControl{
			Starting:  5 * time.Minute,
			Increment: 2 * time.Second,
		},
	}
}

// Regicide reports whether the king can be legally captured and there
// is consequently no check/checkmate concept under these rules. Duck
// chess and fog of war are both regicide variants: a hidden or blocked
// attacker means check cannot be reliably announced, so the game is
// decided by actually taking the king. Regicide forces drop-aggression
// to MateAllowed regardless of the configured policy (spec §4.1),
// since "mate" is not a concept these variants can evaluate.
func (r Rules) Regicide() bool {
	return r.DuckChess || r.FogOfWar
}

// EffectiveDropAggression returns the drop-aggression policy that
// actually applies, folding in the Regicide override.
func (r Rules) EffectiveDropAggression() DropAggression {
	if r.Regicide() {
		return DropMateAllowed
	}
	return r.DropAggression
}

// BoardShape returns the board's file/rank count. Every bughouse variant
// in this spec plays on a classical 8x8 board.
func (r Rules) BoardShape() (files, ranks int) {
	return 8, 8
}

// Validate checks the rule set for internal consistency, returning an
// error describing the first problem found.
func (r Rules) Validate() error {
	if r.PawnDropRanks.Min > r.PawnDropRanks.Max {
		return fmt.Errorf("rules: pawn drop ranks inverted: min %d > max %d",
			r.PawnDropRanks.Min, r.PawnDropRanks.Max)
	}
	if r.PawnDropRanks.Min < 0 || r.PawnDropRanks.Max > 7 {
		return fmt.Errorf("rules: pawn drop ranks out of board bounds: [%d,%d]",
			r.PawnDropRanks.Min, r.PawnDropRanks.Max)
	}
	if r.TimeControl.Starting <= 0 {
		return fmt.Errorf("rules: non-positive starting time control: %s", r.TimeControl.Starting)
	}
	if r.TimeControl.Increment < 0 {
		return fmt.Errorf("rules: negative time control increment: %s", r.TimeControl.Increment)
	}
	if r.Koedem && r.Atomic {
		return fmt.Errorf("rules: koedem and atomic are mutually exclusive")
	}
	return nil
}
