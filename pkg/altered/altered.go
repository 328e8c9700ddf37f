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

// Package altered implements AlteredGame (spec §4.4, C5): the
// client-side overlay of the server-confirmed BughouseGame with one
// pending local turn and one preturn per board, plus an in-flight drag,
// and the reconciliation logic that keeps those speculative turns
// consistent as authoritative turns arrive. This is the architectural
// seam spec §9 calls out as the reason AlteredGame exists as its own
// component: treat it as a state machine over
// {(no local, no preturn), (local only), (local + preturn), (preturn
// only)} per board, crossed with the drag state, and model transitions
// explicitly rather than by ad-hoc patching.
package altered

import (
	"time"

	"laptudirm.com/x/bughouse/pkg/bughouse"
	"laptudirm.com/x/bughouse/pkg/castling"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
	"laptudirm.com/x/bughouse/pkg/turn"
)

// DragSource discriminates where an in-flight drag's piece is coming
// from.
type DragSource int

const (
	DragFromBoard DragSource = iota
	DragFromReserve
	DragDefunct
)

// Drag is one in-flight drag-and-drop gesture (spec §3 Data Model,
// §4.4).
type Drag struct {
	Board  envoy.Board
	Piece  piece.Kind
	Force  force.Force
	Source DragSource
	From   square.Square // valid when Source == DragFromBoard
}

// boardOverlay holds the at-most-one-Normal, at-most-one-Preturn local
// state for a single board (spec §4.4).
type boardOverlay struct {
	Local   *turn.Input
	Preturn *turn.Input
}

// Highlight is one square-level marker the UI should draw for the
// latest server turn or a pending local turn; Preturn highlights use a
// separate flag so the UI can render them distinctly (spec §4.4
// turn_highlights).
type Highlight struct {
	Board   envoy.Board
	Square  square.Square
	Preturn bool
}

// AlteredGame is the client-side overlay of one confirmed BughouseGame
// (spec §4.4).
type AlteredGame struct {
	Confirmed *bughouse.Game

	// Perspective names, per board, the force this client plays - nil
	// for a board the client only observes. A double-play participant
	// has both entries set.
	Perspective [envoy.BoardN]*force.Force

	overlay [envoy.BoardN]boardOverlay
	drag    *Drag

	// wayback freezes the display to a historical log index; nil means
	// live (spec §4.4 "Wayback mode").
	wayback *int
}

// New creates an AlteredGame overlaying confirmed from perspective,
// with no pending local turns, preturns or drag.
func New(confirmed *bughouse.Game, perspective [envoy.BoardN]*force.Force) *AlteredGame {
	return &AlteredGame{Confirmed: confirmed, Perspective: perspective}
}

// LocalGame computes the displayed state: a clone of the confirmed
// game (or, while frozen, of the historical position at the wayback
// index) with the pending local Normal turn re-applied, then the
// preturn re-applied in Preturn mode, then the in-flight drag reflected
// by removing the dragged piece from its source (spec §4.4 local_game).
func (a *AlteredGame) LocalGame() *bughouse.Game {
	var g *bughouse.Game
	if a.wayback != nil {
		g = a.replay(*a.wayback)
	} else {
		g = a.Confirmed.Clone()
	}

	for b := envoy.Board(0); int(b) < envoy.BoardN; b++ {
		ov := a.overlay[b]
		if a.wayback != nil {
			continue // local turns are disabled while frozen
		}
		if ov.Local != nil {
			f := g.Board(b).ToMove
			_, _ = g.TryTurn(envoy.Envoy{Board: b, Force: f}, *ov.Local, turn.Normal, time.Now())
		}
		if ov.Preturn != nil && a.Perspective[b] != nil {
			f := *a.Perspective[b]
			_, _ = g.TryTurn(envoy.Envoy{Board: b, Force: f}, *ov.Preturn, turn.Preturn, time.Now())
		}
	}

	if a.drag != nil && a.drag.Source == DragFromBoard {
		g.Board(a.drag.Board).Grid.Remove(a.drag.From)
	}
	return g
}

// replay rebuilds the game from scratch up to and including the
// wayback log index, for historical display.
func (a *AlteredGame) replay(index int) *bughouse.Game {
	var names [envoy.BoardN][force.N]string
	for b := envoy.Board(0); int(b) < envoy.BoardN; b++ {
		names[b] = a.Confirmed.Board(b).Names()
	}
	hist := bughouse.NewGame(a.Confirmed.Rules, names, a.Confirmed.StartGrid)
	hist.Start(a.Confirmed.StartTime)
	for _, rec := range a.Confirmed.Log {
		if rec.Index.Number > index {
			break
		}
		_, _ = hist.ApplyTurnRecord(rec.Record, turn.Normal)
	}
	return hist
}

// Freeze displays the game as of log index (inclusive), disabling local
// turns until Unfreeze is called (spec §4.4 "Wayback mode").
func (a *AlteredGame) Freeze(index int) { a.wayback = &index }

// Unfreeze returns to live display.
func (a *AlteredGame) Unfreeze() { a.wayback = nil }

// IsFrozen reports whether the display is in wayback mode.
func (a *AlteredGame) IsFrozen() bool { return a.wayback != nil }

// TryLocalTurn attempts input as the next turn for the force this
// client plays on board, choosing Normal mode if that force is to move
// in the local game or Preturn mode otherwise, validating against a
// local copy, and recording it on success (spec §4.4 try_local_turn).
func (a *AlteredGame) TryLocalTurn(board envoy.Board, input turn.Input, now time.Time) (turn.Expanded, error) {
	if a.wayback != nil {
		return turn.Expanded{}, gameerror.New(gameerror.GameOver, "local turns are disabled while frozen")
	}
	f := a.Perspective[board]
	if f == nil {
		return turn.Expanded{}, gameerror.Of(gameerror.NotPlayer)
	}

	local := a.LocalGame()
	b := local.Board(board)
	mode := turn.Preturn
	if b.Status.IsActive() && b.ToMove == *f {
		mode = turn.Normal
	}

	ov := &a.overlay[board]
	if mode == turn.Preturn && ov.Preturn != nil {
		return turn.Expanded{}, gameerror.Of(gameerror.PreturnLimitReached)
	}
	if mode == turn.Normal && ov.Local != nil {
		return turn.Expanded{}, gameerror.Of(gameerror.PreturnLimitReached)
	}

	rec, err := local.TryTurn(envoy.Envoy{Board: board, Force: *f}, input, mode, now)
	if err != nil {
		return turn.Expanded{}, err
	}

	canonical := turn.NewExplicitInput(rec.Turn)
	if mode == turn.Normal {
		ov.Local = &canonical
	} else {
		ov.Preturn = &canonical
	}
	a.updateDrag()
	return rec, nil
}

// ApplyRemoteTurn updates the confirmed game with an authoritative turn
// and reconciles any pending local state against it (spec §4.4
// apply_remote_turn).
func (a *AlteredGame) ApplyRemoteTurn(e envoy.Envoy, input turn.Input, now time.Time) (turn.Expanded, error) {
	rec, err := a.Confirmed.TryTurn(e, input, turn.Normal, now)
	if err != nil {
		return turn.Expanded{}, err
	}

	ov := &a.overlay[e.Board]
	switch {
	case ov.Local != nil:
		// The server is confirming our own pending move; the preturn,
		// if any, survives and becomes the new Normal candidate.
		ov.Local = nil
	case ov.Preturn != nil:
		pre := *ov.Preturn
		ov.Preturn = nil
		mine := envoy.Envoy{Board: e.Board, Force: e.Force.Opposite()}
		// Re-application is inherently speculative: a failure (the
		// preturn's target square is no longer what it expected, for
		// instance) is dropped silently rather than surfaced as an
		// error (spec §4.4, §8 property 6, scenario S3).
		_, _ = a.Confirmed.TryTurn(mine, pre, turn.Normal, now)
	}

	a.updateDrag()
	return rec, nil
}

// updateDrag marks the in-flight drag defunct if its source piece has
// disappeared or changed ownership in the (now-reconciled) local game
// (spec §4.4 apply_remote_turn "Update the in-flight drag").
func (a *AlteredGame) updateDrag() {
	if a.drag == nil || a.drag.Source != DragFromBoard {
		return
	}
	local := a.LocalGame()
	p := local.Board(a.drag.Board).Grid.At(a.drag.From)
	if p.IsZero() || p.Kind != a.drag.Piece || p.Force != a.drag.Force {
		a.drag.Source = DragDefunct
	}
}

// StartDragPiece begins a drag of the piece at from on board, or of a
// reserve piece of kind k if from == square.None.
func (a *AlteredGame) StartDragPiece(board envoy.Board, f force.Force, k piece.Kind, from square.Square) error {
	if a.drag != nil {
		return gameerror.Of(gameerror.DragAlreadyStarted)
	}
	local := a.LocalGame().Board(board)
	if from == square.None {
		if local.Reserve[f].Count(k) <= 0 {
			return gameerror.Of(gameerror.PieceNotFound)
		}
		a.drag = &Drag{Board: board, Piece: k, Force: f, Source: DragFromReserve}
		return nil
	}
	p := local.Grid.At(from)
	if p.IsZero() || p.Force != f || p.Kind != k {
		return gameerror.Of(gameerror.PieceNotFound)
	}
	a.drag = &Drag{Board: board, Piece: k, Force: f, Source: DragFromBoard, From: from}
	return nil
}

// AbortDragPiece cancels the in-flight drag without producing a turn.
func (a *AlteredGame) AbortDragPiece() error {
	if a.drag == nil {
		return gameerror.Of(gameerror.NoDragInProgress)
	}
	a.drag = nil
	return nil
}

// DragPieceDrop completes the in-flight drag at dest, classifying it
// into a TurnInput: dropping back on the source square cancels the
// drag; a king moving two squares on its home rank (or onto its own
// rook) becomes castling; a pawn reaching the last rank becomes a
// promoting move defaulting to promotionDefault; anything else is a
// plain move or reserve drop (spec §4.4 drag_piece_drop).
func (a *AlteredGame) DragPieceDrop(dest square.Square, promotionDefault piece.Kind) (turn.Input, error) {
	if a.drag == nil {
		return turn.Input{}, gameerror.Of(gameerror.NoDragInProgress)
	}
	if a.drag.Source == DragDefunct {
		a.drag = nil
		return turn.Input{}, gameerror.Of(gameerror.DragNoLongerPossible)
	}
	d := *a.drag
	a.drag = nil

	if d.Source == DragFromBoard && d.From == dest {
		return turn.Input{}, gameerror.Of(gameerror.Cancelled)
	}

	if d.Source == DragFromReserve {
		return turn.NewDragDropInput(turn.NewDrop(d.Piece, dest)), nil
	}

	if d.Piece == piece.King {
		fileDelta := int(dest.File()) - int(d.From.File())
		if dest.Rank() == d.From.Rank() && (fileDelta == 2 || fileDelta == -2) {
			side := castling.HSide
			if fileDelta < 0 {
				side = castling.ASide
			}
			return turn.NewDragDropInput(turn.NewCastle(side)), nil
		}
	}

	lastRank := dest.SubjectiveRank(d.Force) == square.Rank8
	if d.Piece == piece.Pawn && lastRank {
		promo := turn.Promotion{Kind: turn.PromotionUpgrade, UpgradeTo: promotionDefault}
		return turn.NewDragDropInput(turn.NewPromotingMove(d.From, dest, promo)), nil
	}

	return turn.NewDragDropInput(turn.NewMove(d.From, dest)), nil
}

// CancelPreturn discards board's pending preturn, if any. The server
// never sees this (preturns are client-local, spec §4.5 CancelPreturn).
func (a *AlteredGame) CancelPreturn(board envoy.Board) {
	a.overlay[board].Preturn = nil
}

// TurnHighlights lists the squares the UI should mark for the latest
// server turn and any pending local turn, tagging preturn highlights
// separately (spec §4.4 turn_highlights).
func (a *AlteredGame) TurnHighlights() []Highlight {
	var hl []Highlight
	if n := len(a.Confirmed.Log); n > 0 {
		last := a.Confirmed.Log[n-1]
		hl = append(hl,
			Highlight{Board: last.Envoy.Board, Square: last.Turn.Destination()},
		)
		if last.Turn.Kind == turn.KindMove {
			hl = append(hl, Highlight{Board: last.Envoy.Board, Square: last.Turn.From})
		}
	}
	for b := envoy.Board(0); int(b) < envoy.BoardN; b++ {
		if a.overlay[b].Local != nil {
			t := a.overlay[b].Local.Explicit
			hl = append(hl, Highlight{Board: b, Square: t.Destination()})
		}
		if a.overlay[b].Preturn != nil {
			t := a.overlay[b].Preturn.Explicit
			hl = append(hl, Highlight{Board: b, Square: t.Destination(), Preturn: true})
		}
	}
	return hl
}

// FogOfWarArea returns the squares not legally reachable by any piece
// this client controls on board, under Rules.FogOfWar. Preturn
// destinations are visible but do not themselves extend visibility
// (spec §4.4 fog_of_war_area).
func (a *AlteredGame) FogOfWarArea(board envoy.Board) []square.Square {
	if !a.Confirmed.Rules.FogOfWar {
		return nil
	}
	f := a.Perspective[board]
	if f == nil {
		return nil
	}

	local := a.LocalGame().Board(board)
	visible := local.ReachableSquares(*f)

	var fog []square.Square
	for s := square.Square(0); int(s) < 64; s++ {
		if !visible[s] {
			fog = append(fog, s)
		}
	}
	return fog
}
