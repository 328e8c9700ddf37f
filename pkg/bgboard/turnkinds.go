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

package bgboard

import (
	"time"

	"laptudirm.com/x/bughouse/pkg/clock"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/grid"
	"laptudirm.com/x/bughouse/pkg/notation"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/rules"
	"laptudirm.com/x/bughouse/pkg/square"
	"laptudirm.com/x/bughouse/pkg/turn"
)

func (b *Board) validateDrop(mover force.Force, t turn.Turn, mode turn.Mode) (plan, error) {
	kind, to := t.DropKind, t.DropTo

	if b.Reserve[mover].Count(kind) <= 0 {
		return plan{}, gameerror.New(gameerror.DropPieceMissing, "%s has no %s in reserve", mover, kind)
	}
	if kind == piece.Pawn {
		sub := to.SubjectiveRank(mover)
		if sub < b.Rules.PawnDropRanks.Min || sub > b.Rules.PawnDropRanks.Max {
			return plan{}, gameerror.New(gameerror.DropPosition, "pawns may not be dropped on %s", to)
		}
	}
	if mode == turn.Normal && classify(&b.Grid, to, mover) != occupantEmpty {
		return plan{}, gameerror.New(gameerror.DropBlocked, "destination %s is occupied", to)
	}

	var p plan
	p.newEnPassant = square.None
	p.castlingAfter = b.Castling
	p.dropKind = kind
	p.dropForce = mover

	dropped := piece.NewDropped(0, kind, mover)
	p.moves = append(p.moves, turn.Relocation{Piece: dropped, From: square.None, To: to})

	if !b.Rules.Regicide() {
		placement := []grid.Placement{{Square: to, Piece: dropped}}

		ownKingSafe := false
		grid.WithTemporaryPlacement(&b.Grid, placement, func(g *grid.Grid) bool {
			ownKingSafe = !b.isInCheck(mover)
			return ownKingSafe
		})
		if !ownKingSafe {
			return plan{}, gameerror.New(gameerror.UnprotectedKing, "drop leaves %s's king in check", mover)
		}

		opponent := mover.Opposite()
		var opponentChecked, opponentMated bool
		grid.WithTemporaryPlacement(&b.Grid, placement, func(g *grid.Grid) bool {
			opponentChecked = b.isInCheck(opponent)
			if opponentChecked {
				opponentMated = !b.hasLegalMoves(opponent)
			}
			return true
		})
		switch b.Rules.EffectiveDropAggression() {
		case rules.DropNoCheck:
			if opponentChecked {
				return plan{}, gameerror.New(gameerror.DropAggression, "drop may not give check")
			}
		case rules.DropNoChessMate:
			if opponentMated {
				return plan{}, gameerror.New(gameerror.DropAggression, "drop may not deliver checkmate")
			}
		}
	}

	p.algebraic = notation.FormatDrop(kind, to, false, false)
	return p, nil
}

func (b *Board) validateCastleTurn(mover force.Force, t turn.Turn, mode turn.Mode) (plan, error) {
	cp, err := b.planCastle(mover, t.Direction)
	if err != nil {
		return plan{}, err
	}
	if err := b.validateCastlePath(mover, cp, mode); err != nil {
		return plan{}, err
	}

	var p plan
	p.newEnPassant = square.None
	p.moves = append(p.moves,
		turn.Relocation{Piece: b.Grid.At(cp.kingFrom), From: cp.kingFrom, To: cp.kingTo},
		turn.Relocation{Piece: b.Grid.At(cp.rookFrom), From: cp.rookFrom, To: cp.rookTo},
	)
	p.castlingAfter = b.Castling
	p.castlingAfter.RevokeForce(mover)
	p.algebraic = notation.FormatCastle(t.Direction, false, false)
	return p, nil
}

func (b *Board) validateDuck(t turn.Turn) (plan, error) {
	if !b.Rules.DuckChess {
		return plan{}, gameerror.New(gameerror.ImpossibleTrajectory, "duck placement is not enabled for this board")
	}
	to := t.To
	if !b.Grid.IsEmpty(to) {
		return plan{}, gameerror.New(gameerror.PathBlocked, "duck destination %s is occupied", to)
	}

	var p plan
	p.newEnPassant = square.None
	p.castlingAfter = b.Castling

	from := square.None
	if duckSq, ok := b.Grid.Find(func(pc piece.Piece) bool { return pc.Kind == piece.Duck }); ok {
		from = duckSq
	}
	p.moves = append(p.moves, turn.Relocation{Piece: piece.New(0, piece.Duck, force.Neutral), From: from, To: to})
	p.algebraic = notation.FormatDuck(to)
	return p, nil
}

// commit applies p's mutations to the board, advances the clock and turn
// owner, and determines the resulting Status. It is the only place a
// validated turn actually touches Board state (spec §4.2 step 9-10).
func (b *Board) commit(mover force.Force, t turn.Turn, p plan, now time.Time) Facts {
	if p.promotion != nil {
		switch p.promotion.Kind {
		case turn.PromotionSteal:
			p.moves[0].Piece = p.moves[0].Piece.Promoted(p.promotedTo)
		case turn.PromotionDiscard:
			p.moves[0].To = square.None
		}
	}

	for _, mv := range p.moves {
		if mv.From != square.None {
			b.Grid.Remove(mv.From)
		}
	}
	if p.removeEP {
		b.Grid.Remove(p.epCapture)
	}
	for _, mv := range p.moves {
		if mv.To != square.None {
			b.Grid.Place(mv.To, mv.Piece)
		}
	}

	if p.dropKind != piece.NoKind {
		b.Reserve[p.dropForce].Take(p.dropKind)
		b.Drops++
	}

	b.Castling = p.castlingAfter
	b.EnPassant = p.newEnPassant

	next := mover.Opposite()
	b.Clock.NewTurn(next, now)
	b.ToMove = next

	exploded := t.Kind == turn.KindMove && b.Rules.Atomic && len(p.captures) > 0
	if exploded {
		if b.explode(t.To) {
			b.Status = Status{Kind: Victory, Winner: mover, Reason: ReasonExplosion}
		} else {
			b.updateStatusAfterCommit(mover, p.capturedKing)
		}
		// Exploded material is destroyed outright, not relayed to the
		// partner board's reserve (atomic.go's explode).
		p.captures = nil
	} else {
		b.updateStatusAfterCommit(mover, p.capturedKing)
	}

	facts := Facts{
		Turn:           t,
		Algebraic:      p.algebraic,
		Captures:       p.captures,
		ClockRemaining: b.Clock.TimeLeft(mover, now, clock.Exact),
	}
	if t.Kind == turn.KindCastle {
		facts.Relocated = []turn.Relocation{p.moves[1]}
	}
	return facts
}

// updateStatusAfterCommit determines whether the turn just committed by
// mover ended the game, and if so sets b.Status accordingly. Under
// Regicide rules a captured king wins outright; otherwise checkmate,
// stalemate (treated as a draw - chess's usual rule, which the spec's
// Reason list does not separately name but which is required for a
// complete implementation) and threefold repetition are tested in turn.
func (b *Board) updateStatusAfterCommit(mover force.Force, capturedKing bool) {
	if capturedKing && b.Rules.Regicide() {
		b.Status = Status{Kind: Victory, Winner: mover, Reason: ReasonCheckmate}
		return
	}

	if !b.Rules.Regicide() {
		inCheck := b.isInCheck(b.ToMove)
		if !b.hasLegalMoves(b.ToMove) {
			if inCheck {
				b.Status = Status{Kind: Victory, Winner: mover, Reason: ReasonCheckmate}
			} else {
				b.Status = Status{Kind: Draw, Reason: ReasonStalemate}
			}
			return
		}
	}

	if b.recordPosition() {
		b.Status = Status{Kind: Draw, Reason: ReasonThreefoldRepetition}
	}
}

// CountKings reports how many kings f has left on this board, for the
// Koedem win condition (all kings across both boards captured), which is
// arbitrated at the pkg/bughouse level since it spans boards.
func (b *Board) CountKings(f force.Force) int {
	n := 0
	for s := square.Square(0); int(s) < len(b.Grid); s++ {
		p := b.Grid.At(s)
		if !p.IsZero() && p.Kind == piece.King && p.Force == f {
			n++
		}
	}
	return n
}
