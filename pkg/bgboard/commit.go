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
	"laptudirm.com/x/bughouse/pkg/castling"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/notation"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/rules"
	"laptudirm.com/x/bughouse/pkg/square"
	"laptudirm.com/x/bughouse/pkg/turn"
)

// validateTurn dispatches to the per-kind validator and returns a plan
// describing every mutation the turn requires, without applying any of
// them (spec §4.2 turn validation algorithm, steps 3-8).
func (b *Board) validateTurn(mover force.Force, t turn.Turn, mode turn.Mode) (plan, error) {
	switch t.Kind {
	case turn.KindMove:
		return b.validateMove(mover, t, mode)
	case turn.KindDrop:
		return b.validateDrop(mover, t, mode)
	case turn.KindCastle:
		return b.validateCastleTurn(mover, t, mode)
	case turn.KindPlaceDuck:
		return b.validateDuck(t)
	default:
		return plan{}, gameerror.New(gameerror.InvalidNotation, "unknown turn kind")
	}
}

func (b *Board) validateMove(mover force.Force, t turn.Turn, mode turn.Mode) (plan, error) {
	from := t.From
	fromPiece := b.Grid.At(from)
	if fromPiece.IsZero() || fromPiece.Force != mover {
		return plan{}, gameerror.New(gameerror.PieceMissing, "no %s piece at %s", mover, from)
	}

	occ := classify(&b.Grid, t.To, mover)
	if occ == occupantFriendly || occ == occupantDuck {
		return plan{}, gameerror.New(gameerror.PathBlocked, "destination %s is occupied", t.To)
	}

	var p plan
	p.newEnPassant = square.None
	p.castlingAfter = b.Castling

	directCapture := occ == occupantHostile
	if fromPiece.Kind == piece.Pawn {
		if !b.validatePawnShape(mover, from, t.To, directCapture, &p) {
			return plan{}, gameerror.New(gameerror.ImpossibleTrajectory, "illegal pawn move %s-%s", from, t.To)
		}
	} else {
		if !reach(fromPiece.Kind, &b.Grid, from, t.To) {
			return plan{}, gameerror.New(gameerror.ImpossibleTrajectory, "illegal %s move %s-%s", fromPiece.Kind, from, t.To)
		}
	}

	isCapture := directCapture || p.removeEP
	if directCapture {
		captured := b.Grid.At(t.To)
		p.captures = append(p.captures, piece.New(0, captured.OriginKind, captured.Force))
		if captured.Kind == piece.Rook {
			p.castlingAfter = revokeRookCastling(p.castlingAfter, captured.Force, t.To)
		}
		if captured.Kind == piece.King {
			p.capturedKing = true
		}
	}
	if p.removeEP {
		epVictim := b.Grid.At(p.epCapture)
		p.captures = append(p.captures, piece.New(0, epVictim.OriginKind, epVictim.Force))
	}

	moverPiece := fromPiece
	lastRank := t.To.SubjectiveRank(mover) == square.Rank8
	if lastRank && fromPiece.Kind == piece.Pawn {
		if t.Promotion == nil {
			return plan{}, gameerror.New(gameerror.BadPromotion, "pawn reaching last rank must promote")
		}
		if !b.promotionAllowed(*t.Promotion) {
			return plan{}, gameerror.New(gameerror.BadPromotion, "promotion kind not permitted by rules")
		}
		p.promotion = t.Promotion
		if t.Promotion.Kind == turn.PromotionUpgrade {
			moverPiece = fromPiece.Promoted(t.Promotion.UpgradeTo)
		}
		// Steal and Discard finalize moverPiece in commit: Discard
		// removes the pawn outright, Steal waits on the partner board.
	} else if t.Promotion != nil {
		return plan{}, gameerror.New(gameerror.BadPromotion, "promotion specified on non-promoting move")
	}

	p.moves = append(p.moves, turn.Relocation{Piece: moverPiece, From: from, To: t.To})

	switch fromPiece.Kind {
	case piece.Rook:
		p.castlingAfter = revokeRookCastling(p.castlingAfter, mover, from)
	case piece.King:
		p.castlingAfter.RevokeForce(mover)
	}

	if err := b.checkSafety(mover, from, t.To, moverPiece, mode); err != nil {
		return plan{}, err
	}

	needsFile, needsRank := b.disambiguationNeeds(mover, fromPiece.Kind, from, t.To)
	p.algebraic = notation.FormatMove(fromPiece.Kind, from, t.To, needsFile, needsRank, isCapture, nil, false, false)
	if p.promotion != nil && p.promotion.Kind == turn.PromotionUpgrade {
		p.algebraic += "=" + p.promotion.UpgradeTo.String()
	}

	return p, nil
}

// validatePawnShape fills in en-passant and double-push details for a
// pawn move and reports whether the move's geometry is legal.
func (b *Board) validatePawnShape(f force.Force, from, to square.Square, directCapture bool, p *plan) bool {
	_, dir := square.Towards(f)
	if !directCapture {
		if one, ok := from.Offset(0, dir); ok && one == to {
			return true
		}
		if from.SubjectiveRank(f) == square.Rank2 {
			one, ok1 := from.Offset(0, dir)
			two, ok2 := from.Offset(0, 2*dir)
			if ok1 && ok2 && two == to && b.Grid.IsEmpty(one) {
				p.newEnPassant = one
				return true
			}
		}
		if pawnAttacks(f, from, to) && to == b.EnPassant {
			capturedSq, ok := to.Offset(0, -dir)
			if !ok {
				return false
			}
			p.removeEP = true
			p.epCapture = capturedSq
			return true
		}
		return false
	}
	return pawnAttacks(f, from, to)
}

func (b *Board) promotionAllowed(promo turn.Promotion) bool {
	switch promo.Kind {
	case turn.PromotionDiscard:
		return b.Rules.PromotionPolicy == rules.PromotionDiscard
	case turn.PromotionSteal:
		return b.Rules.PromotionPolicy == rules.PromotionSteal
	default:
		if promo.UpgradeTo.IsFairy() && !b.Rules.FairyPieces {
			return false
		}
		return promo.UpgradeTo != piece.King && promo.UpgradeTo != piece.Pawn
	}
}

func revokeRookCastling(c castling.Rights, f force.Force, sq square.Square) castling.Rights {
	if file, ok := c.RookFile(f, castling.ASide); ok && square.File(file) == sq.File() {
		c.Revoke(f, castling.ASide)
	}
	if file, ok := c.RookFile(f, castling.HSide); ok && square.File(file) == sq.File() {
		c.Revoke(f, castling.HSide)
	}
	return c
}

// disambiguationNeeds reports whether another like piece could also
// reach to, and if so, whether file alone is enough to tell them apart
// or rank (or both) is required - the "minimal disambiguation" rule
// FormatMove and algebraic round-tripping depend on (spec §4.7, §8
// property 5). Pawns never need disambiguation beyond the capture-file
// notation FormatMove already applies.
func (b *Board) disambiguationNeeds(mover force.Force, kind piece.Kind, from, to square.Square) (needsFile, needsRank bool) {
	if kind == piece.Pawn || kind == piece.King {
		return false, false
	}
	sameFile, sameRank := false, false
	any := false
	for s := square.Square(0); int(s) < len(b.Grid); s++ {
		if s == from {
			continue
		}
		p := b.Grid.At(s)
		if p.IsZero() || p.Force != mover || p.Kind != kind {
			continue
		}
		if !reach(kind, &b.Grid, s, to) {
			continue
		}
		any = true
		if s.File() == from.File() {
			sameFile = true
		}
		if s.Rank() == from.Rank() {
			sameRank = true
		}
	}
	if !any {
		return false, false
	}
	if !sameFile {
		return true, false
	}
	if !sameRank {
		return false, true
	}
	return true, true
}

func (b *Board) checkSafety(f force.Force, from, to square.Square, mover piece.Piece, mode turn.Mode) error {
	if b.Rules.Regicide() {
		return nil
	}
	if b.leavesKingInCheck(f, from, to, mover) {
		return gameerror.New(gameerror.UnprotectedKing, "move leaves %s's king in check", f)
	}
	return nil
}
