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

	"laptudirm.com/x/bughouse/pkg/castling"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/grid"
	"laptudirm.com/x/bughouse/pkg/notation"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
	"laptudirm.com/x/bughouse/pkg/turn"
)

// Facts is everything try_turn produces about an accepted turn: enough
// for pkg/bughouse to relay captures to the partner board and for the
// turn log to carry a full TurnRecordExpanded (spec §3, §4.2).
type Facts struct {
	Turn      turn.Turn
	Algebraic string

	// Captures holds pieces removed from the board by this turn, by
	// their *original* kind, the form the partner reserve wants.
	Captures  []piece.Piece
	Relocated []turn.Relocation

	ClockRemaining time.Duration

	// Pending is true only for a promotion that steals its piece from
	// the partner board: the move is fully validated on this board but
	// not yet committed, because whether the named partner-board piece
	// may be taken is not something this board can decide alone (spec
	// §4.2 verify_sibling_turn/apply_sibling_turn, §4.3).
	Pending     bool
	StealSource square.Square
}

// plan is the internal, not-yet-committed description of a validated
// turn: everything TryTurn needs to mutate the board once every check
// has passed, computed before any mutation happens so that a failed
// validation never touches Board state (spec §8 property 2).
type plan struct {
	moves     []turn.Relocation // primary + secondary (castling rook) relocations
	captures  []piece.Piece
	removeEP  bool // en-passant pawn was captured
	epCapture square.Square

	newEnPassant square.Square
	castlingAfter castling.Rights
	dropKind      piece.Kind // non-zero if this was a drop
	dropForce     force.Force

	promotion   *turn.Promotion
	promotedTo  piece.Kind

	capturedKing bool

	algebraic string
}

// TryTurn validates input as a turn for mover under mode, and - unless
// the turn is a steal promotion awaiting partner-board confirmation -
// commits it atomically. On any error the board is left exactly as it
// was (spec §4.2, §8 property 2).
func (b *Board) TryTurn(mover force.Force, input turn.Input, mode turn.Mode, now time.Time) (Facts, error) {
	if !b.Status.IsActive() {
		return Facts{}, gameerror.Of(gameerror.GameOver)
	}
	if mode == turn.Normal && mover != b.ToMove {
		return Facts{}, gameerror.New(gameerror.WrongTurnOrder, "%s is not to move", mover)
	}
	if mode == turn.Preturn && mover == b.ToMove {
		return Facts{}, gameerror.New(gameerror.WrongTurnMode, "cannot preturn on your own turn")
	}

	t, err := b.ParseTurnInput(mover, input)
	if err != nil {
		return Facts{}, err
	}

	p, err := b.validateTurn(mover, t, mode)
	if err != nil {
		return Facts{}, err
	}

	if p.promotion != nil && p.promotion.Kind == turn.PromotionSteal {
		return Facts{
			Turn: t, Algebraic: p.algebraic, Pending: true,
			StealSource: p.promotion.StealSource,
		}, nil
	}

	return b.commit(mover, t, p, now), nil
}

// FinishSteal commits a steal-promotion turn previously returned as
// Pending once the partner board has confirmed stolenKind is available
// to take (spec §4.3).
func (b *Board) FinishSteal(mover force.Force, facts Facts, stolenKind piece.Kind, now time.Time) Facts {
	p, err := b.validateTurn(mover, facts.Turn, turn.Normal)
	if err != nil {
		// Revalidation only fails if the position changed between the
		// pending check and this call, which callers must prevent by
		// finishing steal promotions before processing any other turn.
		panic("bgboard: FinishSteal revalidation failed: " + err.Error())
	}
	p.promotedTo = stolenKind
	return b.commit(mover, facts.Turn, p, now)
}

// VerifySiblingTurn checks, on the partner board, that source holds a
// piece eligible to be taken by a steal promotion: it must exist and
// must not be a king unless Koedem is enabled. It returns the piece's
// current kind without removing it.
func (b *Board) VerifySiblingTurn(source square.Square) (piece.Kind, error) {
	p := b.Grid.At(source)
	if p.IsZero() {
		return piece.NoKind, gameerror.New(gameerror.StealTargetInvalid, "no piece on partner board at %s", source)
	}
	if p.Kind == piece.King && !b.Rules.Koedem {
		return piece.NoKind, gameerror.New(gameerror.StealTargetInvalid, "cannot steal a king")
	}
	return p.Kind, nil
}

// ApplySiblingTurn removes the piece at source on the partner board,
// returning it. Callers must have already confirmed via
// VerifySiblingTurn that this is legal.
func (b *Board) ApplySiblingTurn(source square.Square) piece.Piece {
	return b.Grid.Remove(source)
}

// ParseTurnInput resolves a user-level TurnInput into a concrete Turn,
// consulting the grid for algebraic disambiguation and the drag-drop
// castling auto-detection (spec §4.2).
func (b *Board) ParseTurnInput(mover force.Force, input turn.Input) (turn.Turn, error) {
	switch input.Kind {
	case turn.InputExplicit:
		return input.Explicit, nil
	case turn.InputDragDrop:
		return b.resolveDragDrop(mover, input.DragDrop), nil
	case turn.InputAlgebraic:
		return b.resolveAlgebraic(mover, input.Algebraic)
	default:
		return turn.Turn{}, gameerror.New(gameerror.InvalidNotation, "unknown input kind")
	}
}

// resolveDragDrop reinterprets a king move of two squares, or a king
// moving onto its own rook, as castling.
func (b *Board) resolveDragDrop(mover force.Force, t turn.Turn) turn.Turn {
	if t.Kind != turn.KindMove {
		return t
	}
	fromPiece := b.Grid.At(t.From)
	if fromPiece.IsZero() || fromPiece.Kind != piece.King || fromPiece.Force != mover {
		return t
	}

	toPiece := b.Grid.At(t.To)
	if !toPiece.IsZero() && toPiece.Kind == piece.Rook && toPiece.Force == mover {
		if t.To.File() > t.From.File() {
			return turn.NewCastle(castling.HSide)
		}
		return turn.NewCastle(castling.ASide)
	}

	fileDelta := int(t.To.File()) - int(t.From.File())
	if t.To.Rank() == t.From.Rank() && (fileDelta == 2 || fileDelta == -2) {
		if fileDelta == 2 {
			return turn.NewCastle(castling.HSide)
		}
		return turn.NewCastle(castling.ASide)
	}
	return t
}

func (b *Board) resolveAlgebraic(mover force.Force, s string) (turn.Turn, error) {
	parsed, err := notation.ParseAlgebraic(s)
	if err != nil {
		return turn.Turn{}, err
	}

	switch parsed.Kind {
	case notation.KindCastle:
		return turn.NewCastle(parsed.CastleSide), nil
	case notation.KindDuck:
		return turn.NewPlaceDuck(parsed.To), nil
	case notation.KindDrop:
		return turn.NewDrop(parsed.PieceKind, parsed.To), nil
	}

	from, err := b.disambiguate(mover, parsed)
	if err != nil {
		return turn.Turn{}, err
	}

	occ := classify(&b.Grid, parsed.To, mover)
	isCapture := occ == occupantHostile || (parsed.To == b.EnPassant && parsed.PieceKind == piece.Pawn)
	if parsed.Capture && !isCapture {
		return turn.Turn{}, gameerror.New(gameerror.CaptureNotationRequiresCapture, "%q marks a capture but none occurs", s)
	}

	if !parsed.HasPromotion {
		return turn.NewMove(from, parsed.To), nil
	}

	promo := turn.Promotion{Kind: turn.PromotionUpgrade, UpgradeTo: parsed.UpgradeTo, StealSource: square.None}
	if parsed.StealSource != square.None {
		promo.Kind = turn.PromotionSteal
		promo.StealSource = parsed.StealSource
	}
	return turn.NewPromotingMove(from, parsed.To, promo), nil
}

// disambiguate finds the unique origin square of a piece of parsed's
// kind and force that can reach parsed.To, narrowed by any explicit
// file/rank disambiguation.
func (b *Board) disambiguate(mover force.Force, parsed notation.Parsed) (square.Square, error) {
	var candidates []square.Square
	for s := square.Square(0); int(s) < len(b.Grid); s++ {
		p := b.Grid.At(s)
		if p.IsZero() || p.Force != mover || p.Kind != parsed.PieceKind {
			continue
		}
		if parsed.DisambigFile >= 0 && s.File() != parsed.DisambigFile {
			continue
		}
		if parsed.DisambigRank >= 0 && s.Rank() != parsed.DisambigRank {
			continue
		}
		if parsed.PieceKind == piece.Pawn {
			if b.pawnCanReach(mover, s, parsed.To) {
				candidates = append(candidates, s)
			}
			continue
		}
		if reach(p.Kind, &b.Grid, s, parsed.To) {
			candidates = append(candidates, s)
		}
	}

	switch len(candidates) {
	case 0:
		return square.None, gameerror.New(gameerror.PieceMissing, "no %s can reach %s", parsed.PieceKind, parsed.To)
	case 1:
		return candidates[0], nil
	default:
		return square.None, gameerror.New(gameerror.AmbiguousNotation, "multiple %s can reach %s", parsed.PieceKind, parsed.To)
	}
}
