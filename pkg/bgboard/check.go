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
	"laptudirm.com/x/bughouse/pkg/grid"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

// isInCheck reports whether f's king is currently attacked. A force
// with no king on this board (Koedem, after all its kings here have
// been captured or relocated) is never in check - there is nothing left
// to attack.
func (b *Board) isInCheck(f force.Force) bool {
	kingSq, ok := b.Grid.Find(func(p piece.Piece) bool {
		return p.Kind == piece.King && p.Force == f
	})
	if !ok {
		return false
	}
	return attackedBy(&b.Grid, kingSq, f.Opposite())
}

// hasLegalMoves reports whether f has any turn (board move or reserve
// drop) that does not leave its own king in check. Used for checkmate
// and stalemate-adjacent bughouse-mate detection; bughouse allows
// escaping check by dropping a blocker, so reserve drops must be
// considered alongside board moves.
func (b *Board) hasLegalMoves(f force.Force) bool {
	for from := square.Square(0); int(from) < len(b.Grid); from++ {
		p := b.Grid.At(from)
		if p.IsZero() || p.Force != f {
			continue
		}
		for to := square.Square(0); int(to) < len(b.Grid); to++ {
			if to == from {
				continue
			}
			if p.Kind == piece.Pawn {
				if b.pawnCanReach(f, from, to) && !b.leavesKingInCheck(f, from, to, p) {
					return true
				}
				continue
			}
			occ := classify(&b.Grid, to, f)
			if occ == occupantFriendly || occ == occupantDuck {
				continue
			}
			if reach(p.Kind, &b.Grid, from, to) && !b.leavesKingInCheck(f, from, to, p) {
				return true
			}
		}
	}

	if b.hasLegalDrop(f) {
		return true
	}

	return false
}

// pawnCanReach reports whether a pawn's geometric shape (forward push,
// double push, or diagonal capture/en-passant) reaches to, ignoring the
// owning check-safety test.
func (b *Board) pawnCanReach(f force.Force, from, to square.Square) bool {
	_, dir := square.Towards(f)
	if s, ok := from.Offset(0, dir); ok && s == to && b.Grid.IsEmpty(to) {
		return true
	}
	if from.SubjectiveRank(f) == square.Rank2 {
		if one, ok := from.Offset(0, dir); ok && b.Grid.IsEmpty(one) {
			if two, ok := from.Offset(0, 2*dir); ok && two == to && b.Grid.IsEmpty(two) {
				return true
			}
		}
	}
	if pawnAttacks(f, from, to) {
		occ := classify(&b.Grid, to, f)
		if occ == occupantHostile || to == b.EnPassant {
			return true
		}
	}
	return false
}

func (b *Board) leavesKingInCheck(f force.Force, from, to square.Square, mover piece.Piece) bool {
	changes := []grid.Placement{{Square: from, Piece: piece.Zero}, {Square: to, Piece: mover}}
	inCheck := true
	grid.WithTemporaryPlacement(&b.Grid, changes, func(g *grid.Grid) bool {
		inCheck = b.isInCheck(f)
		return !inCheck
	})
	return inCheck
}

func (b *Board) hasLegalDrop(f force.Force) bool {
	for kind, n := range b.Reserve[f] {
		if n <= 0 {
			continue
		}
		for to := square.Square(0); int(to) < len(b.Grid); to++ {
			if !b.Grid.IsEmpty(to) {
				continue
			}
			if kind == piece.Pawn {
				sub := to.SubjectiveRank(f)
				if sub < b.Rules.PawnDropRanks.Min || sub > b.Rules.PawnDropRanks.Max {
					continue
				}
			}
			dropped := piece.NewDropped(0, kind, f)
			changes := []grid.Placement{{Square: to, Piece: dropped}}
			escapes := false
			grid.WithTemporaryPlacement(&b.Grid, changes, func(g *grid.Grid) bool {
				escapes = !b.isInCheck(f)
				return escapes
			})
			if escapes {
				return true
			}
		}
	}
	return false
}

// fingerprint is the repetition-detection key: grid shape stripped of
// piece identity/origin, active force, castling rights and en-passant
// target, plus the total-drops counter (spec §3 Position fingerprint).
// Any drop resets repetition counting, folded in by making Drops part
// of the key rather than by clearing the map.
type fingerprint struct {
	grid      [64]pieceShape
	toMove    force.Force
	castling  castling.Rights
	enPassant square.Square
	drops     int
}

type pieceShape struct {
	Kind  piece.Kind
	Force force.Force
}

func (b *Board) fingerprint() fingerprint {
	var fp fingerprint
	for s := square.Square(0); int(s) < len(b.Grid); s++ {
		p := b.Grid.At(s)
		fp.grid[s] = pieceShape{Kind: p.Kind, Force: p.Force}
	}
	fp.toMove = b.ToMove
	fp.castling = b.Castling
	fp.enPassant = b.EnPassant
	fp.drops = b.Drops
	return fp
}

// recordPosition updates the repetition table with the board's current
// position and reports whether it has now recurred a third time.
func (b *Board) recordPosition() bool {
	fp := b.fingerprint()
	b.repetition[fp]++
	return b.repetition[fp] >= 3
}
