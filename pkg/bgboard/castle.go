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
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
	"laptudirm.com/x/bughouse/pkg/turn"
)

// castlePlan is the concrete squares a castling turn moves the king and
// rook to/from, resolved from the rook's Fischer-random starting file.
type castlePlan struct {
	kingFrom, kingTo square.Square
	rookFrom, rookTo square.Square
}

// planCastle resolves side into concrete squares for f, without yet
// checking legality.
func (b *Board) planCastle(f force.Force, side castling.Side) (castlePlan, error) {
	home := square.Rank1
	if f == force.Black {
		home = square.Rank8
	}
	kingSq, ok := b.Grid.Find(func(p piece.Piece) bool {
		return p.Kind == piece.King && p.Force == f
	})
	if !ok {
		return castlePlan{}, gameerror.New(gameerror.CastlingPieceHasMoved, "no king to castle")
	}
	rookFile, ok := b.Castling.RookFile(f, side)
	if !ok {
		return castlePlan{}, gameerror.New(gameerror.CastlingPieceHasMoved, "no castling right for %s", side)
	}
	rookFrom := square.New(square.File(rookFile), home)

	// Destination files follow standard Chess960 convention: king ends
	// on the g-file for h-side, c-file for a-side; rook ends adjacent
	// on the inside.
	var kingToFile, rookToFile square.File
	if side == castling.HSide {
		kingToFile, rookToFile = square.FileG, square.FileF
	} else {
		kingToFile, rookToFile = square.FileC, square.FileD
	}

	return castlePlan{
		kingFrom: kingSq,
		kingTo:   square.New(kingToFile, home),
		rookFrom: rookFrom,
		rookTo:   square.New(rookToFile, home),
	}, nil
}

// validateCastlePath checks that every square the king and rook travel
// through or land on (excluding their own starting squares) is empty or
// occupied only by the king/rook themselves, and that, in Normal mode,
// the king does not start, pass through, or end in check.
func (b *Board) validateCastlePath(f force.Force, plan castlePlan, mode turn.Mode) error {
	min, max := minSquareFile(plan), maxSquareFile(plan)
	home := plan.kingFrom.Rank()
	for file := min; file <= max; file++ {
		s := square.New(file, home)
		if s == plan.kingFrom || s == plan.rookFrom {
			continue
		}
		if !b.Grid.IsEmpty(s) {
			return gameerror.New(gameerror.PathBlocked, "castling path occupied at %s", s)
		}
	}

	if mode != turn.Normal {
		return nil
	}

	step := 1
	if plan.kingTo < plan.kingFrom {
		step = -1
	}
	for s := plan.kingFrom; ; {
		if attackedBy(&b.Grid, s, f.Opposite()) {
			return gameerror.New(gameerror.UnprotectedKing, "king would pass through check at %s", s)
		}
		if s == plan.kingTo {
			break
		}
		next, ok := s.Offset(step, 0)
		if !ok {
			break
		}
		s = next
	}
	return nil
}

func minSquareFile(plan castlePlan) square.File {
	min := plan.kingFrom.File()
	for _, s := range []square.Square{plan.kingTo, plan.rookFrom, plan.rookTo} {
		if s.File() < min {
			min = s.File()
		}
	}
	return min
}

func maxSquareFile(plan castlePlan) square.File {
	max := plan.kingFrom.File()
	for _, s := range []square.Square{plan.kingTo, plan.rookFrom, plan.rookTo} {
		if s.File() > max {
			max = s.File()
		}
	}
	return max
}
