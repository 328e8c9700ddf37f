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
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/grid"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {-1, 2}, {-2, 1},
	{1, -2}, {2, -1}, {-1, -2}, {-2, -1},
}

var kingOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// occupant classifies what sits on a destination square for move
// legality: the duck is never capturable and always blocks, regardless
// of the mover's force (spec §3 Piece; duck-chess variant).
type occupant int

const (
	occupantEmpty occupant = iota
	occupantFriendly
	occupantHostile
	occupantDuck
)

func classify(g *grid.Grid, to square.Square, mover force.Force) occupant {
	p := g.At(to)
	switch {
	case p.IsZero():
		return occupantEmpty
	case p.Kind == piece.Duck:
		return occupantDuck
	case p.Force == mover:
		return occupantFriendly
	default:
		return occupantHostile
	}
}

// offsetReach reports whether to is one of the fixed offsets away from
// from, for knight- and king-like pieces that ignore blockers.
func offsetReach(offsets [8][2]int, from, to square.Square) bool {
	for _, o := range offsets {
		if s, ok := from.Offset(o[0], o[1]); ok && s == to {
			return true
		}
	}
	return false
}

// sliderReach walks each direction from from until it leaves the board
// or hits an occupied square (any piece, including the duck, blocks
// further travel along that ray). It reports whether to was reached.
func sliderReach(dirs [][2]int, g *grid.Grid, from, to square.Square) bool {
	for _, d := range dirs {
		s := from
		for {
			next, ok := s.Offset(d[0], d[1])
			if !ok {
				break
			}
			s = next
			if s == to {
				return true
			}
			if !g.IsEmpty(s) {
				break
			}
		}
	}
	return false
}

// reach reports whether a piece of kind k standing on from can
// geometrically travel to to, ignoring from/to occupancy legality
// (friendly/hostile/duck) but respecting blockers along slider paths.
// Pawns are handled separately in validate.go, since their reach
// depends on whether the move is a capture.
func reach(k piece.Kind, g *grid.Grid, from, to square.Square) bool {
	switch k {
	case piece.Knight:
		return offsetReach(knightOffsets, from, to)
	case piece.King:
		return offsetReach(kingOffsets, from, to)
	case piece.Bishop:
		return sliderReach(bishopDirs[:], g, from, to)
	case piece.Rook:
		return sliderReach(rookDirs[:], g, from, to)
	case piece.Queen:
		return sliderReach(bishopDirs[:], g, from, to) || sliderReach(rookDirs[:], g, from, to)
	case piece.Cardinal:
		return offsetReach(knightOffsets, from, to) || sliderReach(bishopDirs[:], g, from, to)
	case piece.Empress:
		return offsetReach(knightOffsets, from, to) || sliderReach(rookDirs[:], g, from, to)
	case piece.Amazon:
		return offsetReach(knightOffsets, from, to) ||
			sliderReach(bishopDirs[:], g, from, to) ||
			sliderReach(rookDirs[:], g, from, to)
	default:
		return false
	}
}

// pawnAttacks reports whether a pawn of force f standing on from attacks
// (could capture on) square to - the diagonal-forward squares,
// regardless of whether anything currently occupies them. Used for
// check detection, where the question is "could capture if a king were
// there", not "is this currently a legal capturing move".
func pawnAttacks(f force.Force, from, to square.Square) bool {
	_, dir := square.Towards(f)
	for _, fileDelta := range [2]int{-1, 1} {
		if s, ok := from.Offset(fileDelta, dir); ok && s == to {
			return true
		}
	}
	return false
}

// attackedBy reports whether any piece of force by attacks target on g.
func attackedBy(g *grid.Grid, target square.Square, by force.Force) bool {
	for s := square.Square(0); int(s) < len(g); s++ {
		p := g.At(s)
		if p.IsZero() || p.Force != by {
			continue
		}
		if p.Kind == piece.Pawn {
			if pawnAttacks(by, s, target) {
				return true
			}
			continue
		}
		if reach(p.Kind, g, s, target) {
			return true
		}
	}
	return false
}
