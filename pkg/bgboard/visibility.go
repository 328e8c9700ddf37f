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
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

// ReachableSquares returns every square f's pieces could move, capture
// or drop to, ignoring whether doing so would leave f's own king in
// check - visibility under fog of war is about pseudo-legal reach, not
// strict legality (spec §4.5 fog_of_war_area, §4.1 Rules.FogOfWar).
func (b *Board) ReachableSquares(f force.Force) map[square.Square]bool {
	res := make(map[square.Square]bool)
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
				if b.pawnCanReach(f, from, to) {
					res[to] = true
				}
				continue
			}
			occ := classify(&b.Grid, to, f)
			if occ == occupantFriendly || occ == occupantDuck {
				continue
			}
			if reach(p.Kind, &b.Grid, from, to) {
				res[to] = true
			}
		}
	}

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
			res[to] = true
		}
	}
	return res
}
