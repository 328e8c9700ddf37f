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
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

// explode implements Rules.Atomic's capture side effect: every piece in
// the 3x3 box centered on center is destroyed, except pawns, which are
// immune to the blast and are left in place (including a capturing
// pawn, which is the one piece that survives sitting on center). A
// non-pawn capturing piece is therefore also destroyed by its own
// capture, same as in standalone atomic chess. Exploded material is
// removed from play outright - it does not relay to the partner
// board's reserve the way an ordinary capture does, since nothing
// resembling a stable piece survives the blast to be dropped later.
// Reports whether a king was destroyed by the blast.
func (b *Board) explode(center square.Square) bool {
	destroyedKing := false
	for dr := -1; dr <= 1; dr++ {
		for df := -1; df <= 1; df++ {
			sq, ok := center.Offset(df, dr)
			if !ok {
				continue
			}
			p := b.Grid.At(sq)
			if p.IsZero() || p.Kind == piece.Pawn {
				continue
			}
			if p.Kind == piece.King {
				destroyedKing = true
			}
			b.Grid.Remove(sq)
		}
	}
	return destroyedKing
}
