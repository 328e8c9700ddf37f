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

package notation

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"laptudirm.com/x/bughouse/pkg/grid"
	"laptudirm.com/x/bughouse/pkg/square"
)

// StartingFEN renders g's piece placement as a Shredder-FEN (spec §6
// "starting positions given as a Shredder-FEN pair for the two
// boards"). Both bughouse boards begin with White to move and an empty
// reserve, so the side-to-move and counter fields are fixed; castling
// rights are recomputed from the actual rook/king files by
// bgboard.New's own inference, so they are written here as "-" and
// left to the live Board.Castling rather than re-derived from the
// grid alone.
func StartingFEN(g grid.Grid) string {
	var b strings.Builder
	for rank := square.Rank8; ; rank-- {
		empty := 0
		for file := square.FileA; file < square.FileN; file++ {
			p := g.At(square.New(file, rank))
			if p.IsZero() {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&b, "%d", empty)
				empty = 0
			}
			b.WriteString(p.String())
		}
		if empty > 0 {
			fmt.Fprintf(&b, "%d", empty)
		}
		if rank == square.Rank1 {
			break
		}
		b.WriteByte('/')
	}
	b.WriteString(" w - - 0 1")
	return b.String()
}

// ValidateClassicalFEN checks that fen parses as a legal classical chess
// position. Bughouse boards allow extra piece kinds and drop reserves
// that a plain FEN cannot express, so this only validates the piece
// placement and side-to-move fields of starting positions generated
// under non-fairy, non-duck rules - the one case where a bughouse board
// setup is also a valid classical one (spec §4.7's Shredder-FEN export
// for the non-fairy case, and check-player-name-adjacent sanity checks
// on imported starting positions).
func ValidateClassicalFEN(fen string) error {
	placement := strings.Fields(fen)
	if len(placement) == 0 {
		return fmt.Errorf("notation: empty FEN")
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return fmt.Errorf("notation: invalid FEN: %w", err)
	}
	if _, err := chess.NewGame(opt); err != nil {
		return fmt.Errorf("notation: invalid FEN: %w", err)
	}
	return nil
}
