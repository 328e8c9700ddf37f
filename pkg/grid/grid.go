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

// Package grid implements the 8x8 mailbox of pieces that backs a Board,
// plus a scoped-mutation helper so legality probes can try a placement
// and have it guaranteed reverted, without allocating a fresh grid per
// probe (spec §9 Design Notes: "do not materialize a full grid copy per
// probe").
package grid

import (
	"fmt"
	"strings"

	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

// Grid is a mapping from square to the piece occupying it, if any.
type Grid [square.FileN * square.RankN]piece.Piece

// At returns the piece on s, or the zero Piece if s is empty.
func (g *Grid) At(s square.Square) piece.Piece {
	return g[s]
}

// IsEmpty reports whether s holds no piece.
func (g *Grid) IsEmpty(s square.Square) bool {
	return g[s].IsZero()
}

// Place puts p on square s, returning whatever piece previously
// occupied it (the zero Piece if it was empty).
func (g *Grid) Place(s square.Square, p piece.Piece) piece.Piece {
	prev := g[s]
	g[s] = p
	return prev
}

// Remove empties square s, returning whatever piece was there.
func (g *Grid) Remove(s square.Square) piece.Piece {
	return g.Place(s, piece.Zero)
}

// Placement is a single square's worth of temporary change, applied and
// later reverted by WithTemporaryPlacement.
type Placement struct {
	Square square.Square
	Piece  piece.Piece // the piece to place there for the duration of the probe
}

// WithTemporaryPlacement applies each of changes to g, invokes probe,
// then restores g to its prior state regardless of how probe returns -
// the scoped-mutation pattern spec §9 calls for in place of a language
// with destructors. It does not allocate: squares are saved into a
// small fixed-size array reused across the call.
func WithTemporaryPlacement(g *Grid, changes []Placement, probe func(*Grid) bool) bool {
	var saved [4]piece.Piece // en-passant captures touch at most 3 squares; 4 is headroom
	if len(changes) > len(saved) {
		// fall back to a heap slice for the rare probe touching more squares
		saved := make([]piece.Piece, len(changes))
		for i, c := range changes {
			saved[i] = g[c.Square]
			g[c.Square] = c.Piece
		}
		defer func() {
			for i, c := range changes {
				g[c.Square] = saved[i]
			}
		}()
		return probe(g)
	}

	for i, c := range changes {
		saved[i] = g[c.Square]
		g[c.Square] = c.Piece
	}
	defer func() {
		for i, c := range changes {
			g[c.Square] = saved[i]
		}
	}()
	return probe(g)
}

// Find locates the (first, in square order) piece matching pred.
func (g *Grid) Find(pred func(piece.Piece) bool) (square.Square, bool) {
	for s := 0; s < len(g); s++ {
		if !g[s].IsZero() && pred(g[s]) {
			return square.Square(s), true
		}
	}
	return square.None, false
}

// String renders the grid as an 8-rank ASCII board, rank 8 on top,
// mirroring the teacher's mailbox rendering.
func (g *Grid) String() string {
	var b strings.Builder
	sep := "+---+---+---+---+---+---+---+---+\n"
	b.WriteString(sep)
	for rank := square.Rank8; ; rank-- {
		b.WriteString("| ")
		for file := square.FileA; file < square.FileN; file++ {
			s := square.New(file, rank)
			fmt.Fprintf(&b, "%s | ", g[s].String())
		}
		fmt.Fprintf(&b, "%s\n", rank)
		b.WriteString(sep)
		if rank == square.Rank1 {
			break
		}
	}
	b.WriteString("  a   b   c   d   e   f   g   h\n")
	return b.String()
}
