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

// Package startpos builds the initial grid.Grid a new bughouse game's
// boards are seeded from: the classical back-rank layout, or a
// Fischer-random shuffle (spec §3 "Rules.FischerRandom", §9 Fischer
// random: "identical for all four players" - one shuffled layout seeds
// both boards of the game).
package startpos

import (
	"math/rand"

	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/grid"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

// classicalBackRank is the standard chess back-rank piece order.
var classicalBackRank = [8]piece.Kind{
	piece.Rook, piece.Knight, piece.Bishop, piece.Queen,
	piece.King, piece.Bishop, piece.Knight, piece.Rook,
}

// Classical returns the standard 8x8 starting grid, with fresh, stable
// piece IDs assigned file by file (a1, a2, a7, a8, b1, ...).
func Classical() grid.Grid {
	return fromBackRank(classicalBackRank)
}

// FischerRandom returns a randomized, legal Chess960-style back-rank
// layout, seeded by rng: bishops on opposite-color squares, the king
// between the two rooks, per the glossary's Fischer random definition.
// The same layout is used for both boards of a game.
func FischerRandom(rng *rand.Rand) grid.Grid {
	return fromBackRank(shuffledBackRank(rng))
}

// shuffledBackRank draws a uniformly random legal Chess960 back rank by
// rejection sampling: retry on any arrangement where both bishops share
// a square color, which directly forbids the configuration rather than
// reasoning about it combinatorially.
func shuffledBackRank(rng *rand.Rand) [8]piece.Kind {
	for {
		perm := rng.Perm(8)
		var rank [8]piece.Kind
		pieces := []piece.Kind{
			piece.Rook, piece.Knight, piece.Bishop, piece.Queen,
			piece.King, piece.Bishop, piece.Knight, piece.Rook,
		}
		for i, p := range perm {
			rank[i] = pieces[p]
		}
		if !legalBackRank(rank) {
			continue
		}
		return rank
	}
}

func legalBackRank(rank [8]piece.Kind) bool {
	var bishopFiles []int
	kingFile, rookFiles := -1, []int{}
	for i, k := range rank {
		switch k {
		case piece.Bishop:
			bishopFiles = append(bishopFiles, i)
		case piece.King:
			kingFile = i
		case piece.Rook:
			rookFiles = append(rookFiles, i)
		}
	}
	if len(bishopFiles) != 2 || bishopFiles[0]%2 == bishopFiles[1]%2 {
		return false
	}
	if len(rookFiles) != 2 {
		return false
	}
	return rookFiles[0] < kingFile && kingFile < rookFiles[1]
}

func fromBackRank(rank [8]piece.Kind) grid.Grid {
	var g grid.Grid
	var id piece.ID = 1
	place := func(s square.Square, k piece.Kind, f force.Force) {
		g.Place(s, piece.New(id, k, f))
		id++
	}
	for file := square.FileA; file < square.FileN; file++ {
		place(square.New(file, square.Rank1), rank[file], force.White)
		place(square.New(file, square.Rank2), piece.Pawn, force.White)
		place(square.New(file, square.Rank7), piece.Pawn, force.Black)
		place(square.New(file, square.Rank8), rank[file], force.Black)
	}
	return g
}
