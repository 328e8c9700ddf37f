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

package grid_test

import (
	"testing"

	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/grid"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

func TestPlaceRemove(t *testing.T) {
	var g grid.Grid
	s := square.New(square.FileE, square.Rank4)

	if !g.IsEmpty(s) {
		t.Fatalf("fresh grid: square %v should be empty", s)
	}

	p := piece.New(1, piece.Knight, force.White)
	prev := g.Place(s, p)
	if !prev.IsZero() {
		t.Errorf("Place into empty square returned %v, want zero", prev)
	}
	if got := g.At(s); got != p {
		t.Errorf("At(%v) = %v, want %v", s, got, p)
	}

	removed := g.Remove(s)
	if removed != p {
		t.Errorf("Remove returned %v, want %v", removed, p)
	}
	if !g.IsEmpty(s) {
		t.Errorf("square should be empty after Remove")
	}
}

func TestWithTemporaryPlacementReverts(t *testing.T) {
	var g grid.Grid
	s1 := square.New(square.FileA, square.Rank1)
	s2 := square.New(square.FileH, square.Rank8)

	p1 := piece.New(1, piece.Rook, force.White)
	g.Place(s1, p1)

	changes := []grid.Placement{
		{Square: s1, Piece: piece.Zero},
		{Square: s2, Piece: piece.New(2, piece.Queen, force.Black)},
	}

	var sawDuringProbe piece.Piece
	grid.WithTemporaryPlacement(&g, changes, func(probeGrid *grid.Grid) bool {
		sawDuringProbe = probeGrid.At(s2)
		return true
	})

	if sawDuringProbe.IsZero() {
		t.Errorf("probe should have observed the temporary placement on %v", s2)
	}
	if g.At(s1) != p1 {
		t.Errorf("After revert, %v = %v, want original %v", s1, g.At(s1), p1)
	}
	if !g.IsEmpty(s2) {
		t.Errorf("After revert, %v should be empty again", s2)
	}
}

func TestWithTemporaryPlacementManyChangesFallsBackToHeap(t *testing.T) {
	var g grid.Grid
	changes := make([]grid.Placement, 6) // more than the 4-slot stack array
	for i := range changes {
		changes[i] = grid.Placement{
			Square: square.Square(i),
			Piece:  piece.New(piece.ID(i+1), piece.Pawn, force.White),
		}
	}

	grid.WithTemporaryPlacement(&g, changes, func(*grid.Grid) bool { return true })

	for _, c := range changes {
		if !g.IsEmpty(c.Square) {
			t.Errorf("square %v should have been reverted to empty", c.Square)
		}
	}
}

func TestFind(t *testing.T) {
	var g grid.Grid
	target := square.New(square.FileD, square.Rank5)
	g.Place(target, piece.New(3, piece.King, force.Black))

	found, ok := g.Find(func(p piece.Piece) bool {
		return p.Kind == piece.King
	})
	if !ok {
		t.Fatalf("Find: expected to find the king")
	}
	if found != target {
		t.Errorf("Find: got %v, want %v", found, target)
	}

	_, ok = g.Find(func(p piece.Piece) bool { return p.Kind == piece.Queen })
	if ok {
		t.Errorf("Find: expected no queen on the board")
	}
}
