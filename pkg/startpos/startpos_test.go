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

package startpos_test

import (
	"math/rand"
	"testing"

	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
	"laptudirm.com/x/bughouse/pkg/startpos"
)

func TestClassicalBackRank(t *testing.T) {
	g := startpos.Classical()

	e1 := g.At(square.New(square.FileE, square.Rank1))
	if e1.Kind != piece.King {
		t.Errorf("e1 = %v, want King", e1.Kind)
	}
	a1 := g.At(square.New(square.FileA, square.Rank1))
	if a1.Kind != piece.Rook {
		t.Errorf("a1 = %v, want Rook", a1.Kind)
	}
	for file := square.FileA; file < square.FileN; file++ {
		if p := g.At(square.New(file, square.Rank2)); p.Kind != piece.Pawn {
			t.Errorf("rank 2 file %d = %v, want Pawn", file, p.Kind)
		}
		if p := g.At(square.New(file, square.Rank7)); p.Kind != piece.Pawn {
			t.Errorf("rank 7 file %d = %v, want Pawn", file, p.Kind)
		}
	}
}

func TestClassicalPieceIDsAreUnique(t *testing.T) {
	g := startpos.Classical()
	seen := map[piece.ID]bool{}
	for file := square.FileA; file < square.FileN; file++ {
		for _, rank := range []square.Rank{square.Rank1, square.Rank2, square.Rank7, square.Rank8} {
			p := g.At(square.New(file, rank))
			if seen[p.ID] {
				t.Fatalf("duplicate piece ID %d", p.ID)
			}
			seen[p.ID] = true
		}
	}
	if len(seen) != 32 {
		t.Errorf("saw %d distinct piece IDs, want 32", len(seen))
	}
}

func TestFischerRandomIsLegal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		g := startpos.FischerRandom(rng)

		var bishopFiles []square.File
		kingFile := square.FileA
		var rookFiles []square.File
		for file := square.FileA; file < square.FileN; file++ {
			switch g.At(square.New(file, square.Rank1)).Kind {
			case piece.Bishop:
				bishopFiles = append(bishopFiles, file)
			case piece.King:
				kingFile = file
			case piece.Rook:
				rookFiles = append(rookFiles, file)
			}
		}

		if len(bishopFiles) != 2 || bishopFiles[0]%2 == bishopFiles[1]%2 {
			t.Fatalf("bishops on files %v should occupy opposite-color squares", bishopFiles)
		}
		if len(rookFiles) != 2 {
			t.Fatalf("expected 2 rooks, got files %v", rookFiles)
		}
		if !(rookFiles[0] < kingFile && kingFile < rookFiles[1]) {
			t.Fatalf("king (file %d) should sit between the two rooks %v", kingFile, rookFiles)
		}
	}
}
