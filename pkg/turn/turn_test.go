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

package turn_test

import (
	"testing"

	"laptudirm.com/x/bughouse/pkg/castling"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
	"laptudirm.com/x/bughouse/pkg/turn"
)

func TestDestinationByKind(t *testing.T) {
	move := turn.NewMove(square.New(square.FileE, square.Rank2), square.New(square.FileE, square.Rank4))
	if got, want := move.Destination(), square.New(square.FileE, square.Rank4); got != want {
		t.Errorf("Move.Destination() = %v, want %v", got, want)
	}

	drop := turn.NewDrop(piece.NoKind, square.New(square.FileF, square.Rank3))
	if got, want := drop.Destination(), square.New(square.FileF, square.Rank3); got != want {
		t.Errorf("Drop.Destination() = %v, want %v", got, want)
	}

	castle := turn.NewCastle(castling.ASide)
	if got := castle.Destination(); got != square.None {
		t.Errorf("Castle.Destination() = %v, want square.None", got)
	}
}

func TestIndexString(t *testing.T) {
	idx := turn.Index{Number: 7, Force: force.White}
	if got, want := idx.String(), "00000007-w"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	duck := turn.Index{Number: 7, Force: force.Black, Duck: true}
	if got, want := duck.String(), "00000007-xd"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIndexLess(t *testing.T) {
	a := turn.Index{Number: 1}
	b := turn.Index{Number: 2}
	if !a.Less(b) {
		t.Errorf("Index{1}.Less(Index{2}) = false, want true")
	}
	if b.Less(a) {
		t.Errorf("Index{2}.Less(Index{1}) = true, want false")
	}
}
