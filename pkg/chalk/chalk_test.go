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

package chalk_test

import (
	"testing"

	"laptudirm.com/x/bughouse/pkg/chalk"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/square"
)

func TestToggleAddsThenRemoves(t *testing.T) {
	c := chalk.New()
	mark := chalk.Mark{Kind: chalk.SquareHighlight, Square: square.New(square.FileE, square.Rank4)}

	c.Toggle("alice", envoy.A, mark)
	if got := c.For("alice", envoy.A); len(got) != 1 {
		t.Fatalf("after first Toggle, For = %v, want 1 mark", got)
	}

	c.Toggle("alice", envoy.A, mark)
	if got := c.For("alice", envoy.A); len(got) != 0 {
		t.Errorf("after second (identical) Toggle, For = %v, want none", got)
	}
}

func TestToggleIsPerPlayerAndBoard(t *testing.T) {
	c := chalk.New()
	mark := chalk.Mark{Kind: chalk.Arrow, From: square.New(square.FileE, square.Rank2), To: square.New(square.FileE, square.Rank4)}

	c.Toggle("alice", envoy.A, mark)
	c.Toggle("bob", envoy.A, mark)
	c.Toggle("alice", envoy.B, mark)

	if len(c.For("alice", envoy.A)) != 1 {
		t.Errorf("alice's board-A marks should be untouched by bob's or alice's board-B toggles")
	}
	if len(c.For("bob", envoy.A)) != 1 {
		t.Errorf("bob's board-A marks missing")
	}
	if len(c.For("alice", envoy.B)) != 1 {
		t.Errorf("alice's board-B marks missing")
	}
}

func TestClear(t *testing.T) {
	c := chalk.New()
	mark := chalk.Mark{Kind: chalk.SquareHighlight, Square: square.New(square.FileA, square.Rank1)}
	c.Toggle("alice", envoy.A, mark)

	c.Clear("alice", envoy.A)
	if got := c.For("alice", envoy.A); len(got) != 0 {
		t.Errorf("For after Clear = %v, want none", got)
	}
}

func TestClearAll(t *testing.T) {
	c := chalk.New()
	mark := chalk.Mark{Kind: chalk.SquareHighlight, Square: square.New(square.FileA, square.Rank1)}
	c.Toggle("alice", envoy.A, mark)
	c.Toggle("bob", envoy.B, mark)

	c.ClearAll()
	if len(c.All()) != 0 {
		t.Errorf("All after ClearAll should be empty")
	}
}

func TestNewFreehandLineTruncates(t *testing.T) {
	points := make([]square.Square, 20)
	for i := range points {
		points[i] = square.Square(i)
	}
	m := chalk.NewFreehandLine(points)
	if m.NumPoints != 8 {
		t.Errorf("NumPoints = %d, want 8 (fixed capacity)", m.NumPoints)
	}
}

func TestAllFlattensEveryPlayer(t *testing.T) {
	c := chalk.New()
	mark := chalk.Mark{Kind: chalk.SquareHighlight, Square: square.New(square.FileA, square.Rank1)}
	c.Toggle("alice", envoy.A, mark)
	c.Toggle("bob", envoy.B, mark)

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d snapshots, want 2", len(all))
	}
}
