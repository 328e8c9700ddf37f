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

// Package chalk implements per-player, per-board annotation drawings
// with toggle semantics (spec §3 Chalk drawing, §4.5 UpdateChalkDrawing,
// C9).
package chalk

import (
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/square"
)

// MarkKind discriminates the variants of Mark.
type MarkKind int

const (
	Arrow MarkKind = iota
	FreehandLine
	SquareHighlight
)

// Mark is a single chalk annotation. Only the fields relevant to Kind
// are populated; Mark is comparable so Toggle can test for an existing
// identical mark with ==.
type Mark struct {
	Kind MarkKind

	// Arrow
	From, To square.Square

	// SquareHighlight
	Square square.Square

	// FreehandLine - stored as a short fixed-capacity path since Mark
	// must stay comparable (==) for the toggle rule below; points
	// beyond the capacity are dropped rather than growing a slice.
	Points    [8]square.Square
	NumPoints int
}

// NewFreehandLine builds a FreehandLine mark from points, truncated to
// the fixed capacity above.
func NewFreehandLine(points []square.Square) Mark {
	var m Mark
	m.Kind = FreehandLine
	n := len(points)
	if n > len(m.Points) {
		n = len(m.Points)
	}
	copy(m.Points[:], points[:n])
	m.NumPoints = n
	return m
}

// key identifies one player's drawing surface on one board.
type key struct {
	Player string
	Board  envoy.Board
}

// Chalkboard holds every player's chalk marks, per board (spec §3
// Chalk drawing).
type Chalkboard struct {
	marks map[key][]Mark
}

// New returns an empty Chalkboard.
func New() *Chalkboard {
	return &Chalkboard{marks: make(map[key][]Mark)}
}

// Toggle adds mark to player's drawing on board, or removes it if an
// identical mark is already present (spec §3 "Toggle semantics: adding
// an identical mark removes the existing one").
func (c *Chalkboard) Toggle(player string, board envoy.Board, mark Mark) {
	k := key{Player: player, Board: board}
	marks := c.marks[k]
	for i, m := range marks {
		if m == mark {
			c.marks[k] = append(marks[:i], marks[i+1:]...)
			return
		}
	}
	c.marks[k] = append(marks, mark)
}

// Clear removes every mark player has drawn on board.
func (c *Chalkboard) Clear(player string, board envoy.Board) {
	delete(c.marks, key{Player: player, Board: board})
}

// ClearAll removes every mark in the match, used when a new game
// starts (spec §4 Chalkboard lifecycle is implicitly per-game).
func (c *Chalkboard) ClearAll() {
	c.marks = make(map[key][]Mark)
}

// For returns player's marks on board.
func (c *Chalkboard) For(player string, board envoy.Board) []Mark {
	return c.marks[key{Player: player, Board: board}]
}

// Snapshot is a flattened, broadcast-ready view of the whole
// chalkboard.
type Snapshot struct {
	Player string
	Board  envoy.Board
	Marks  []Mark
}

// All returns every player's drawings, for ChalkboardUpdated broadcast
// (spec §6).
func (c *Chalkboard) All() []Snapshot {
	out := make([]Snapshot, 0, len(c.marks))
	for k, marks := range c.marks {
		out = append(out, Snapshot{Player: k.Player, Board: k.Board, Marks: marks})
	}
	return out
}
