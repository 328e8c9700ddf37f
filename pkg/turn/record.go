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

package turn

import (
	"fmt"
	"time"

	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

// Index is a monotone key assigned to every committed turn so that
// lexicographic order of indices equals real-time play order across
// both boards of a game (spec §3, §8 property 4). Number is a single
// game-wide counter advanced once per committed turn (see
// bughouse.Game); the {w|x} letter and duck flag are carried for
// readability and for BPGN board-tag rendering, not for ordering -
// Number alone already totally orders the log.
type Index struct {
	Number int
	Force  force.Force
	Duck   bool
}

// String renders the index in the `{number:08}-{w|x}[d]` wire form.
func (i Index) String() string {
	s := fmt.Sprintf("%08d-%c", i.Number, i.Force.Letter())
	if i.Duck {
		s += "d"
	}
	return s
}

// Less reports whether i sorts before o; since String is zero-padded
// and Number dominates, this is equivalent to lexicographic order of
// the rendered strings.
func (i Index) Less(o Index) bool {
	return i.Number < o.Number
}

// Record is the raw (envoy, input, instant) triple logged the moment a
// turn is accepted, before legality resolution detail is attached.
type Record struct {
	Envoy   envoy.Envoy
	Input   Input
	Instant time.Time
}

// Expanded is a Record enriched with everything resolution produced:
// the concrete Turn, its algebraic rendering, captures, castling
// relocations and a post-turn grid snapshot. Used for replay,
// reconnection and BPGN export.
type Expanded struct {
	Record

	Turn      Turn
	Algebraic string
	Index     Index

	Captures  []piece.Piece // pieces removed from the board by this turn
	Relocated []Relocation  // non-primary piece movements (castling's rook)

	ClockRemaining time.Duration // mover's remaining time immediately after the turn
}

// Relocation records a piece moved as a side effect of the primary
// turn, such as a rook sliding during castling.
type Relocation struct {
	Piece    piece.Piece
	From, To square.Square
}
