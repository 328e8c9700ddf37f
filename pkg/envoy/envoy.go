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

// Package envoy names the four piece-sets of a bughouse game: one of
// two boards crossed with one of two forces.
package envoy

import "laptudirm.com/x/bughouse/pkg/force"

// Board identifies one of the two boards of a bughouse game.
type Board int8

const (
	A Board = iota
	B

	BoardN = 2
)

func (b Board) String() string {
	if b == A {
		return "A"
	}
	return "B"
}

// Other returns the partner board.
func (b Board) Other() Board {
	if b == A {
		return B
	}
	return A
}

// ParseBoard parses a single board letter ("A" or "B").
func ParseBoard(s string) (Board, bool) {
	switch s {
	case "A", "a":
		return A, true
	case "B", "b":
		return B, true
	default:
		return A, false
	}
}

// Envoy is one of the four piece-sets in a bughouse game.
type Envoy struct {
	Board Board
	Force force.Force
}

// Partner returns the envoy on the other board with the opposite force
// - the teammate whose reserve receives this envoy's captures and vice
// versa (bughouse pairs A:White with B:Black, A:Black with B:White).
func (e Envoy) Partner() Envoy {
	return Envoy{Board: e.Board.Other(), Force: e.Force.Opposite()}
}

func (e Envoy) String() string {
	return e.Board.String() + ":" + e.Force.String()
}
