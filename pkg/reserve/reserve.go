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

// Package reserve implements the per-force pool of droppable pieces a
// bughouse board holds: the product of captures relayed from the
// partner board.
package reserve

import "laptudirm.com/x/bughouse/pkg/piece"

// Reserve counts, for a single force, how many of each piece kind are
// available to drop. Counts are never negative; Take panics if asked to
// remove more than is held, since that always indicates a caller bug
// (drop legality must be checked before Take, not after).
type Reserve map[piece.Kind]int

// New returns an empty reserve.
func New() Reserve {
	return make(Reserve)
}

// Add increments the count of k by one, as happens when a capture is
// relayed from the partner board.
func (r Reserve) Add(k piece.Kind) {
	r[k]++
}

// Take decrements the count of k by one. Panics if the reserve does not
// hold k; callers must have already verified availability.
func (r Reserve) Take(k piece.Kind) {
	if r[k] <= 0 {
		panic("reserve: take of unavailable piece kind")
	}
	r[k]--
}

// Count returns how many of kind k are available to drop.
func (r Reserve) Count(k piece.Kind) int {
	return r[k]
}

// Clone returns an independent copy of r, used when probing a
// hypothetical drop (e.g. to test drop-aggression legality) without
// mutating the board's real reserve.
func (r Reserve) Clone() Reserve {
	c := make(Reserve, len(r))
	for k, n := range r {
		c[k] = n
	}
	return c
}

// Total returns the sum of all piece counts held in the reserve.
func (r Reserve) Total() int {
	total := 0
	for _, n := range r {
		total += n
	}
	return total
}
