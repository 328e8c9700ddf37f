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

// Package force declares the side-to-move/ownership enum shared by every
// board, piece and reserve in a bughouse game.
//
// Neutral exists for the Duck chess variant, where the duck belongs to
// neither force but still occupies a square.
package force

// Force represents which side a piece, reserve, or clock belongs to.
type Force int8

// constants representing the forces.
const (
	White Force = iota
	Black
	Neutral
)

// N is the number of real (non-neutral) forces.
const N = 2

// String converts a Force into its name ("White", "Black", "Neutral");
// Letter gives the single-letter form.
func (f Force) String() string {
	switch f {
	case White:
		return "White"
	case Black:
		return "Black"
	case Neutral:
		return "Neutral"
	default:
		return "Invalid"
	}
}

// Opposite returns the other real force. Calling it on Neutral panics:
// the duck has no opponent and callers must not ask for one.
func (f Force) Opposite() Force {
	switch f {
	case White:
		return Black
	case Black:
		return White
	default:
		panic("force: Opposite called on non-real force")
	}
}

// Letter is the short form used in turn-log indices (spec §3 TurnRecordExpanded)
// and BPGN board tags: 'w' for White, 'x' (not 'b') for Black, matching the
// original wire format's choice to avoid colliding with the board letter 'B'.
func (f Force) Letter() byte {
	switch f {
	case White:
		return 'w'
	case Black:
		return 'x'
	default:
		panic("force: Letter called on non-real force")
	}
}
