// Copyright © 2022 Rak Laptudirm <raklaptudirm@gmail.com>
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

// Package piece implements bughouse piece identity: kind, owning force,
// how the piece came to be on the board, and a stable identity that
// survives captures, drops and promotions.
//
// Identity matters here in a way a plain chess engine never needs: a
// capture on one board must be traceable into a droppable reserve piece
// on the partner board, and a steal promotion must be able to name one
// specific piece living on the partner board.
package piece

import (
	"fmt"

	"laptudirm.com/x/bughouse/pkg/force"
)

// Kind is the type of a chess (or fairy) piece.
type Kind uint8

// constants representing piece kinds, including the fairy pieces used by
// the Cardinal/Empress/Amazon and Duck-chess variants.
const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	Cardinal // Bishop + Knight
	Empress  // Rook + Knight
	Amazon   // Queen + Knight
	Duck     // Duck-chess neutral blocker

	KindN
)

var kindLetters = [...]byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K', 'C', 'E', 'A', '@'}

// String returns the single uppercase letter used in algebraic move text
// and drop notation for the kind ("@" stands in for the duck, which has
// no piece letter of its own).
func (k Kind) String() string {
	if int(k) >= len(kindLetters) {
		return "?"
	}
	return string(kindLetters[k])
}

// KindFromLetter parses a single uppercase piece letter, as used in
// disambiguated algebraic notation ("Nbd2") and drops ("P@e4").
func KindFromLetter(b byte) (Kind, bool) {
	for k, l := range kindLetters {
		if l == b && k != 0 {
			return Kind(k), true
		}
	}
	return NoKind, false
}

// IsFairy reports whether k is only legal under Rules.FairyPieces.
func (k Kind) IsFairy() bool {
	return k == Cardinal || k == Empress || k == Amazon
}

// IsSlider reports whether k moves along open lines (diagonal, straight,
// or both), the way Bishop/Rook/Queen and their fairy combinations do.
func (k Kind) IsSlider() bool {
	switch k {
	case Bishop, Rook, Queen, Cardinal, Empress, Amazon:
		return true
	default:
		return false
	}
}

// Origin records how a piece came to occupy its current square. It lets
// BughouseGame recover a captured piece's *original* kind (a promoted
// queen reverts to a pawn in the partner's reserve) and lets Koedem
// recognize a dropped king as distinct from an innate one.
type Origin uint8

const (
	Innate Origin = iota
	Promoted
	Dropped
	Combined // Koedem-only: a king combined from captured royal material
)

func (o Origin) String() string {
	switch o {
	case Innate:
		return "innate"
	case Promoted:
		return "promoted"
	case Dropped:
		return "dropped"
	case Combined:
		return "combined"
	default:
		return "invalid"
	}
}

// ID is a per-game-unique piece identity. Reserve pieces, once dropped,
// keep the ID they had in the reserve; promoted pieces keep the pawn's
// ID. IDs let a steal promotion name "the piece that is now on e8's
// partner-board counterpart" unambiguously.
type ID uint32

// Piece is a single chess (or fairy) piece together with everything
// needed to route it through a bughouse game: its kind, its force, how
// it got here, and which piece (by original kind) it will revert to if
// captured.
type Piece struct {
	ID         ID
	Kind       Kind
	Force      force.Force
	Origin     Origin
	OriginKind Kind // the kind a captured/promoted piece reverts to in reserve
}

// Zero is the absence of a piece on a square.
var Zero = Piece{}

// New creates an innate piece of the given kind and force.
func New(id ID, k Kind, f force.Force) Piece {
	return Piece{ID: id, Kind: k, Force: f, Origin: Innate, OriginKind: k}
}

// NewDropped creates a piece materializing from a reserve drop. A
// dropped piece's OriginKind equals its own Kind: it cannot already be a
// promoted piece, since reserves only ever hold base kinds (or, under
// Koedem, King).
func NewDropped(id ID, k Kind, f force.Force) Piece {
	return Piece{ID: id, Kind: k, Force: f, Origin: Dropped, OriginKind: k}
}

// Promoted returns a copy of p promoted in place to the given kind,
// keeping p's ID and OriginKind (normally Pawn) so a later capture can
// still recover the original reserve-eligible kind.
func (p Piece) Promoted(to Kind) Piece {
	p.Kind = to
	p.Origin = Promoted
	return p
}

// IsZero reports whether p represents an empty square.
func (p Piece) IsZero() bool {
	return p.Kind == NoKind
}

// String renders p using the standard uppercase-white/lowercase-black
// convention used throughout FEN and algebraic notation.
func (p Piece) String() string {
	if p.IsZero() {
		return " "
	}
	s := p.Kind.String()
	if p.Force == force.Black {
		return string(toLower(s[0]))
	}
	return s
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func (p Piece) GoString() string {
	return fmt.Sprintf("Piece{ID:%d Kind:%s Force:%s Origin:%s}", p.ID, p.Kind, p.Force, p.Origin)
}
