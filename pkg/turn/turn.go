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

// Package turn declares the value types a single ply of bughouse is
// expressed in: the resolved Turn itself, the user-level TurnInput it
// is resolved from, and the TurnMode it is attempted under (spec §3).
package turn

import (
	"laptudirm.com/x/bughouse/pkg/castling"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

// Kind discriminates the variants of Turn.
type Kind int

const (
	KindMove Kind = iota
	KindDrop
	KindCastle
	KindPlaceDuck
)

// PromotionKind discriminates how a pawn reaching the last rank is
// resolved.
type PromotionKind int

const (
	NoPromotion PromotionKind = iota
	PromotionUpgrade
	PromotionDiscard
	PromotionSteal
)

// Promotion describes a pawn's last-rank resolution.
type Promotion struct {
	Kind PromotionKind
	// UpgradeTo is the new piece kind, valid when Kind == PromotionUpgrade.
	UpgradeTo piece.Kind
	// StealSource is the partner-board square the promotion steals its
	// piece from, valid when Kind == PromotionSteal.
	StealSource square.Square
}

// Turn is the resolved, legality-checked representation of one ply. It
// is a sum type over Move/Drop/Castle/PlaceDuck, modeled as a tagged
// struct (rather than an interface) so that it stays a plain
// comparable, serializable value.
type Turn struct {
	Kind Kind

	// Move fields.
	From, To  square.Square
	Promotion *Promotion

	// Drop fields.
	DropKind piece.Kind
	DropTo   square.Square

	// Castle fields.
	Direction castling.Side
}

// NewMove builds a non-promoting Move turn.
func NewMove(from, to square.Square) Turn {
	return Turn{Kind: KindMove, From: from, To: to}
}

// NewPromotingMove builds a Move turn with the given promotion.
func NewPromotingMove(from, to square.Square, p Promotion) Turn {
	return Turn{Kind: KindMove, From: from, To: to, Promotion: &p}
}

// NewDrop builds a Drop turn.
func NewDrop(kind piece.Kind, to square.Square) Turn {
	return Turn{Kind: KindDrop, DropKind: kind, DropTo: to}
}

// NewCastle builds a Castle turn.
func NewCastle(dir castling.Side) Turn {
	return Turn{Kind: KindCastle, Direction: dir}
}

// NewPlaceDuck builds a PlaceDuck turn.
func NewPlaceDuck(to square.Square) Turn {
	return Turn{Kind: KindPlaceDuck, To: to}
}

// Destination returns the square a turn primarily affects: the target
// of a move, the drop square, or the duck's new square. Castling has no
// single destination and returns square.None.
func (t Turn) Destination() square.Square {
	switch t.Kind {
	case KindMove:
		return t.To
	case KindDrop:
		return t.DropTo
	case KindPlaceDuck:
		return t.To
	default:
		return square.None
	}
}

// Mode is the context a turn is being attempted in.
type Mode int

const (
	// Normal turns are the active side's turn at the current instant
	// and are fully validated, including path/attack checks.
	Normal Mode = iota
	// Preturn turns are speculatively entered while the opponent is to
	// move; castling path/attack checks are skipped (spec §4.2 step 6).
	Preturn
	// Virtual turns are engine exploration of hypothetical positions
	// and are never broadcast or logged.
	Virtual
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "Normal"
	case Preturn:
		return "Preturn"
	case Virtual:
		return "Virtual"
	default:
		return "Invalid"
	}
}

// InputKind discriminates the variants of Input.
type InputKind int

const (
	InputExplicit InputKind = iota
	InputAlgebraic
	InputDragDrop
)

// Input is the user-level expression of a turn before legality
// resolution. DragDrop is kept distinct from Explicit because it
// supports castling auto-detection from a king moving onto its own
// rook or two squares (spec §3).
type Input struct {
	Kind      InputKind
	Explicit  Turn
	Algebraic string
	DragDrop  Turn
}

// NewExplicitInput wraps an already-resolved Turn.
func NewExplicitInput(t Turn) Input {
	return Input{Kind: InputExplicit, Explicit: t}
}

// NewAlgebraicInput wraps algebraic move text.
func NewAlgebraicInput(s string) Input {
	return Input{Kind: InputAlgebraic, Algebraic: s}
}

// NewDragDropInput wraps a turn produced by a drag-and-drop gesture.
func NewDragDropInput(t Turn) Input {
	return Input{Kind: InputDragDrop, DragDrop: t}
}
