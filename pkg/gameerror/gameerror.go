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

// Package gameerror enumerates the typed errors turns, drags and
// participant validation can fail with (spec §7), so that a client can
// switch on Kind instead of matching error strings.
package gameerror

import "fmt"

// Kind is a stable, wire-safe identifier for one failure reason.
type Kind string

// Turn error kinds.
const (
	InvalidNotation               Kind = "InvalidNotation"
	AmbiguousNotation              Kind = "AmbiguousNotation"
	CaptureNotationRequiresCapture Kind = "CaptureNotationRequiresCapture"
	PieceMissing                   Kind = "PieceMissing"
	WrongTurnOrder                 Kind = "WrongTurnOrder"
	WrongTurnMode                  Kind = "WrongTurnMode"
	ImpossibleTrajectory           Kind = "ImpossibleTrajectory"
	PathBlocked                    Kind = "PathBlocked"
	UnprotectedKing                Kind = "UnprotectedKing"
	CastlingPieceHasMoved          Kind = "CastlingPieceHasMoved"
	BadPromotion                   Kind = "BadPromotion"
	DropForbidden                  Kind = "DropForbidden"
	DropPieceMissing               Kind = "DropPieceMissing"
	DropPosition                   Kind = "DropPosition"
	DropBlocked                    Kind = "DropBlocked"
	DropAggression                 Kind = "DropAggression"
	StealTargetInvalid             Kind = "StealTargetInvalid"
	NotPlayer                      Kind = "NotPlayer"
	PreturnLimitReached            Kind = "PreturnLimitReached"
	GameOver                       Kind = "GameOver"
)

// Drag error kinds.
const (
	DragForbidden        Kind = "DragForbidden"
	DragAlreadyStarted   Kind = "DragAlreadyStarted"
	NoDragInProgress     Kind = "NoDragInProgress"
	DragNoLongerPossible Kind = "DragNoLongerPossible"
	PieceNotFound        Kind = "PieceNotFound"
	Cancelled            Kind = "Cancelled"
)

// Participant error kinds.
const (
	NotEnoughPlayers Kind = "NotEnoughPlayers"
	TooManyPlayersTotal Kind = "TooManyPlayersTotal"
	EmptyTeam           Kind = "EmptyTeam"
	RatedDoublePlay     Kind = "RatedDoublePlay"
	NotReady            Kind = "NotReady"

	// OpponentStillConnected is ClaimVictory's rejection when at least
	// one opposing player has not been connmon.PermanentlyLost for long
	// enough to concede the game to them.
	OpponentStillConnected Kind = "OpponentStillConnected"
)

// Error is a typed game-rule failure. It always carries a Kind so
// callers across the wire boundary can act on it programmatically, and
// a human-readable Detail for logs and inline client display.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is supports errors.Is(err, gameerror.New(kind, "")) style comparisons
// against a Kind regardless of Detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New constructs an *Error of the given kind with an optional formatted
// detail message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Of constructs a bare sentinel of kind, with no detail, suitable for
// use with errors.Is.
func Of(kind Kind) *Error {
	return &Error{Kind: kind}
}
