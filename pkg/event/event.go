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

// Package event defines the wire-level tagged union a match server and
// its clients exchange (spec §6 External interfaces, C12). Every
// event type below implements ClientEvent or ServerEvent so a
// transport can type-switch on the concrete value; the json tag on
// each field is what a codec (encoding/json or otherwise) puts on the
// wire, keyed by the Go type name via a small envelope in
// pkg/registry's caller.
package event

import (
	"time"

	"laptudirm.com/x/bughouse/pkg/bughouse"
	"laptudirm.com/x/bughouse/pkg/chalk"
	"laptudirm.com/x/bughouse/pkg/chat"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/lobby"
	"laptudirm.com/x/bughouse/pkg/rules"
	"laptudirm.com/x/bughouse/pkg/turn"
)

// ClientEvent is implemented by every Client→Server event.
type ClientEvent interface{ clientEvent() }

// ServerEvent is implemented by every Server→Client event.
type ServerEvent interface{ serverEvent() }

// --- Client → Server ---

type NewMatch struct {
	Rules      rules.Rules
	PlayerName string
}

type Join struct {
	MatchID    string
	PlayerName string
}

type HotReconnect struct {
	MatchID      string
	ParticipantID string
	SessionToken string
}

type SetFaction struct {
	Faction lobby.Faction
}

// NextBoard requests to be dealt into the next game (e.g. after
// sitting out a round).
type NextBoard struct{}

type MakeTurn struct {
	Board envoy.Board
	Input turn.Input
}

type CancelPreturn struct {
	Board envoy.Board
}

type ClaimVictory struct{}
type Resign struct{}

type SetReady struct {
	Ready bool
}

type LeaveMatch struct{}
type LeaveServer struct{}

type UpdateChalkDrawing struct {
	Board envoy.Board
	Mark  chalk.Mark
}

type SendChatMessage struct {
	LocalID   int
	Recipient chat.Recipient
	Team      bughouse.Team
	DirectTo  string
	Text      string
}

// ExportFormat enumerates the RequestExport formats (spec §6 BPGN
// export format).
type ExportFormat int

const (
	Bpgn ExportFormat = iota
	PgnPair
)

type RequestExport struct {
	Format ExportFormat
}

type ReportPerformance struct {
	Latencies map[string]time.Duration
}

type ReportError struct {
	Message string
}

type Ping struct {
	Payload int64
}

func (NewMatch) clientEvent()           {}
func (Join) clientEvent()               {}
func (HotReconnect) clientEvent()       {}
func (SetFaction) clientEvent()         {}
func (NextBoard) clientEvent()          {}
func (MakeTurn) clientEvent()           {}
func (CancelPreturn) clientEvent()      {}
func (ClaimVictory) clientEvent()       {}
func (Resign) clientEvent()             {}
func (SetReady) clientEvent()           {}
func (LeaveMatch) clientEvent()         {}
func (LeaveServer) clientEvent()        {}
func (UpdateChalkDrawing) clientEvent() {}
func (SendChatMessage) clientEvent()    {}
func (RequestExport) clientEvent()      {}
func (ReportPerformance) clientEvent()  {}
func (ReportError) clientEvent()        {}
func (Ping) clientEvent()               {}

// --- Server → Client ---

// RejectionKind enumerates why a request was refused before any
// participant or game state could be touched (spec §6); it is
// deliberately distinct from gameerror.Kind, which covers errors
// raised once a participant already exists inside a match.
type RejectionKind string

const (
	NoSuchMatch                RejectionKind = "NoSuchMatch"
	PlayerAlreadyExists         RejectionKind = "PlayerAlreadyExists"
	InvalidPlayerName           RejectionKind = "InvalidPlayerName"
	JoinedInAnotherClient       RejectionKind = "JoinedInAnotherClient"
	NameClashWithRegisteredUser RejectionKind = "NameClashWithRegisteredUser"
	GuestInRatedMatch           RejectionKind = "GuestInRatedMatch"
	ShuttingDown                RejectionKind = "ShuttingDown"
	UnknownError                RejectionKind = "UnknownError"
)

type Rejection struct {
	Kind   RejectionKind
	Detail string
}

type MatchWelcome struct {
	MatchID      string
	Rules        rules.Rules
	SessionToken string // presented back in a future HotReconnect
}

type LobbyUpdated struct {
	Participants     []lobby.Participant
	CountdownElapsed *time.Duration
}

// GameStarted carries the turn log and any outstanding preturns only
// when it is sent as part of a reconnection catch-up (spec §6).
type GameStarted struct {
	StartingPosition [2]string // Shredder-FEN per board
	Players          [2][2]string
	Time             rules.TimeControl
	TurnLog          []turn.Expanded
	Preturns         []turn.Record
	Status           GameStatus
	Scores           Scores
}

type TurnsMade struct {
	Turns  []turn.Expanded
	Status GameStatus
	Scores Scores
}

type GameOver struct {
	Time   time.Time
	Status GameStatus
	Scores Scores
}

// GameStatus is the wire projection of bughouse.Status.
type GameStatus struct {
	Kind   string
	Winner string
	Reason string
}

// Scores is the wire projection of match.Scores.
type Scores struct {
	Red, Blue float64
}

type ChalkboardUpdated struct {
	Chalkboard []chalk.Snapshot
}

type ChatMessages struct {
	Messages         []chat.Message
	FirstNewMessageID int
}

type GameExportReady struct {
	Content string
}

type Pong struct {
	Payload int64
}

func (Rejection) serverEvent()         {}
func (MatchWelcome) serverEvent()      {}
func (LobbyUpdated) serverEvent()      {}
func (GameStarted) serverEvent()       {}
func (TurnsMade) serverEvent()         {}
func (GameOver) serverEvent()          {}
func (ChalkboardUpdated) serverEvent() {}
func (ChatMessages) serverEvent()      {}
func (GameExportReady) serverEvent()   {}
func (Pong) serverEvent()              {}
