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

// Package lobby implements the participant set and its validation
// rules against a match's Rules (spec §3 Participant, §4.6, C6):
// faction assignment, readiness, and the player-count/team-shape
// checks MatchState consults before starting a game.
package lobby

import (
	"errors"
	"fmt"
	"unicode"

	"laptudirm.com/x/bughouse/pkg/bughouse"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/rules"
)

// errInvalidPlayerName is wrapped by every error ValidatePlayerName
// returns, and IsInvalidName detects it. match.State.Join returns that
// error unchanged; nothing in this module turns it into an
// event.Rejection.
var errInvalidPlayerName = fmt.Errorf("lobby: invalid player name")

// FactionKind discriminates the variants of Faction.
type FactionKind int

const (
	FactionFixed FactionKind = iota
	FactionRandom
	FactionObserver
)

// Faction is a participant's team assignment (spec §3 Participant).
type Faction struct {
	Kind FactionKind
	Team bughouse.Team // meaningful only when Kind == FactionFixed
}

func Observer() Faction { return Faction{Kind: FactionObserver} }
func Random() Faction   { return Faction{Kind: FactionRandom} }
func Fixed(t bughouse.Team) Faction { return Faction{Kind: FactionFixed, Team: t} }

func (f Faction) IsPlayer() bool { return f.Kind != FactionObserver }

// Participant is one connected (or previously connected) match member
// (spec §3 Participant).
type Participant struct {
	ID          string
	Name        string
	Registered  bool
	Faction     Faction
	Ready       bool
	Online      bool
	GamesPlayed int

	// DoublePlay records a fixed-team player's request to control both
	// envoys of their team (spec §3 DoublePlayer, §4.6 "rated matches
	// forbid anyone playing two envoys"); meaningless for Random or
	// Observer participants.
	DoublePlay bool

	// SessionToken authenticates a HotReconnect{match_id, player_id,
	// session_token} request as genuinely belonging to this participant
	// (recovered from original_source/src/session.rs's reconnection
	// flow, spec §6).
	SessionToken string
}

// TotalEnvoysPerTeam is the number of board seats one bughouse team
// fills (one per board).
const TotalEnvoysPerTeam = 2

// nameMinLen/nameMaxLen bound a valid player name (recovered from
// original_source/src/check_player_name.rs).
const (
	nameMinLen = 3
	nameMaxLen = 20
)

// ValidatePlayerName checks name against the length and character
// rules the Join handler surfaces as InvalidPlayerName (spec §6).
func ValidatePlayerName(name string) error {
	if len(name) < nameMinLen || len(name) > nameMaxLen {
		return fmt.Errorf("%w: must be %d-%d characters", errInvalidPlayerName, nameMinLen, nameMaxLen)
	}
	for i, r := range name {
		if unicode.IsSpace(r) && (i == 0 || i == len(name)-1) {
			return fmt.Errorf("%w: may not start or end with whitespace", errInvalidPlayerName)
		}
		if !unicode.IsPrint(r) {
			return fmt.Errorf("%w: must be printable", errInvalidPlayerName)
		}
	}
	return nil
}

// IsInvalidName reports whether err originated from ValidatePlayerName.
func IsInvalidName(err error) bool {
	return errors.Is(err, errInvalidPlayerName)
}

// Warning is a non-fatal lobby condition surfaced to clients (spec
// §4.6 "warnings include 'need to double-play' and 'need to seat
// out'").
type Warning string

const (
	WarningNeedDoublePlay Warning = "need to double-play"
	WarningNeedSeatOut    Warning = "need to seat out"
)

// Validate checks participants against r, returning the first fatal
// problem (if any) and any non-fatal warnings (spec §4.6).
func Validate(r *rules.Rules, participants []Participant) (error, []Warning) {
	var players []Participant
	for _, p := range participants {
		if p.Faction.IsPlayer() {
			players = append(players, p)
		}
	}

	if len(players) < 2 {
		return gameerror.Of(gameerror.NotEnoughPlayers), nil
	}

	fixedCounts := map[bughouse.Team]int{}
	var randomCount int
	for _, p := range players {
		switch p.Faction.Kind {
		case FactionFixed:
			fixedCounts[p.Faction.Team]++
		case FactionRandom:
			randomCount++
		}
	}

	_, dynamic := AutoAssign(players)

	if !dynamic {
		if fixedCounts[bughouse.Red] == 0 || fixedCounts[bughouse.Blue] == 0 {
			return gameerror.Of(gameerror.EmptyTeam), nil
		}
	}

	if r.Rated {
		for _, p := range players {
			if p.DoublePlay {
				return gameerror.Of(gameerror.RatedDoublePlay), nil
			}
		}
	}

	var warnings []Warning
	maxSeats := 2 * TotalEnvoysPerTeam
	switch {
	case len(players) > maxSeats:
		if dynamic {
			return gameerror.New(gameerror.TooManyPlayersTotal, "at most %d players in a dynamic-team match", maxSeats), nil
		}
		warnings = append(warnings, WarningNeedSeatOut)
	case len(players) < maxSeats && !dynamic:
		warnings = append(warnings, WarningNeedDoublePlay)
	}

	return nil, warnings
}

// AutoAssign resolves Random-faction players into Fixed teams if a
// unique assignment exists that respects TotalEnvoysPerTeam for both
// teams; otherwise the match falls back to dynamic teams, reassigned
// fresh at every game (spec §4.6).
func AutoAssign(players []Participant) ([]Participant, bool) {
	fixedCounts := map[bughouse.Team]int{}
	var randoms []int
	out := make([]Participant, len(players))
	copy(out, players)
	for i, p := range out {
		if p.Faction.Kind == FactionFixed {
			fixedCounts[p.Faction.Team]++
		} else if p.Faction.Kind == FactionRandom {
			randoms = append(randoms, i)
		}
	}

	redNeed := TotalEnvoysPerTeam - fixedCounts[bughouse.Red]
	blueNeed := TotalEnvoysPerTeam - fixedCounts[bughouse.Blue]
	if redNeed < 0 || blueNeed < 0 {
		return out, true // over-full team: no sane unique assignment
	}
	if redNeed+blueNeed != len(randoms) {
		return out, true // dynamic: no exact unique completion
	}

	for i, idx := range randoms {
		if i < redNeed {
			out[idx].Faction = Fixed(bughouse.Red)
		} else {
			out[idx].Faction = Fixed(bughouse.Blue)
		}
	}
	return out, false
}

// String renders a faction for logging/debugging.
func (f Faction) String() string {
	switch f.Kind {
	case FactionFixed:
		return fmt.Sprintf("Fixed(%s)", f.Team)
	case FactionRandom:
		return "Random"
	default:
		return "Observer"
	}
}
