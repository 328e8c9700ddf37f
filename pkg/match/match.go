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

// Package match implements MatchState (spec §3, §4.5, C7): the
// per-match controller that owns the participant set, the current
// BughouseGame, chat and chalk substate, scores and the pre-game
// countdown, and dispatches every client-facing event against them.
// All mutation happens through its methods, which a single game-loop
// goroutine is expected to call serially (spec §5) - MatchState itself
// holds no lock.
package match

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"laptudirm.com/x/bughouse/pkg/bughouse"
	"laptudirm.com/x/bughouse/pkg/chalk"
	"laptudirm.com/x/bughouse/pkg/chat"
	"laptudirm.com/x/bughouse/pkg/connmon"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/lobby"
	"laptudirm.com/x/bughouse/pkg/rules"
	"laptudirm.com/x/bughouse/pkg/startpos"
)

// Phase is the match's coarse lifecycle state.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseCountdown
	PhaseGame
)

// CountdownDuration is how long SetReady's pre-game countdown runs once
// the participant set becomes valid (spec §4.5 "start the pre-game
// countdown").
const CountdownDuration = 5 * time.Second

// State is one running match: its rules, participants, current game
// and all substate a client's event can touch (spec §3 MatchState).
type State struct {
	ID    string
	Rules *rules.Rules

	Participants map[string]*lobby.Participant
	order        []string // join order, for stable default board assignment

	Monitors map[string]*connmon.Monitor

	Chat  *chat.ServerChat
	Chalk *chalk.Chalkboard
	Game  *bughouse.Game

	Round  int
	Scores Scores
	// dynamicTeams records whether the current lobby resolved to
	// dynamic (per-game) team assignment, per lobby.AutoAssign - scores
	// are then tallied per-player only, never per-team.
	dynamicTeams bool

	Phase            Phase
	CountdownEndsAt  time.Time

	// boardOf remembers each player's last board assignment, so repeat
	// rounds keep players on the same board when nothing forces a
	// reshuffle (spec §4.5 board assignment: "place the unknown
	// opposite" reads naturally as preferring the existing pairing).
	boardOf map[string]envoy.Board

	// envoysOf lists the envoy(s) a participant controls in the current
	// game - two for a double-play participant, one otherwise, none for
	// an observer.
	envoysOf map[string][]envoy.Envoy

	rng *rand.Rand

	Log *zap.SugaredLogger
}

// New creates an empty match in the lobby phase.
func New(id string, r *rules.Rules, rng *rand.Rand, log *zap.SugaredLogger) *State {
	return &State{
		ID:           id,
		Rules:        r,
		Participants: make(map[string]*lobby.Participant),
		Monitors:     make(map[string]*connmon.Monitor),
		Chat:         chat.New(),
		Chalk:        chalk.New(),
		Scores:       NewScores(),
		boardOf:      make(map[string]envoy.Board),
		envoysOf:     make(map[string][]envoy.Envoy),
		rng:          rng,
		Log:          log,
	}
}

// Join adds participantID/name as a new lobby participant, or
// reactivates an existing one reconnecting (spec §4.5 Join).
func (s *State) Join(participantID, name string, now time.Time) (*lobby.Participant, error) {
	if p, ok := s.Participants[participantID]; ok {
		p.Online = true
		s.Monitors[participantID] = connmon.New(now)
		return p, nil
	}

	if err := lobby.ValidatePlayerName(name); err != nil {
		return nil, err
	}
	for _, p := range s.Participants {
		if p.Online && p.Name == name {
			return nil, fmt.Errorf("match: name %q is already in use in this match", name)
		}
	}

	faction := lobby.Random()
	if s.dynamicTeams {
		faction = lobby.Observer()
	}

	p := &lobby.Participant{
		ID:           participantID,
		Name:         name,
		Online:       true,
		Faction:      faction,
		SessionToken: uuid.NewString(),
	}
	s.Participants[participantID] = p
	s.order = append(s.order, participantID)
	s.Monitors[participantID] = connmon.New(now)

	s.Log.Infow("participant joined", "match", s.ID, "participant", participantID, "name", name)
	return p, nil
}

// SetFaction updates a participant's faction, only while the match is
// not mid-game (spec §4.5 SetFaction).
func (s *State) SetFaction(participantID string, f lobby.Faction) error {
	p, ok := s.Participants[participantID]
	if !ok {
		return gameerror.Of(gameerror.NotPlayer)
	}
	if s.Phase == PhaseGame {
		return gameerror.New(gameerror.WrongTurnMode, "cannot change faction mid-game")
	}
	p.Faction = f
	p.Ready = false
	return nil
}

// SetReady records a participant's readiness and, if every player is
// now ready and the lobby validates, starts the pre-game countdown
// (spec §4.5 SetReady).
func (s *State) SetReady(participantID string, ready bool, now time.Time) error {
	p, ok := s.Participants[participantID]
	if !ok {
		return gameerror.Of(gameerror.NotPlayer)
	}
	p.Ready = ready
	if s.Phase != PhaseLobby {
		return nil
	}

	if !s.allPlayersReady() {
		return nil
	}
	if err, _ := lobby.Validate(s.Rules, s.participantSlice()); err != nil {
		return nil // not ready to start yet; no error surfaced to the toggling client
	}

	s.Phase = PhaseCountdown
	s.CountdownEndsAt = now.Add(CountdownDuration)
	return nil
}

func (s *State) allPlayersReady() bool {
	sawPlayer := false
	for _, p := range s.Participants {
		if !p.Faction.IsPlayer() || !p.Online {
			continue
		}
		sawPlayer = true
		if !p.Ready {
			return false
		}
	}
	return sawPlayer
}

func (s *State) participantSlice() []lobby.Participant {
	out := make([]lobby.Participant, 0, len(s.Participants))
	for _, id := range s.order {
		if p, ok := s.Participants[id]; ok && p.Online {
			out = append(out, *p)
		}
	}
	return out
}

// Tick advances the countdown (if any) and the current game's clocks,
// starting the game once the countdown elapses and reporting a
// just-finished game's end instant (spec §4.5 Tick).
func (s *State) Tick(now time.Time) (gameOver bool, at time.Time) {
	if s.Phase == PhaseCountdown && !now.Before(s.CountdownEndsAt) {
		s.StartGame(now)
	}
	if s.Game == nil {
		return false, time.Time{}
	}
	if at, ok := s.Game.TestFlag(now); ok {
		flagLatencySeconds.WithLabelValues(s.ID).Observe(now.Sub(at).Seconds())
		s.finishGame(now)
		return true, at
	}
	return false, time.Time{}
}

// StartGame resolves team/board assignment and begins a new game (spec
// §4.5 "Board assignment at game start").
func (s *State) StartGame(now time.Time) {
	players, dynamic := lobby.AutoAssign(s.participantSlice())
	s.dynamicTeams = dynamic

	var names [envoy.BoardN][force.N]string
	seats := s.assignBoards(players)
	s.envoysOf = make(map[string][]envoy.Envoy, len(seats))
	for _, seat := range seats {
		names[seat.board][seat.force] = seat.name
		s.boardOf[seat.id] = seat.board
		e := envoy.Envoy{Board: seat.board, Force: seat.force}
		s.envoysOf[seat.id] = append(s.envoysOf[seat.id], e)
	}

	grid := startpos.Classical()
	if s.Rules.FischerRandom {
		grid = startpos.FischerRandom(s.rng)
	}

	s.Game = bughouse.NewGame(s.Rules, names, grid)
	s.Game.Start(now)
	s.Chalk.ClearAll()
	s.Phase = PhaseGame
	s.Round++

	gamesStartedTotal.WithLabelValues(s.ID).Inc()
	s.Log.Infow("game started", "match", s.ID, "round", s.Round, "fischer_random", s.Rules.FischerRandom)
}

type seat struct {
	id    string
	name  string
	board envoy.Board
	force force.Force
	team  bughouse.Team
}

// assignBoards places each team's (up to two) players onto board A/B:
// a participant's own DoublePlay claims both boards for their team; a
// previously remembered board assignment is honored when present
// (spec §4.5's "place the unknown opposite" reading); any remaining
// ambiguity is broken uniformly at random.
func (s *State) assignBoards(players []lobby.Participant) []seat {
	var out []seat
	byTeam := map[bughouse.Team][]lobby.Participant{}
	for _, p := range players {
		if !p.Faction.IsPlayer() {
			continue
		}
		byTeam[p.Faction.Team] = append(byTeam[p.Faction.Team], p)
	}

	for _, team := range []bughouse.Team{bughouse.Red, bughouse.Blue} {
		members := byTeam[team]
		forceOf := forceOnBoard(team)
		switch len(members) {
		case 1:
			p := members[0]
			out = append(out,
				seat{id: p.ID, name: p.Name, board: envoy.A, force: forceOf(envoy.A), team: team},
				seat{id: p.ID, name: p.Name, board: envoy.B, force: forceOf(envoy.B), team: team},
			)
		case 2:
			a, b := members[0], members[1]
			if prev, ok := s.boardOf[a.ID]; ok {
				if prev == envoy.B {
					a, b = b, a
				}
			} else if s.rng.Intn(2) == 1 {
				a, b = b, a
			}
			out = append(out,
				seat{id: a.ID, name: a.Name, board: envoy.A, force: forceOf(envoy.A), team: team},
				seat{id: b.ID, name: b.Name, board: envoy.B, force: forceOf(envoy.B), team: team},
			)
		}
	}
	return out
}

// forceOnBoard returns the force team plays on a given board, the
// inverse of bughouse.TeamOf.
func forceOnBoard(team bughouse.Team) func(envoy.Board) force.Force {
	return func(b envoy.Board) force.Force {
		onA := b == envoy.A
		wantWhite := (team == bughouse.Red) == onA
		if wantWhite {
			return force.White
		}
		return force.Black
	}
}

func (s *State) finishGame(now time.Time) {
	status, winners, losers := s.Game.Outcome()
	s.Scores.RecordOutcome(status, winners, losers, s.dynamicTeams)
	s.Phase = PhaseLobby
	for _, p := range s.Participants {
		p.Ready = false
		p.GamesPlayed++
	}
	s.Log.Infow("game over", "match", s.ID, "round", s.Round, "status", status.Reason.String())
}

// Resign ends the current game by resignation of loser's team (spec
// §4.5 Resign).
func (s *State) Resign(participantID string, now time.Time) error {
	p, ok := s.Participants[participantID]
	if !ok {
		return gameerror.Of(gameerror.NotPlayer)
	}
	if s.Game == nil || !s.Game.Status.IsActive() {
		return gameerror.Of(gameerror.GameOver)
	}
	if !p.Faction.IsPlayer() {
		return gameerror.Of(gameerror.NotPlayer)
	}
	s.Game.Resign(p.Faction.Team, now)
	s.finishGame(now)
	return nil
}

// Leave marks a participant offline, removing them outright while the
// match is still in the lobby so they free up their seat, but keeping
// their envoy assignment during a game so they can reconnect (spec
// §4.5 Leave).
func (s *State) Leave(participantID string) {
	p, ok := s.Participants[participantID]
	if !ok {
		return
	}
	p.Online = false
	delete(s.Monitors, participantID)
	if s.Phase == PhaseLobby {
		delete(s.Participants, participantID)
		for i, id := range s.order {
			if id == participantID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}
