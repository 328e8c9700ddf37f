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

package match

import (
	"time"

	"laptudirm.com/x/bughouse/pkg/connmon"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/lobby"
)

// HotReconnect reattaches participantID to a running match after a
// transport drop, authenticating the request with the token handed out
// at the original Join so a stolen match/participant ID pair alone
// cannot hijack a seat (spec §4.5 HotReconnect, §6).
func (s *State) HotReconnect(participantID, sessionToken string, now time.Time) (*lobby.Participant, error) {
	p, ok := s.Participants[participantID]
	if !ok {
		return nil, gameerror.Of(gameerror.NotPlayer)
	}
	if p.SessionToken == "" || p.SessionToken != sessionToken {
		return nil, gameerror.New(gameerror.NotPlayer, "session token mismatch")
	}

	p.Online = true
	if mon, ok := s.Monitors[participantID]; ok {
		mon.Reconnect(now)
	} else {
		s.Monitors[participantID] = connmon.New(now)
	}

	s.Log.Infow("participant reconnected", "match", s.ID, "participant", participantID)
	return p, nil
}

// ClaimVictory awards the game to participantID's team because every
// opposing player has gone connmon.PermanentlyLost, letting a match
// resolve without waiting out a dropped opponent indefinitely (spec
// §4.5 ClaimVictory).
func (s *State) ClaimVictory(participantID string, now time.Time) error {
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

	claimant := p.Faction.Team
	opponent := claimant.Other()
	for id, opp := range s.Participants {
		if !opp.Faction.IsPlayer() || opp.Faction.Team != opponent {
			continue
		}
		mon, ok := s.Monitors[id]
		if !ok || mon.Status(now) != connmon.PermanentlyLost {
			return gameerror.Of(gameerror.OpponentStillConnected)
		}
	}

	s.Game.Resign(opponent, now)
	s.finishGame(now)
	return nil
}

// NextBoard queues an observer to be dealt a seat in the next game,
// turning them into a Random-faction player so the usual auto-assign
// and board-assignment logic picks them up at the next StartGame (spec
// §4.5 NextBoard).
func (s *State) NextBoard(participantID string) error {
	p, ok := s.Participants[participantID]
	if !ok {
		return gameerror.Of(gameerror.NotPlayer)
	}
	if p.Faction.Kind != lobby.FactionObserver {
		return nil
	}
	p.Faction = lobby.Random()
	return nil
}
