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

	"laptudirm.com/x/bughouse/pkg/bughouse"
	"laptudirm.com/x/bughouse/pkg/chalk"
	"laptudirm.com/x/bughouse/pkg/chat"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/turn"
)

// MakeTurn resolves the envoy participantID controls on board and
// attempts input against the live game, always in Normal mode - the
// server never accepts preturns directly, since those are client-local
// speculation (spec §4.5 MakeTurn).
func (s *State) MakeTurn(participantID string, board envoy.Board, input turn.Input, now time.Time) (turn.Expanded, error) {
	if s.Game == nil || !s.Game.Status.IsActive() {
		return turn.Expanded{}, gameerror.Of(gameerror.GameOver)
	}

	e, ok := s.envoyFor(participantID, board)
	if !ok {
		return turn.Expanded{}, gameerror.Of(gameerror.NotPlayer)
	}

	rec, err := s.Game.TryTurn(e, input, turn.Normal, now)
	if err != nil {
		return turn.Expanded{}, err
	}
	turnsTotal.WithLabelValues(s.ID).Inc()

	if !s.Game.Status.IsActive() {
		s.finishGame(now)
	}
	return rec, nil
}

// envoyFor reports the envoy participantID controls on board, if any.
func (s *State) envoyFor(participantID string, board envoy.Board) (envoy.Envoy, bool) {
	for _, e := range s.envoysOf[participantID] {
		if e.Board == board {
			return e, true
		}
	}
	return envoy.Envoy{}, false
}

// CancelPreturn is a no-op: preturns never reach the server. The event
// is accepted anyway so a client that echoes pending-turn state through
// the server does not need a special case (spec §4.5 CancelPreturn).
func (s *State) CancelPreturn(participantID string, board envoy.Board) error {
	if _, ok := s.envoyFor(participantID, board); !ok {
		return gameerror.Of(gameerror.NotPlayer)
	}
	return nil
}

// UpdateChalkDrawing toggles mark on board for participantID (spec
// §4.5 UpdateChalkDrawing).
func (s *State) UpdateChalkDrawing(participantID string, board envoy.Board, mark chalk.Mark) {
	s.Chalk.Toggle(participantID, board, mark)
}

// ChatMessage posts text from participantID, addressed per recipient,
// and returns the stored message for broadcast (spec §4.5 ChatMessage).
// team is only meaningful when recipient == chat.Team; a non-player
// sender is only ever accepted for chat.All.
func (s *State) ChatMessage(participantID string, recipient chat.Recipient, team bughouse.Team, directTo, text string, now time.Time) (chat.Message, error) {
	p, ok := s.Participants[participantID]
	if !ok {
		return chat.Message{}, gameerror.Of(gameerror.NotPlayer)
	}
	if recipient == chat.Team {
		if !p.Faction.IsPlayer() {
			return chat.Message{}, gameerror.Of(gameerror.NotPlayer)
		}
		team = p.Faction.Team
	}
	return s.Chat.Post(participantID, p.Name, recipient, team, directTo, text, now), nil
}
