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

// Package chat implements the match-wide chat log with recipient
// scoping (spec §3 Chat message, §4.5 ChatMessage, C9). Line layout -
// wrapping, coloring - is a client concern and lives in internal/tui;
// this package only owns authorship, scoping and retention.
package chat

import (
	"time"

	"laptudirm.com/x/bughouse/pkg/bughouse"
)

// Recipient discriminates who a Message is addressed to.
type Recipient int

const (
	// All is visible to every participant, including observers.
	All Recipient = iota
	// Team is visible only to the sender's teammates (and the sender).
	Team
	// Direct is visible only to the sender and one named participant.
	Direct
)

// Message is one posted chat line (spec §3 Chat message).
type Message struct {
	ID int // server-assigned, monotonically increasing

	SenderID   string
	SenderName string

	Recipient Recipient
	// Team is meaningful only when Recipient == Team.
	Team bughouse.Team
	// DirectTo is the recipient's participant ID, meaningful only when
	// Recipient == Direct.
	DirectTo string

	Text string
	Time time.Time
}

// visibleTo reports whether m should be delivered to a participant
// with the given id, who plays for team (ignored for observers, who
// pass recipientTeam = their own observing stance and still see All
// and any Direct message naming them explicitly).
func (m Message) visibleTo(id string, team bughouse.Team, isPlayer bool) bool {
	switch m.Recipient {
	case All:
		return true
	case Team:
		return isPlayer && team == m.Team
	case Direct:
		return id == m.SenderID || id == m.DirectTo
	default:
		return false
	}
}

// ServerChat is the authoritative, append-only chat log a match keeps
// (spec §3 Chat message, C9). It is not safe for concurrent use;
// callers (pkg/match) serialize access through the game loop.
type ServerChat struct {
	messages []Message
	nextID   int

	// Filter, if set, rewrites outgoing chat text before it is stored
	// (recovered from original_source/src/censor.rs, itself out of
	// scope here - see SPEC_FULL.md §4). Left nil by default; callers
	// that want profanity filtering or similar set it themselves.
	Filter func(string) string
}

// New returns an empty ServerChat.
func New() *ServerChat {
	return &ServerChat{}
}

// Post appends a new message from senderID/senderName, addressed per
// recipient/team/directTo, and returns the stored Message (with its
// assigned ID and Filter applied).
func (c *ServerChat) Post(senderID, senderName string, recipient Recipient, team bughouse.Team, directTo, text string, now time.Time) Message {
	if c.Filter != nil {
		text = c.Filter(text)
	}
	m := Message{
		ID:         c.nextID,
		SenderID:   senderID,
		SenderName: senderName,
		Recipient:  recipient,
		Team:       team,
		DirectTo:   directTo,
		Text:       text,
		Time:       now,
	}
	c.nextID++
	c.messages = append(c.messages, m)
	return m
}

// Since returns every message with ID >= firstID, in order, for
// replaying chat history to a (re)connecting client.
func (c *ServerChat) Since(firstID int) []Message {
	// messages is ID-ordered and IDs are dense from 0, so firstID is
	// also its own slice offset once clamped.
	if firstID < 0 {
		firstID = 0
	}
	if firstID >= len(c.messages) {
		return nil
	}
	return c.messages[firstID:]
}

// For returns the subset of the chat log visible to a participant with
// the given id, team and player/observer status, in order.
func (c *ServerChat) For(id string, team bughouse.Team, isPlayer bool) []Message {
	var out []Message
	for _, m := range c.messages {
		if m.visibleTo(id, team, isPlayer) {
			out = append(out, m)
		}
	}
	return out
}

// All returns the entire chat log.
func (c *ServerChat) All() []Message {
	return c.messages
}
