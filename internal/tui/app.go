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

// Package tui renders a thin, read-only terminal view of a running
// match, for the client subcommand's manual smoke-test harness - not a
// production client. It never mutates pkg/altered.AlteredGame itself;
// the caller wires turn/chat input through whatever transport talks to
// the server and only hands this package fresh state to draw.
package tui

import (
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"laptudirm.com/x/bughouse/pkg/altered"
	"laptudirm.com/x/bughouse/pkg/chat"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/lobby"
)

// Source supplies the live state App redraws on every tick; each
// function is called from the UI goroutine only, so callers must
// guard their own state if it's shared with a network goroutine.
type Source struct {
	// Game returns the current overlay, or nil while the match is still
	// in its lobby/countdown phase.
	Game func() *altered.AlteredGame
	Chat func() []chat.Message
	// Lobby returns the participant list and a human-readable countdown
	// string (empty outside PhaseCountdown).
	Lobby func() ([]lobby.Participant, string)
}

// App owns the termui widgets and the redraw loop.
type App struct {
	src Source

	boardA *widgets.Paragraph
	boardB *widgets.Paragraph
	chat   *widgets.Paragraph
	side   *widgets.Paragraph
}

// New lays out a fixed 4-pane terminal view: board A, board B, chat,
// and a lobby/status sidebar.
func New(src Source) *App {
	a := &App{
		src:    src,
		boardA: widgets.NewParagraph(),
		boardB: widgets.NewParagraph(),
		chat:   widgets.NewParagraph(),
		side:   widgets.NewParagraph(),
	}
	a.boardA.Title = "Board A"
	a.boardB.Title = "Board B"
	a.chat.Title = "Chat"
	a.side.Title = "Lobby"
	return a
}

// Run initializes the terminal, lays out panes to fit the current
// terminal size, and blocks redrawing on a timer until 'q' or Ctrl-C is
// pressed.
func (a *App) Run() error {
	if err := ui.Init(); err != nil {
		return err
	}
	defer ui.Close()

	a.layout()
	a.draw()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	events := ui.PollEvents()
	for {
		select {
		case e := <-events:
			switch e.ID {
			case "q", "<C-c>":
				return nil
			case "<Resize>":
				a.layout()
				a.draw()
			}
		case <-ticker.C:
			a.draw()
		}
	}
}

func (a *App) layout() {
	w, h := ui.TerminalDimensions()
	half := w / 2
	boardHeight := h * 2 / 3

	a.boardA.SetRect(0, 0, half, boardHeight)
	a.boardB.SetRect(half, 0, w, boardHeight)
	a.chat.SetRect(0, boardHeight, half, h)
	a.side.SetRect(half, boardHeight, w, h)
}

func (a *App) draw() {
	now := time.Now()
	if g := a.src.Game(); g != nil {
		a.boardA.Text = renderBoard(g, envoy.A, now)
		a.boardB.Text = renderBoard(g, envoy.B, now)
	} else {
		a.boardA.Text = "waiting for game to start..."
		a.boardB.Text = ""
	}

	width, _ := ui.TerminalDimensions()
	a.chat.Text = renderChat(a.src.Chat(), width/2)

	participants, countdown := a.src.Lobby()
	a.side.Text = renderLobby(participants, countdown)

	ui.Render(a.boardA, a.boardB, a.chat, a.side)
}
