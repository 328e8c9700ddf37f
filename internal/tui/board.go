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

package tui

import (
	"fmt"
	"strings"
	"time"

	"laptudirm.com/x/bughouse/pkg/altered"
	"laptudirm.com/x/bughouse/pkg/clock"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

// renderBoard renders board b of game as an 8-rank grid with fog-of-war
// squares blanked and the latest turn highlighted, for display inside a
// widgets.Paragraph - this is read-only, there is no square selection or
// input routing here, that lives in the event loop that drives drags
// against pkg/altered directly.
func renderBoard(a *altered.AlteredGame, board envoy.Board, now time.Time) string {
	g := a.LocalGame()
	b := g.Board(board)

	fog := map[square.Square]bool{}
	for _, s := range a.FogOfWarArea(board) {
		fog[s] = true
	}
	highlight := map[square.Square]bool{}
	for _, h := range a.TurnHighlights() {
		if h.Board == board {
			highlight[h.Square] = true
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "Board %c\n", 'A'+byte(board))
	for rank := square.Rank8; ; rank-- {
		out.WriteString(rankLabel(rank))
		for file := square.FileA; file < square.FileN; file++ {
			s := square.New(file, rank)
			out.WriteString(" ")
			out.WriteString(squareGlyph(b.Grid.At(s), fog[s], highlight[s]))
		}
		out.WriteString("\n")
		if rank == square.Rank1 {
			break
		}
	}
	out.WriteString("   a  b  c  d  e  f  g  h\n\n")

	out.WriteString(renderReserve(b.Reserve[force.White], force.White))
	out.WriteString(renderReserve(b.Reserve[force.Black], force.Black))
	out.WriteString(renderClocks(b.Clock, now))
	return out.String()
}

func rankLabel(r square.Rank) string {
	return fmt.Sprintf("%d ", int(r)+1)
}

func squareGlyph(p piece.Piece, fogged, lit bool) string {
	switch {
	case fogged:
		return "[?](fg:black,bg:blue)"
	case p.IsZero():
		if lit {
			return "[.](bg:yellow)"
		}
		return "."
	case lit:
		return fmt.Sprintf("[%s](bg:yellow)", p.String())
	default:
		return p.String()
	}
}

func renderReserve(r map[piece.Kind]int, f force.Force) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s reserve:", f)
	for k := piece.Pawn; k < piece.KindN; k++ {
		if n := r[k]; n > 0 {
			fmt.Fprintf(&b, " %s×%d", k, n)
		}
	}
	b.WriteString("\n")
	return b.String()
}

func renderClocks(c *clock.Clock, now time.Time) string {
	white := c.TimeLeft(force.White, now, clock.Approximate)
	black := c.TimeLeft(force.Black, now, clock.Approximate)
	return fmt.Sprintf("White %s  Black %s\n", fmtDuration(white), fmtDuration(black))
}

func fmtDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d", m, s)
}
