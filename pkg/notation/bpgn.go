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

package notation

import (
	"fmt"
	"strings"
	"time"

	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/rules"
	"laptudirm.com/x/bughouse/pkg/turn"
)

// ExportFormat selects between the two supported export documents
// (spec §4.7, §6 RequestExport).
type ExportFormat int

const (
	Bpgn ExportFormat = iota
	PgnPair
)

// TimeFormat controls whether BPGN half-moves carry a remaining-seconds
// annotation, matching process-bpgn's --remove-timestamps flag.
type TimeFormat int

const (
	Timestamp TimeFormat = iota
	NoTime
)

// GameSummary is everything the exporter needs about a finished (or
// in-progress) game; it deliberately does not depend on pkg/bughouse so
// that package can depend on pkg/notation instead of the reverse.
type GameSummary struct {
	Round       int
	PlayerNames [envoy.BoardN][force.N]string
	TimeControl rules.TimeControl
	// StartingFEN holds a Shredder-FEN for each board's initial
	// position, identical for both boards unless the boards started
	// from different setups (never true today, but kept per-board for
	// forward compatibility with asymmetric variants).
	StartingFEN [envoy.BoardN]string
	Result      string // "1-0", "0-1", "1/2-1/2" or "*"
	Termination string
	// Log holds every committed turn across both boards, already in
	// Index order so interleaving reproduces real-time play order.
	Log []turn.Expanded
}

// lineWidth is the wrap column bpgn.rs wraps export documents at.
const lineWidth = 80

// textDocument accumulates whitespace-wrapped "words" (each an entire
// move token, never split mid-token) the way the reference exporter
// does, so line breaks land between moves rather than inside one.
type textDocument struct {
	b           strings.Builder
	lastLineLen int
}

func (d *textDocument) pushWord(word string) {
	switch {
	case d.lastLineLen == 0:
	case d.lastLineLen+len(word)+1 <= lineWidth:
		d.b.WriteByte(' ')
		d.lastLineLen++
	default:
		d.b.WriteByte('\n')
		d.lastLineLen = 0
	}
	d.b.WriteString(word)
	d.lastLineLen += len(word)
}

func (d *textDocument) render() string {
	if d.lastLineLen > 0 {
		return d.b.String() + "\n"
	}
	return d.b.String()
}

func ceilSeconds(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	secs := d / time.Second
	if d%time.Second != 0 {
		secs++
	}
	return int64(secs)
}

// playerNotation renders an envoy as the single-letter board tag used
// in BPGN: board A is "A"/"a" for White/Black, board B is "B"/"b".
func playerNotation(e envoy.Envoy) string {
	letter := byte('A')
	if e.Board == envoy.B {
		letter = 'B'
	}
	if e.Force == force.Black {
		letter += 'a' - 'A'
	}
	return string(letter)
}

// ExportBughouse renders g as either a BPGN document or a pair of plain
// PGN documents (one per board), per format.
func ExportBughouse(format ExportFormat, g GameSummary, timeFmt TimeFormat) string {
	switch format {
	case PgnPair:
		return exportPgnPair(g)
	default:
		return exportBpgn(g, timeFmt)
	}
}

func exportPgnPair(g GameSummary) string {
	var docs [envoy.BoardN]string
	for b := envoy.Board(0); b < envoy.BoardN; b++ {
		docs[b] = exportBoardPgn(g, b)
	}
	return docs[envoy.A] + "\n" + docs[envoy.B]
}

func exportBoardPgn(g GameSummary, board envoy.Board) string {
	header := fmt.Sprintf(
		"[Event \"Bughouse Match\"]\n"+
			"[Round \"%d-%s\"]\n"+
			"[White \"%s\"]\n"+
			"[Black \"%s\"]\n"+
			"[TimeControl \"%s\"]\n"+
			"[SetUp \"1\"]\n"+
			"[FEN \"%s\"]\n"+
			"[Result \"%s\"]\n",
		g.Round, board.String(),
		g.PlayerNames[board][force.White],
		g.PlayerNames[board][force.Black],
		timeControlString(g.TimeControl),
		g.StartingFEN[board],
		g.Result,
	)

	var doc textDocument
	fullMove := 1
	var pending []string
	for _, rec := range g.Log {
		if rec.Envoy.Board != board {
			continue
		}
		pending = append(pending, rec.Algebraic)
		if rec.Envoy.Force == force.Black || len(pending) == 2 {
			doc.pushWord(fmt.Sprintf("%d. %s", fullMove, strings.Join(pending, " ")))
			fullMove++
			pending = pending[:0]
		}
	}
	if len(pending) > 0 {
		doc.pushWord(fmt.Sprintf("%d. %s", fullMove, strings.Join(pending, " ")))
	}
	return header + doc.render()
}

func exportBpgn(g GameSummary, timeFmt TimeFormat) string {
	header := fmt.Sprintf(
		"[Event \"Bughouse Match\"]\n"+
			"[Round \"%d\"]\n"+
			"[WhiteA \"%s\"]\n"+
			"[BlackA \"%s\"]\n"+
			"[WhiteB \"%s\"]\n"+
			"[BlackB \"%s\"]\n"+
			"[TimeControl \"%s\"]\n"+
			"[Variant \"Bughouse\"]\n"+
			"[SetUp \"1\"]\n"+
			"[FEN \"%s | %s\"]\n"+
			"[Result \"%s\"]\n"+
			"[Termination \"%s\"]\n",
		g.Round,
		g.PlayerNames[envoy.A][force.White], g.PlayerNames[envoy.A][force.Black],
		g.PlayerNames[envoy.B][force.White], g.PlayerNames[envoy.B][force.Black],
		timeControlString(g.TimeControl),
		g.StartingFEN[envoy.A], g.StartingFEN[envoy.B],
		g.Result, g.Termination,
	)

	var doc textDocument
	var fullMove [envoy.BoardN]int
	fullMove[envoy.A], fullMove[envoy.B] = 1, 1

	for _, rec := range g.Log {
		token := fmt.Sprintf("%d%s. %s", fullMove[rec.Envoy.Board], playerNotation(rec.Envoy), rec.Algebraic)
		if timeFmt == Timestamp {
			token = fmt.Sprintf("%s {%d}", token, ceilSeconds(rec.ClockRemaining))
		}
		if rec.Envoy.Force == force.Black {
			fullMove[rec.Envoy.Board]++
		}
		doc.pushWord(token)
	}

	return header + doc.render()
}

func timeControlString(tc rules.TimeControl) string {
	return fmt.Sprintf("%d", int64(tc.Starting/time.Second))
}
