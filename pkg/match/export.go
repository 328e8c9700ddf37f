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
	"laptudirm.com/x/bughouse/pkg/bughouse"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/notation"
)

// resultString renders g's outcome as the standard PGN/BPGN result
// token, from board's point of view.
func resultString(g *bughouse.Game, board envoy.Board) string {
	status := g.Status
	if status.IsActive() {
		return "*"
	}
	if status.Kind == bughouse.Draw {
		return "1/2-1/2"
	}
	white := bughouse.TeamOf(envoy.Envoy{Board: board, Force: force.White})
	if status.Winner == white {
		return "1-0"
	}
	return "0-1"
}

// summarize builds a notation.GameSummary from the match's current (or
// most recently finished) game.
func (s *State) summarize() (notation.GameSummary, error) {
	if s.Game == nil {
		return notation.GameSummary{}, gameerror.New(gameerror.GameOver, "no game to export")
	}
	g := s.Game

	var names [envoy.BoardN][force.N]string
	var startFEN [envoy.BoardN]string
	for b := envoy.Board(0); int(b) < envoy.BoardN; b++ {
		names[b] = g.Board(b).Names()
		startFEN[b] = notation.StartingFEN(g.StartGrid)
	}

	termination := "Unterminated"
	if !g.Status.IsActive() {
		termination = g.Status.Reason.String()
	}

	return notation.GameSummary{
		Round:       s.Round,
		PlayerNames: names,
		TimeControl: s.Rules.TimeControl,
		StartingFEN: startFEN,
		Result:      resultString(g, envoy.A),
		Termination: termination,
		Log:         g.Log,
	}, nil
}

// ExportFormat mirrors event.ExportFormat without importing pkg/event,
// which itself depends on pkg/match's sibling packages; callers
// translate at the wire boundary.
type ExportFormat int

const (
	Bpgn ExportFormat = iota
	PgnPair
)

// Export renders the current game as format, for RequestExport (spec
// §4.5 RequestExport, §6 GameExportReady).
func (s *State) Export(format ExportFormat) (string, error) {
	summary, err := s.summarize()
	if err != nil {
		return "", err
	}
	nf := notation.Bpgn
	if format == PgnPair {
		nf = notation.PgnPair
	}
	return notation.ExportBughouse(nf, summary, notation.Timestamp), nil
}
