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

import "laptudirm.com/x/bughouse/pkg/bughouse"

// Scores accumulates match points across rounds: a victory is worth 2
// points, a draw splits 1-1 (spec §4.5 "update scores (2 for victory,
// 1-1 for draw..."). PerTeam is meaningful in fixed-team mode,
// PerPlayer in dynamic-team mode (recovered from
// original_source/src/scores.rs, which keeps both maps side by side
// for the same reason: the active mode decides which one is read).
type Scores struct {
	PerTeam   map[bughouse.Team]int
	PerPlayer map[string]int
}

// NewScores returns an empty Scores.
func NewScores() Scores {
	return Scores{
		PerTeam:   make(map[bughouse.Team]int),
		PerPlayer: make(map[string]int),
	}
}

// RecordOutcome folds a finished game's outcome into s: each winner
// gets 2 points, a draw gives 1 point each, scored both by team (dynamic ==
// false) and, always, by individual player name so a dynamic-team match
// can rank players across reshuffled rounds.
func (s Scores) RecordOutcome(status bughouse.Status, winners, losers []string, dynamic bool) {
	if status.IsActive() {
		return
	}

	if status.Kind == bughouse.Draw {
		for _, name := range append(append([]string{}, winners...), losers...) {
			s.PerPlayer[name]++
		}
		if !dynamic {
			s.PerTeam[bughouse.Red]++
			s.PerTeam[bughouse.Blue]++
		}
		return
	}

	for _, name := range winners {
		s.PerPlayer[name] += 2
	}
	if !dynamic {
		s.PerTeam[status.Winner] += 2
	}
}
