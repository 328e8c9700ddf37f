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

	"laptudirm.com/x/bughouse/pkg/lobby"
)

// renderLobby lists participants and their faction/ready state, one
// line each, for display while a match is in PhaseLobby/PhaseCountdown.
func renderLobby(participants []lobby.Participant, countdown string) string {
	var b strings.Builder
	if countdown != "" {
		fmt.Fprintf(&b, "Starting in %s\n\n", countdown)
	}
	for _, p := range participants {
		status := "[ ]"
		if p.Ready {
			status = "[x]"
		}
		online := " "
		if !p.Online {
			online = "(offline)"
		}
		fmt.Fprintf(&b, "%s %-20s %-12s %s\n", status, p.Name, p.Faction, online)
	}
	return b.String()
}
