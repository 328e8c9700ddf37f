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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"laptudirm.com/x/bughouse/pkg/lobby"
)

// newCheckPlayerNameCmd wraps lobby.ValidatePlayerName as a standalone
// check, the same validation Join runs on every incoming name.
func newCheckPlayerNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-player-name <name>...",
		Short: "Validate one or more player names against the lobby's naming rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var invalid int
			for _, name := range args {
				if err := lobby.ValidatePlayerName(name); err != nil {
					invalid++
					fmt.Fprintf(cmd.OutOrStdout(), "%q: invalid: %v\n", name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%q: ok\n", name)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d names failed validation", invalid, len(args))
			}
			return nil
		},
	}
}
