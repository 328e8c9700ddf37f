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
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"laptudirm.com/x/bughouse/pkg/bughouse"
	"laptudirm.com/x/bughouse/pkg/lobby"
	"laptudirm.com/x/bughouse/pkg/rules"
)

// newLoadTestCmd builds the "load-test" subcommand: spins up many
// matchServer-hosted match.States at once and ticks them all,
// reporting wall-clock per tick batch. It measures this process' own
// per-match bookkeeping cost, not a real server under network load
// (spec §1 Non-goals - the real load-testing harness is external).
func newLoadTestCmd() *cobra.Command {
	var matches int
	var ticks int

	cmd := &cobra.Command{
		Use:   "load-test",
		Short: "Tick many in-process matches at once and report timing",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger("error")
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			srv := newMatchServer(log)
			now := time.Now()

			for i := 0; i < matches; i++ {
				r := rules.Default()
				_, st := srv.NewMatch(r)
				for p := 0; p < 4; p++ {
					id := fmt.Sprintf("m%d-p%d", i, p)
					if _, err := st.Join(id, id, now); err != nil {
						return fmt.Errorf("load-test: seed match %d: %w", i, err)
					}
					team := teamFor(p)
					_ = st.SetFaction(id, lobby.Fixed(team))
					_ = st.SetReady(id, true, now)
				}
			}

			bar := progressbar.Default(int64(ticks), "load-test")
			start := time.Now()
			for i := 0; i < ticks; i++ {
				now = now.Add(100 * time.Millisecond)
				srv.tick(now)
				_ = bar.Add(1)
			}
			elapsed := time.Since(start)

			fmt.Fprintf(cmd.OutOrStdout(), "load-test: %d matches, %d ticks in %s (%.1f ticks/s)\n",
				matches, ticks, elapsed, float64(ticks)/elapsed.Seconds())
			return nil
		},
	}

	cmd.Flags().IntVar(&matches, "matches", 100, "number of concurrent matches to simulate")
	cmd.Flags().IntVar(&ticks, "ticks", 500, "number of 100ms ticks to drive")
	return cmd
}

func teamFor(seat int) bughouse.Team {
	if seat%2 == 0 {
		return bughouse.Red
	}
	return bughouse.Blue
}
