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
	"math/rand"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"laptudirm.com/x/bughouse/pkg/lobby"
	"laptudirm.com/x/bughouse/pkg/match"
	"laptudirm.com/x/bughouse/pkg/rules"
)

// newStressTestCmd builds the "stress-test" subcommand: a tiny
// in-process driver that joins random participants into one
// match.State, randomly readies/unreadies/leaves them, and ticks the
// clock, to shake out panics and lock-ordering bugs in pkg/match
// without standing up any real network transport (spec §1
// Non-goals - the real randomized stress-test driver is external).
func newStressTestCmd() *cobra.Command {
	var iterations int
	var seed int64

	cmd := &cobra.Command{
		Use:   "stress-test",
		Short: "Hammer one in-process match.State with randomized lobby churn",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger("error")
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			rng := rand.New(rand.NewSource(seed))
			r := rules.Default()
			st := match.New("stress", &r, rng, log)

			bar := progressbar.Default(int64(iterations), "stress-test")
			now := time.Now()
			var panics int

			for i := 0; i < iterations; i++ {
				now = now.Add(100 * time.Millisecond)
				id := fmt.Sprintf("p%d", rng.Intn(16))

				func() {
					defer func() {
						if r := recover(); r != nil {
							panics++
							log.Errorw("stress-test: recovered panic", "iteration", i, "panic", r)
						}
					}()

					switch rng.Intn(5) {
					case 0:
						_, _ = st.Join(id, id, now)
					case 1:
						_ = st.SetFaction(id, lobby.Random())
					case 2:
						_ = st.SetReady(id, rng.Intn(2) == 0, now)
					case 3:
						st.Leave(id)
					default:
						st.Tick(now)
					}
				}()

				_ = bar.Add(1)
			}

			if panics > 0 {
				return fmt.Errorf("stress-test: %d panics recovered, see log", panics)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "stress-test: clean")
			return nil
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", 2000, "number of randomized actions to apply")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed, for reproducible runs")
	return cmd
}
