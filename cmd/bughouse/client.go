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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"laptudirm.com/x/bughouse/internal/config"
	"laptudirm.com/x/bughouse/internal/tui"
	"laptudirm.com/x/bughouse/pkg/altered"
	"laptudirm.com/x/bughouse/pkg/bughouse"
	"laptudirm.com/x/bughouse/pkg/chat"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/lobby"
	"laptudirm.com/x/bughouse/pkg/match"
)

// newClientCmd builds the "client" subcommand: since the wire transport
// is an external collaborator (spec §1 Non-goals), this is not a
// network client. It seats four local participants into one in-process
// match.State, drives its lobby/countdown/tick loop on a timer, and
// renders the result live through internal/tui - a spectator window
// onto the core engine, not a production client.
func newClientCmd() *cobra.Command {
	cfg := config.Default()
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Run the terminal spectator view of a local demo match",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReloadFile(cmd.Flags(), configPath, &cfg); err != nil {
				return err
			}
			return runClient(cfg)
		},
	}
	config.BindFlags(cmd.Flags(), &cfg)
	return cmd
}

func runClient(cfg config.Config) error {
	log, err := newLogger(cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	r := cfg.Rules()
	st := match.New(uuid.NewString(), &r, rand.New(rand.NewSource(time.Now().UnixNano())), log)

	names := []string{"Alice", "Bob", "Carol", "Dave"}
	now := time.Now()
	for i, name := range names {
		id := fmt.Sprintf("demo-%d", i)
		if _, err := st.Join(id, name, now); err != nil {
			return fmt.Errorf("client: seed participant %s: %w", name, err)
		}
		team := bughouse.Red
		if i%2 == 1 {
			team = bughouse.Blue
		}
		_ = st.SetFaction(id, lobby.Fixed(team))
		_ = st.SetReady(id, true, now)
	}

	var mu sync.Mutex
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case t := <-ticker.C:
				mu.Lock()
				st.Tick(t)
				mu.Unlock()
			}
		}
	}()
	defer close(done)

	source := tui.Source{
		Game: func() *altered.AlteredGame {
			mu.Lock()
			defer mu.Unlock()
			if st.Game == nil {
				return nil
			}
			var perspective [envoy.BoardN]*force.Force
			return altered.New(st.Game, perspective)
		},
		Chat: func() []chat.Message {
			mu.Lock()
			defer mu.Unlock()
			return st.Chat.All()
		},
		Lobby: func() ([]lobby.Participant, string) {
			mu.Lock()
			defer mu.Unlock()
			participants := make([]lobby.Participant, 0, len(st.Participants))
			for _, p := range st.Participants {
				participants = append(participants, *p)
			}
			countdown := ""
			if st.Phase == match.PhaseCountdown {
				countdown = time.Until(st.CountdownEndsAt).Round(time.Second).String()
			}
			return participants, countdown
		},
	}

	return tui.New(source).Run()
}
