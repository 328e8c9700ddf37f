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
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"laptudirm.com/x/bughouse/internal/config"
	"laptudirm.com/x/bughouse/pkg/match"
	"laptudirm.com/x/bughouse/pkg/registry"
	"laptudirm.com/x/bughouse/pkg/rules"
)

// matchServer is the process-wide collection of running matches, the
// seam an external WebSocket transport (spec §1 Non-goals) would sit in
// front of: it never touches a socket itself, only *match.State and a
// registry.Registry of outbound channels.
type matchServer struct {
	mu      sync.Mutex
	matches map[string]*match.State

	clients *registry.Registry
	log     *zap.SugaredLogger
}

func newMatchServer(log *zap.SugaredLogger) *matchServer {
	return &matchServer{
		matches: make(map[string]*match.State),
		clients: registry.New(),
		log:     log,
	}
}

// NewMatch creates and registers a fresh match.State playing under r,
// returning its server-assigned ID.
func (s *matchServer) NewMatch(r rules.Rules) (string, *match.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	st := match.New(id, &r, rand.New(rand.NewSource(time.Now().UnixNano())), s.log)
	s.matches[id] = st
	return id, st
}

// tick advances every running match's countdown/clock once.
func (s *matchServer) tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, st := range s.matches {
		if over, at := st.Tick(now); over {
			s.log.Infow("match game over", "match", id, "at", at)
		}
	}
}

var serverDemo bool

func newServerCmd() *cobra.Command {
	cfg := config.Default()
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the bughouse match server's in-process state and metrics endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReloadFile(cmd.Flags(), configPath, &cfg); err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
	config.BindFlags(cmd.Flags(), &cfg)
	cmd.Flags().BoolVar(&serverDemo, "demo", false, "create one empty demo match at startup, for smoke testing")
	return cmd
}

func runServer(cfg config.Config) error {
	log, err := newLogger(cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	srv := newMatchServer(log)

	if serverDemo {
		id, _ := srv.NewMatch(cfg.Rules())
		log.Infow("created demo match", "match", id)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: cfg.Server.MetricsAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infow("serving metrics", "addr", cfg.Server.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("metrics server failed", "error", err)
		}
	}()

	log.Infow("match server ready", "listen", cfg.Server.ListenAddr,
		"note", "client/server wire transport is external; this process owns match state and metrics only")

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Infow("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		case now := <-ticker.C:
			srv.tick(now)
		}
	}
}
