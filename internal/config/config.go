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

// Package config loads a match server's configuration from an optional
// TOML file, then lets CLI flags override whatever the file set, in
// that order. Nothing here touches game logic - it only produces a
// rules.Rules and a ServerConfig for cmd/bughouse to hand off to
// pkg/match and the registry/listener.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"laptudirm.com/x/bughouse/pkg/rules"
)

// MatchConfig bundles a match's gameplay rules with the server-side
// knobs that sit alongside them but aren't gameplay-affecting (spec
// §6 MatchConfig).
type MatchConfig struct {
	Rules rules.Rules

	// Rated and Public mirror rules.Rules' own fields of the same name;
	// TOML files set them at the top level of a [match] table rather
	// than nested under [match.rules], which keeps operator-facing
	// config flat while pkg/rules itself stays the single source of
	// truth the engine consults at runtime.
	Rated  bool
	Public bool
}

// ServerConfig is the process-level configuration of the server
// subcommand: where it listens and how verbosely it logs.
type ServerConfig struct {
	ListenAddr string
	LogLevel   string
	MetricsAddr string
}

// Config is the top-level shape of a TOML config file, matched by the
// [match] and [server] tables.
type Config struct {
	Match  MatchConfig  `toml:"match"`
	Server ServerConfig `toml:"server"`
}

// Default returns the configuration a bare `bughouse server` run should
// use absent any file or flag overrides.
func Default() Config {
	return Config{
		Match: MatchConfig{
			Rules:  rules.Default(),
			Public: true,
		},
		Server: ServerConfig{
			ListenAddr:  ":8080",
			LogLevel:    "info",
			MetricsAddr: ":9090",
		},
	}
}

// Load reads path as TOML over top of Default(), so a config file only
// needs to set the fields it wants to change. An empty path returns
// Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Match.Rules.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// BindFlags registers pflag overrides for cfg's fields onto fs, letting
// command-line flags win over whatever a config file already set. Call
// this after Load so the flags' defaults reflect the loaded config.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Server.ListenAddr, "listen", cfg.Server.ListenAddr, "address to listen for client connections on")
	fs.StringVar(&cfg.Server.LogLevel, "log-level", cfg.Server.LogLevel, "zap log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Server.MetricsAddr, "metrics-listen", cfg.Server.MetricsAddr, "address to serve Prometheus metrics on")

	fs.BoolVar(&cfg.Match.Rules.FischerRandom, "fischer-random", cfg.Match.Rules.FischerRandom, "randomize the back-rank setup")
	fs.BoolVar(&cfg.Match.Rules.FairyPieces, "fairy-pieces", cfg.Match.Rules.FairyPieces, "enable fairy promotion choices")
	fs.BoolVar(&cfg.Match.Rules.DuckChess, "duck-chess", cfg.Match.Rules.DuckChess, "enable the duck chess variant")
	fs.BoolVar(&cfg.Match.Rules.FogOfWar, "fog-of-war", cfg.Match.Rules.FogOfWar, "enable fog of war")
	fs.BoolVar(&cfg.Match.Rules.Atomic, "atomic", cfg.Match.Rules.Atomic, "enable atomic chess")
	fs.BoolVar(&cfg.Match.Rules.Koedem, "koedem", cfg.Match.Rules.Koedem, "enable koedem (collect all enemy kings)")
	fs.DurationVar(&cfg.Match.Rules.TimeControl.Starting, "time-starting", cfg.Match.Rules.TimeControl.Starting, "starting clock allotment per force")
	fs.DurationVar(&cfg.Match.Rules.TimeControl.Increment, "time-increment", cfg.Match.Rules.TimeControl.Increment, "Fischer increment per turn")
	fs.BoolVar(&cfg.Match.Rated, "rated", cfg.Match.Rated, "count match results towards ratings (external)")
	fs.BoolVar(&cfg.Match.Public, "public", cfg.Match.Public, "list the match publicly")
}

// resolvedRules keeps rules.Rules and MatchConfig's flattened Rated/
// Public in sync, since BindFlags writes Rated/Public onto MatchConfig
// directly rather than through rules.Rules.
func (c Config) resolvedRules() rules.Rules {
	r := c.Match.Rules
	r.Rated = c.Match.Rated
	r.Public = c.Match.Public
	return r
}

// Rules returns the fully resolved rules.Rules a new match should use.
func (c Config) Rules() rules.Rules {
	return c.resolvedRules()
}

// ReloadFile re-reads path (if non-empty) and, for every flag in fs the
// user did not explicitly pass, overwrites cfg's matching field with
// the file's value. BindFlags must already have populated cfg's fields
// from Default() and cobra must already have parsed fs by the time
// this runs, so "Changed" correctly distinguishes an explicit flag
// from one still sitting at its built-in default.
//
// This two-pass dance (parse flags against Default(), then let an
// unset flag's field be overwritten by the file) exists because pflag
// fixes a flag's default at bind time, before the file on --config is
// known to even exist.
func ReloadFile(fs *pflag.FlagSet, path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	file, err := Load(path)
	if err != nil {
		return err
	}

	if !fs.Changed("listen") {
		cfg.Server.ListenAddr = file.Server.ListenAddr
	}
	if !fs.Changed("log-level") {
		cfg.Server.LogLevel = file.Server.LogLevel
	}
	if !fs.Changed("metrics-listen") {
		cfg.Server.MetricsAddr = file.Server.MetricsAddr
	}
	if !fs.Changed("fischer-random") {
		cfg.Match.Rules.FischerRandom = file.Match.Rules.FischerRandom
	}
	if !fs.Changed("fairy-pieces") {
		cfg.Match.Rules.FairyPieces = file.Match.Rules.FairyPieces
	}
	if !fs.Changed("duck-chess") {
		cfg.Match.Rules.DuckChess = file.Match.Rules.DuckChess
	}
	if !fs.Changed("fog-of-war") {
		cfg.Match.Rules.FogOfWar = file.Match.Rules.FogOfWar
	}
	if !fs.Changed("atomic") {
		cfg.Match.Rules.Atomic = file.Match.Rules.Atomic
	}
	if !fs.Changed("koedem") {
		cfg.Match.Rules.Koedem = file.Match.Rules.Koedem
	}
	if !fs.Changed("time-starting") {
		cfg.Match.Rules.TimeControl.Starting = file.Match.Rules.TimeControl.Starting
	}
	if !fs.Changed("time-increment") {
		cfg.Match.Rules.TimeControl.Increment = file.Match.Rules.TimeControl.Increment
	}
	if !fs.Changed("rated") {
		cfg.Match.Rated = file.Match.Rated
	}
	if !fs.Changed("public") {
		cfg.Match.Public = file.Match.Public
	}

	return cfg.Match.Rules.Validate()
}
