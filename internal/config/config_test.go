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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"laptudirm.com/x/bughouse/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Match.Rules.Validate(); err != nil {
		t.Fatalf("Default() rules fail Validate: %v", err)
	}
	if cfg.Server.ListenAddr == "" {
		t.Errorf("Default() should set a listen address")
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("Load(\"\") = %+v, want Default()", cfg)
	}
}

func TestLoadOverlaysFileOnDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bughouse.toml")
	toml := `
[match]
Rated = true

[server]
ListenAddr = ":9999"
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Match.Rated {
		t.Errorf("Match.Rated should be true from the file")
	}
	if cfg.Server.ListenAddr != ":9999" {
		t.Errorf("Server.ListenAddr = %q, want :9999", cfg.Server.ListenAddr)
	}
	// Fields the file didn't set should retain their Default() value.
	if cfg.Server.LogLevel != config.Default().Server.LogLevel {
		t.Errorf("Server.LogLevel should remain the default, got %q", cfg.Server.LogLevel)
	}
}

func TestBindFlagsThenFlagWins(t *testing.T) {
	cfg := config.Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.BindFlags(fs, &cfg)

	if err := fs.Parse([]string{"--listen", ":7777"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Server.ListenAddr != ":7777" {
		t.Errorf("Server.ListenAddr = %q, want :7777", cfg.Server.ListenAddr)
	}
	if !fs.Changed("listen") {
		t.Errorf("fs.Changed(\"listen\") = false, want true")
	}
	if fs.Changed("log-level") {
		t.Errorf("fs.Changed(\"log-level\") = true, want false (never passed)")
	}
}

func TestReloadFileSkipsExplicitlySetFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bughouse.toml")
	toml := `
[server]
ListenAddr = ":1111"
LogLevel = "debug"
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := config.Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.BindFlags(fs, &cfg)
	if err := fs.Parse([]string{"--listen", ":2222"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if err := config.ReloadFile(fs, path, &cfg); err != nil {
		t.Fatalf("ReloadFile: %v", err)
	}
	if cfg.Server.ListenAddr != ":2222" {
		t.Errorf("explicitly-set --listen should survive ReloadFile, got %q", cfg.Server.ListenAddr)
	}
	if cfg.Server.LogLevel != "debug" {
		t.Errorf("log-level was never passed on the command line, should come from the file: got %q", cfg.Server.LogLevel)
	}
}

func TestRulesFlattensRatedAndPublic(t *testing.T) {
	cfg := config.Default()
	cfg.Match.Rated = true
	cfg.Match.Public = false

	r := cfg.Rules()
	if !r.Rated {
		t.Errorf("Rules().Rated = false, want true")
	}
	if r.Public {
		t.Errorf("Rules().Public = true, want false")
	}
}
