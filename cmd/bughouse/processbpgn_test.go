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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBpgn = `[Event "Casual Bughouse"]
[Round "1"]
[WhiteA "Alice"]
[BlackA "Bob"]
[WhiteB "Carol"]
[BlackB "Dave"]
[TimeControl "300+2"]
[Variant "Bughouse"]
[SetUp "0"]
[FEN "-"]
[Result "1-0"]
[Termination "Resignation"]

1A. e4 {1} 1a. e5 {1}
1B. d4 {2} 1b. d5 {2}
`

func TestParseBpgnExtractsTagsAndMovetext(t *testing.T) {
	doc := parseBpgn([]byte(sampleBpgn))
	if doc.tags["Event"] != "Casual Bughouse" {
		t.Errorf("Event tag = %q, want %q", doc.tags["Event"], "Casual Bughouse")
	}
	if doc.tags["WhiteA"] != "Alice" {
		t.Errorf("WhiteA tag = %q, want %q", doc.tags["WhiteA"], "Alice")
	}
	if !strings.Contains(doc.movetext, "1A. e4") {
		t.Errorf("movetext = %q, want it to contain the first board-A move", doc.movetext)
	}
}

func TestMissingTagsReportsEveryAbsentRequiredTag(t *testing.T) {
	doc := parseBpgn([]byte(`[Event "Casual Bughouse"]` + "\n" + "1A. e4"))
	missing := doc.missingTags()
	if len(missing) == 0 {
		t.Fatalf("expected missing tags, got none")
	}
	found := false
	for _, m := range missing {
		if m == "Result" {
			found = true
		}
	}
	if !found {
		t.Errorf("missingTags() = %v, want it to include Result", missing)
	}
}

func TestMissingTagsEmptyWhenAllPresent(t *testing.T) {
	doc := parseBpgn([]byte(sampleBpgn))
	if missing := doc.missingTags(); len(missing) != 0 {
		t.Errorf("missingTags() = %v, want none missing", missing)
	}
}

func TestRewrapMovetextWrapsAtWidth(t *testing.T) {
	long := strings.Repeat("abcdefghij ", 20)
	wrapped := rewrapMovetext(long)
	for _, line := range strings.Split(strings.TrimRight(wrapped, "\n"), "\n") {
		if len(line) > bpgnLineWidth {
			t.Errorf("line %q exceeds bpgnLineWidth %d", line, bpgnLineWidth)
		}
	}
}

func TestProcessBpgnVerifyRoleSucceedsOnCompleteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.bpgn")
	if err := os.WriteFile(path, []byte(sampleBpgn), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := newProcessBpgnCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(out.String()) != "ok" {
		t.Errorf("output = %q, want \"ok\"", out.String())
	}
}

func TestProcessBpgnVerifyRoleFailsOnIncompleteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.bpgn")
	if err := os.WriteFile(path, []byte(`[Event "Casual Bughouse"]`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := newProcessBpgnCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{path})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("Execute: expected an error for an incomplete file")
	}
}

func TestProcessBpgnCanonicalizeRemovesTimestamps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.bpgn")
	if err := os.WriteFile(path, []byte(sampleBpgn), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := newProcessBpgnCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--role", "canonicalize", "--remove-timestamps", path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.Contains(out.String(), "{1}") || strings.Contains(out.String(), "{2}") {
		t.Errorf("output = %q, want timestamp annotations stripped", out.String())
	}
	if !strings.Contains(out.String(), `[Event "Casual Bughouse"]`) {
		t.Errorf("output = %q, want tags preserved", out.String())
	}
}
