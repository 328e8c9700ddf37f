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
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// requiredBpgnTags are the headers exportBpgn (pkg/notation) always
// writes; a file missing one of these didn't come out of this server
// intact.
var requiredBpgnTags = []string{
	"Event", "Round", "WhiteA", "BlackA", "WhiteB", "BlackB",
	"TimeControl", "Variant", "SetUp", "FEN", "Result", "Termination",
}

var tagLineRE = regexp.MustCompile(`^\[(\w+)\s+"(.*)"\]$`)
var timestampRE = regexp.MustCompile(`\s*\{\d+\}`)

// bpgnLineWidth mirrors pkg/notation's textDocument wrap column, so
// canonicalize re-wraps movetext exactly the way export already would.
const bpgnLineWidth = 80

type bpgnDocument struct {
	tags     map[string]string
	tagOrder []string
	movetext string
}

func parseBpgn(data []byte) bpgnDocument {
	doc := bpgnDocument{tags: make(map[string]string)}
	var body []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if m := tagLineRE.FindStringSubmatch(trimmed); m != nil {
			doc.tags[m[1]] = m[2]
			doc.tagOrder = append(doc.tagOrder, m[1])
			continue
		}
		if trimmed == "" {
			continue
		}
		body = append(body, trimmed)
	}
	doc.movetext = strings.Join(body, " ")
	return doc
}

func (d bpgnDocument) missingTags() []string {
	var missing []string
	for _, tag := range requiredBpgnTags {
		if _, ok := d.tags[tag]; !ok {
			missing = append(missing, tag)
		}
	}
	return missing
}

func rewrapMovetext(movetext string) string {
	words := strings.Fields(movetext)
	var b strings.Builder
	lineLen := 0
	for _, w := range words {
		switch {
		case lineLen == 0:
		case lineLen+len(w)+1 <= bpgnLineWidth:
			b.WriteByte(' ')
			lineLen++
		default:
			b.WriteByte('\n')
			lineLen = 0
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	if lineLen > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

func (d bpgnDocument) render() string {
	var b strings.Builder
	for _, tag := range d.tagOrder {
		fmt.Fprintf(&b, "[%s %q]\n", tag, d.tags[tag])
	}
	b.WriteString(rewrapMovetext(d.movetext))
	return b.String()
}

// newProcessBpgnCmd builds the "process-bpgn" subcommand: --role verify
// checks a file carries every tag ExportBughouse(Bpgn, ...) writes,
// --role canonicalize re-wraps it at the same 80-column width and,
// with --remove-timestamps, strips the {seconds} clock annotations
// (pkg/notation's TimeFormat=NoTime equivalent) before printing it.
func newProcessBpgnCmd() *cobra.Command {
	var role string
	var removeTimestamps bool

	cmd := &cobra.Command{
		Use:   "process-bpgn <file>",
		Short: "Verify or canonicalize a BPGN game record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("process-bpgn: %w", err)
			}
			doc := parseBpgn(data)

			switch role {
			case "verify":
				missing := doc.missingTags()
				if len(missing) > 0 {
					return fmt.Errorf("process-bpgn: missing tags: %s", strings.Join(missing, ", "))
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			case "canonicalize":
				if removeTimestamps {
					doc.movetext = timestampRE.ReplaceAllString(doc.movetext, "")
				}
				fmt.Fprint(cmd.OutOrStdout(), doc.render())
				return nil
			default:
				return fmt.Errorf("process-bpgn: unknown --role %q, want verify or canonicalize", role)
			}
		},
	}

	cmd.Flags().StringVar(&role, "role", "verify", "verify or canonicalize")
	cmd.Flags().BoolVar(&removeTimestamps, "remove-timestamps", false, "strip {seconds} clock annotations from movetext")
	return cmd
}
