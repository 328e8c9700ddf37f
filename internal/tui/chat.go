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
	"hash/fnv"
	"strings"

	"github.com/mattn/go-runewidth"
	wordwrap "github.com/mitchellh/go-wordwrap"
	"github.com/rivo/uniseg"

	"laptudirm.com/x/bughouse/pkg/chat"
)

// chatColors cycles per-sender colors, the way a terminal chat pane
// usually distinguishes speakers without a fixed color table to
// maintain.
var chatColors = []string{"cyan", "green", "magenta", "yellow", "blue", "red"}

func senderColor(senderID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(senderID))
	return chatColors[h.Sum32()%uint32(len(chatColors))]
}

// renderChat formats msgs into a width-wrapped, per-sender colored
// block suitable for a widgets.Paragraph's Text, which termui parses as
// "[text](fg:color)" style markup.
func renderChat(msgs []chat.Message, width int) string {
	var b strings.Builder
	for _, m := range msgs {
		prefix := senderPrefix(m)
		line := prefix + m.Text
		wrapped := wordwrap.WrapString(line, uint(max(width-2, 10)))
		for i, ln := range strings.Split(wrapped, "\n") {
			if i == 0 {
				fmt.Fprintf(&b, "[%s](fg:%s)%s\n", prefix, senderColor(m.SenderID), strings.TrimPrefix(ln, prefix))
			} else {
				b.WriteString(padToWidth(ln, width))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func senderPrefix(m chat.Message) string {
	name := truncateName(m.SenderName, 16)
	switch m.Recipient {
	case chat.Team:
		return fmt.Sprintf("[team] %s: ", name)
	case chat.Direct:
		return fmt.Sprintf("[whisper] %s: ", name)
	default:
		return fmt.Sprintf("%s: ", name)
	}
}

// truncateName clips name to at most maxClusters grapheme clusters, so
// a name built from combining marks or emoji (a single user-perceived
// character that is several runes) is never split mid-cluster.
func truncateName(name string, maxClusters int) string {
	g := uniseg.NewGraphemes(name)
	var out strings.Builder
	n := 0
	for g.Next() {
		if n >= maxClusters {
			out.WriteString("…")
			break
		}
		out.WriteString(g.Str())
		n++
	}
	return out.String()
}

// padToWidth pads s with trailing spaces to width printable columns,
// accounting for wide glyphs via runewidth - the reason this package
// pulls in runewidth/uniseg rather than just counting runes or bytes.
func padToWidth(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
