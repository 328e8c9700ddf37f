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

package notation

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/force"
)

// RenderClockChart writes a standalone HTML line chart of both forces'
// remaining clock time over the course of board's turn log to w. It is
// a spectator/analysis aid alongside BPGN export, not something the
// match server needs at runtime.
func RenderClockChart(w io.Writer, g GameSummary, board envoy.Board) error {
	turnNumber := make([]string, 0, len(g.Log))
	white := make([]opts.LineData, 0, len(g.Log))
	black := make([]opts.LineData, 0, len(g.Log))

	n := 0
	for _, rec := range g.Log {
		if rec.Envoy.Board != board {
			continue
		}
		n++
		seconds := rec.ClockRemaining.Seconds()
		turnNumber = append(turnNumber, strconv.Itoa(n))
		switch rec.Envoy.Force {
		case force.White:
			white = append(white, opts.LineData{Value: seconds})
			black = append(black, opts.LineData{Value: nil})
		case force.Black:
			white = append(white, opts.LineData{Value: nil})
			black = append(black, opts.LineData{Value: seconds})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Clock remaining, board " + board.String(),
		}),
	)
	line.SetXAxis(turnNumber).
		AddSeries("White", white).
		AddSeries("Black", black)

	return line.Render(w)
}
