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

package diagnostics_test

import (
	"strings"
	"testing"

	"laptudirm.com/x/bughouse/internal/diagnostics"
)

func TestGuardRecoversPanic(t *testing.T) {
	before := diagnostics.Count()

	var loggedSource string
	diagnostics.Guard("test-connection", func(args ...any) {
		if len(args) >= 3 {
			if s, ok := args[2].(string); ok {
				loggedSource = s
			}
		}
	}, func() {
		panic("boom")
	})

	if got := diagnostics.Count(); got != before+1 {
		t.Fatalf("Count() = %d, want %d", got, before+1)
	}
	report, ok := diagnostics.LastReport()
	if !ok {
		t.Fatalf("LastReport: expected a captured report")
	}
	if report.Source != "test-connection" {
		t.Errorf("report.Source = %q, want %q", report.Source, "test-connection")
	}
	if !strings.Contains(report.Message, "boom") {
		t.Errorf("report.Message = %q, want it to contain %q", report.Message, "boom")
	}
	if loggedSource != "test-connection" {
		t.Errorf("log callback should have received the source, got %q", loggedSource)
	}
}

func TestGuardDoesNotPanicWithoutOne(t *testing.T) {
	ran := false
	diagnostics.Guard("noop", nil, func() { ran = true })
	if !ran {
		t.Errorf("fn should have run to completion")
	}
}

func TestReportErrorRecordsClientSource(t *testing.T) {
	before := diagnostics.Count()
	diagnostics.ReportError("client-reported issue")

	if got := diagnostics.Count(); got != before+1 {
		t.Fatalf("Count() = %d, want %d", got, before+1)
	}
	report, _ := diagnostics.LastReport()
	if report.Source != "client" {
		t.Errorf("report.Source = %q, want \"client\"", report.Source)
	}
	if report.Message != "client-reported issue" {
		t.Errorf("report.Message = %q, want %q", report.Message, "client-reported issue")
	}
}
