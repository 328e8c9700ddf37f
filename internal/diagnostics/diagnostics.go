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

// Package diagnostics holds the process-wide panic/last-error capture
// the original client kept in a thread-local LAST_PANIC (spec §9
// "Global state"). Go has no global panic hook to install, so this
// package instead offers Guard, a wrapper every per-connection
// goroutine runs under; the capture itself stays confined here and
// never leaks into pkg/match or any other game-logic package.
package diagnostics

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// Report is a captured panic or reported client error, shaped like the
// original's BughouseClientErrorReport enum (RustPanic/RustError/
// UnknownError collapse into one Go struct, distinguished by Source).
type Report struct {
	Source    string // "panic", "error", or a caller-supplied tag
	Message   string
	Backtrace string
	At        time.Time
}

var (
	initOnce sync.Once

	mu         sync.Mutex
	lastReport Report

	reportCount atomic.Int64
)

// Init is idempotent; call it once at process start. It exists so a
// future diagnostics backend (e.g. shipping reports to a collector) has
// a single, obvious place to set up, matching the original's
// set_panic_hook's sync.Once-equivalent (std::sync::Once) lifecycle.
func Init() {
	initOnce.Do(func() {
		lastReport = Report{}
	})
}

// Guard recovers a panic escaping fn, records it as the last report and
// re-logs it via log (which may be nil, in which case the report is
// only retained for LastReport/Count). It does not re-panic: a
// connection-handling goroutine calls Guard so one client's crash
// cannot take the whole server down.
func Guard(source string, log func(args ...any), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			record(Report{
				Source:    source,
				Message:   fmt.Sprint(r),
				Backtrace: string(debug.Stack()),
				At:        time.Now(),
			})
			if log != nil {
				log("panic recovered", "source", source, "error", r)
			}
		}
	}()
	fn()
}

// ReportError records a client-originated error report (spec §6
// ReportError) without a panic/backtrace attached.
func ReportError(message string) {
	record(Report{Source: "client", Message: message, At: time.Now()})
}

func record(r Report) {
	mu.Lock()
	lastReport = r
	mu.Unlock()
	reportCount.Add(1)
}

// LastReport returns the most recently captured report and whether one
// has been captured at all.
func LastReport() (Report, bool) {
	mu.Lock()
	defer mu.Unlock()
	return lastReport, reportCount.Load() > 0
}

// Count returns how many reports have been captured since Init.
func Count() int64 {
	return reportCount.Load()
}
