package connmon_test

import (
	"testing"
	"time"

	"laptudirm.com/x/bughouse/pkg/connmon"
)

func TestStatusThresholds(t *testing.T) {
	start := time.Now()
	m := connmon.New(start)

	if got := m.Status(start); got != connmon.Healthy {
		t.Errorf("Status at t0 = %v, want Healthy", got)
	}
	if got := m.Status(start.Add(2 * time.Second)); got != connmon.Healthy {
		t.Errorf("Status at t0+2s = %v, want Healthy", got)
	}
	if got := m.Status(start.Add(5 * time.Second)); got != connmon.TemporaryLost {
		t.Errorf("Status at t0+5s = %v, want TemporaryLost", got)
	}
	if got := m.Status(start.Add(90 * time.Second)); got != connmon.PermanentlyLost {
		t.Errorf("Status at t0+90s = %v, want PermanentlyLost", got)
	}
}

func TestTouchResetsStaleness(t *testing.T) {
	start := time.Now()
	m := connmon.New(start)

	later := start.Add(10 * time.Second)
	m.Touch(later)

	if got := m.Status(later.Add(1 * time.Second)); got != connmon.Healthy {
		t.Errorf("Status just after Touch = %v, want Healthy", got)
	}
}

func TestPingPongRecordsRoundTrip(t *testing.T) {
	start := time.Now()
	m := connmon.New(start)

	// The first 10 round trips after connecting are warmup and not kept.
	now := start
	for i := 0; i < 10; i++ {
		m.Ping(now)
		m.Pong(now.Add(time.Second))
		now = now.Add(2 * time.Second)
	}

	m.Ping(now)
	m.Pong(now.Add(50 * time.Millisecond))

	stats := m.RoundTrip()
	if stats.NumSamples != 1 {
		t.Fatalf("NumSamples = %d, want 1", stats.NumSamples)
	}
	if stats.P50 != 50*time.Millisecond {
		t.Errorf("P50 = %v, want 50ms", stats.P50)
	}
}

func TestPongWithoutPingIsIgnored(t *testing.T) {
	start := time.Now()
	m := connmon.New(start)

	m.Pong(start.Add(time.Second))
	if stats := m.RoundTrip(); stats.NumSamples != 0 {
		t.Errorf("NumSamples after unsolicited Pong = %d, want 0", stats.NumSamples)
	}
}

func TestReconnectDiscardsWarmupSamples(t *testing.T) {
	start := time.Now()
	m := connmon.New(start)
	m.Reconnect(start)

	now := start
	for i := 0; i < 10; i++ {
		now = now.Add(time.Second)
		m.Ping(now)
		m.Pong(now.Add(100 * time.Millisecond))
	}
	if stats := m.RoundTrip(); stats.NumSamples != 0 {
		t.Fatalf("NumSamples during warmup = %d, want 0", stats.NumSamples)
	}

	now = now.Add(time.Second)
	m.Ping(now)
	m.Pong(now.Add(200 * time.Millisecond))

	if stats := m.RoundTrip(); stats.NumSamples != 1 {
		t.Errorf("NumSamples after warmup = %d, want 1", stats.NumSamples)
	}
}
