package registry_test

import (
	"testing"

	"laptudirm.com/x/bughouse/pkg/registry"
)

func TestSendDeliversToRegisteredClient(t *testing.T) {
	r := registry.New()
	id := registry.NewID()
	ch := make(chan any, 1)
	r.Add(id, ch)

	r.Send(id, "hello")

	select {
	case got := <-ch:
		if got != "hello" {
			t.Errorf("received %v, want %q", got, "hello")
		}
	default:
		t.Fatalf("expected a delivered message")
	}
}

func TestSendToUnknownIDIsSilent(t *testing.T) {
	r := registry.New()
	r.Send(registry.NewID(), "nobody home")
}

func TestSendDropsOnFullChannel(t *testing.T) {
	r := registry.New()
	id := registry.NewID()
	ch := make(chan any, 1)
	r.Add(id, ch)

	r.Send(id, "first")
	r.Send(id, "second") // channel already full, must not block

	got := <-ch
	if got != "first" {
		t.Errorf("received %v, want %q", got, "first")
	}
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	r := registry.New()
	var channels []chan any
	for i := 0; i < 3; i++ {
		ch := make(chan any, 1)
		r.Add(registry.NewID(), ch)
		channels = append(channels, ch)
	}

	r.Broadcast("news")

	for i, ch := range channels {
		select {
		case got := <-ch:
			if got != "news" {
				t.Errorf("client %d received %v, want %q", i, got, "news")
			}
		default:
			t.Errorf("client %d received nothing", i)
		}
	}
}

func TestRemoveAndLen(t *testing.T) {
	r := registry.New()
	id := registry.NewID()
	r.Add(id, make(chan any, 1))

	if got := r.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}

	r.Remove(id)
	if got := r.Len(); got != 0 {
		t.Errorf("Len() after Remove = %d, want 0", got)
	}
}
