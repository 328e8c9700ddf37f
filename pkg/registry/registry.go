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

// Package registry tracks every connected client's outbound channel
// so a match's game-loop goroutine can address individual clients or
// broadcast, without knowing anything about the transport underneath
// (spec §3 ClientRegistry, C8).
package registry

import (
	"sync"

	"github.com/google/uuid"
)

// ID identifies one connection. A participant that reconnects gets a
// fresh ID; pkg/match correlates it back to the same Participant via
// its stable participant ID instead.
type ID = uuid.UUID

// NewID mints a fresh, unique connection ID.
func NewID() ID {
	return uuid.New()
}

// Registry is a mutex-guarded directory of live client connections. It
// is safe for concurrent use: inbound/outbound per-client goroutines
// and the game-loop goroutine all reach it concurrently.
type Registry struct {
	mu      sync.Mutex
	clients map[ID]chan<- any
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{clients: make(map[ID]chan<- any)}
}

// Add registers outbound as id's outbound channel, replacing any
// previous registration under the same id.
func (r *Registry) Add(id ID, outbound chan<- any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[id] = outbound
}

// Remove unregisters id. It is a no-op if id is not registered.
func (r *Registry) Remove(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// Send delivers event to id's outbound channel, dropping it silently
// if id is not registered (the client disconnected between the
// decision to send and the send itself) or if the channel is full (a
// slow client must not stall the game loop).
func (r *Registry) Send(id ID, event any) {
	r.mu.Lock()
	ch, ok := r.clients[id]
	r.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- event:
	default:
	}
}

// Broadcast delivers event to every registered client.
func (r *Registry) Broadcast(event any) {
	r.mu.Lock()
	ids := make([]chan<- any, 0, len(r.clients))
	for _, ch := range r.clients {
		ids = append(ids, ch)
	}
	r.mu.Unlock()
	for _, ch := range ids {
		select {
		case ch <- event:
		default:
		}
	}
}

// Len returns the number of currently registered clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
