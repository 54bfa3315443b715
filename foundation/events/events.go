// Package events fans node events out to connected websocket clients.
package events

import (
	"sync"
)

// messageBuffer is the per-client channel capacity. A client that falls
// this far behind starts missing events rather than blocking the node.
const messageBuffer = 100

// Events maintains the set of client channels receiving the node's
// event stream. Clients register under a unique id, normally the trace
// id of the websocket request that opened the stream.
type Events struct {
	mu      sync.RWMutex
	clients map[string]chan string
}

// New constructs an events value for registering and receiving events.
func New() *Events {
	return &Events{
		clients: make(map[string]chan string),
	}
}

// Acquire registers the id and returns the channel its events arrive on.
// Acquiring an id twice returns the same channel.
func (evt *Events) Acquire(id string) chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if ch, exists := evt.clients[id]; exists {
		return ch
	}

	evt.clients[id] = make(chan string, messageBuffer)
	return evt.clients[id]
}

// Release closes and removes the channel registered under the id.
// Releasing an unknown id is a no-op.
func (evt *Events) Release(id string) {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.clients[id]
	if !exists {
		return
	}

	delete(evt.clients, id)
	close(ch)
}

// Send delivers the message to every registered client without blocking
// on any of them.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.clients {
		select {
		case ch <- s:
		default:
		}
	}
}

// Shutdown closes and removes every registered channel.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.clients {
		delete(evt.clients, id)
		close(ch)
	}
}
