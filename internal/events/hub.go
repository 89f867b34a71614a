// Package events fans marketplace events out to in-process subscribers and Kafka.
package events

import (
	"context"
	"sync"

	"github.com/SscSPs/car_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_market_app/internal/core/ports/services"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 32

// Hub is an in-process pub/sub used by the Server-Sent Events endpoints.
// A subscriber that falls behind by more than its buffer misses events rather than
// slowing down publishers.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[chan domain.Event]struct{}
	buffer int
	closed bool
}

// NewHub creates an empty hub. A non-positive buffer uses DefaultBuffer.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{subs: make(map[string]map[chan domain.Event]struct{}), buffer: buffer}
}

var (
	_ portssvc.EventPublisher  = (*Hub)(nil)
	_ portssvc.EventSubscriber = (*Hub)(nil)
)

// Subscribe registers a new subscriber on stream. After Close the returned channel is
// already closed.
func (h *Hub) Subscribe(stream string) (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, h.buffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	if h.subs[stream] == nil {
		h.subs[stream] = make(map[chan domain.Event]struct{})
	}
	h.subs[stream][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[stream][ch]; !ok {
				return // already closed by Close
			}
			delete(h.subs[stream], ch)
			if len(h.subs[stream]) == 0 {
				delete(h.subs, stream)
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers event to every current subscriber of its stream without blocking.
func (h *Hub) Publish(_ context.Context, event domain.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[event.Stream()] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribers returns the number of subscribers on stream.
func (h *Hub) Subscribers(stream string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[stream])
}

// Close ends every subscription so open streams return, and rejects new ones.
// It is meant to run when the HTTP server shuts down.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, chans := range h.subs {
		for ch := range chans {
			close(ch)
		}
	}
	h.subs = make(map[string]map[chan domain.Event]struct{})
}
