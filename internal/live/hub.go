// Package live fans vote updates out to in-process subscribers such as
// Server-Sent Events streams.
package live

import (
	"log/slog"
	"sync"

	"github.com/heartmarshall/election-backend/internal/domain"
)

// DefaultBuffer is the per-subscriber queue length used when none is given.
const DefaultBuffer = 32

type gauge interface {
	SubscriberAdded()
	SubscriberRemoved()
}

// Subscription receives updates on C until it is closed.
type Subscription struct {
	C <-chan domain.LiveUpdate

	ch      chan domain.LiveUpdate
	hub     *Hub
	once    sync.Once
	dropped int
}

// Close detaches the subscription from its hub and closes C.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub broadcasts live updates to every subscriber. A subscriber whose queue
// is full misses the update instead of blocking the broadcast.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	buffer int
	closed bool

	metrics gauge
	log     *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(log *slog.Logger, buffer int, metrics gauge) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:    make(map[*Subscription]struct{}),
		buffer:  buffer,
		metrics: metrics,
		log:     log.With("component", "live_hub"),
	}
}

// Subscribe registers a new subscriber. On a closed hub the returned
// subscription's channel is already closed.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan domain.LiveUpdate, h.buffer)
	sub := &Subscription{C: ch, ch: ch, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)
		sub.once.Do(func() {})
		return sub
	}
	h.subs[sub] = struct{}{}
	h.metrics.SubscriberAdded()
	return sub
}

// Publish delivers update to every subscriber without blocking.
func (h *Hub) Publish(update domain.LiveUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.ch <- update:
		default:
			sub.dropped++
			if sub.dropped == 1 || sub.dropped%100 == 0 {
				h.log.Warn("live subscriber too slow, dropping updates",
					slog.Int("dropped", sub.dropped),
				)
			}
		}
	}
}

// Len returns the number of active subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every subscriber. Later subscriptions are closed at once.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.ch)
		h.metrics.SubscriberRemoved()
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
	h.metrics.SubscriberRemoved()
}
