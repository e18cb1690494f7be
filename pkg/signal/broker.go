// Package signal provides the fan-out primitive behind the client's
// "session changed" and "collection changed" surfaces: one authoritative
// publisher, any number of passive subscribers.
package signal

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Broker fans events out to subscribers. Channels are buffered so a slow
// consumer cannot block the publisher; when a buffer is full the event is
// dropped. That is safe as long as every event carries the full current
// state rather than a delta, which is the contract for all brokers in
// this module.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[string]chan T
	buffer int
	logger *slog.Logger
	closed bool
}

// New creates a broker whose subscriber channels hold buffer events.
func New[T any](buffer int, logger *slog.Logger) *Broker[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broker[T]{
		subs:   make(map[string]chan T),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe registers a listener and returns its token and channel. On a
// closed broker the returned channel is already closed.
func (b *Broker[T]) Subscribe() (string, <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	token := uuid.NewString()
	ch := make(chan T, b.buffer)
	if b.closed {
		close(ch)
		return token, ch
	}
	b.subs[token] = ch
	return token, ch
}

// Unsubscribe removes a listener and closes its channel. Unknown tokens
// are ignored.
func (b *Broker[T]) Unsubscribe(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[token]; ok {
		delete(b.subs, token)
		close(ch)
	}
}

// Publish delivers the event to every subscriber with room in its buffer.
func (b *Broker[T]) Publish(ev T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for token, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.logger.Debug("event dropped, subscriber buffer full", "subscriber", token)
		}
	}
}

// Len reports the number of active subscribers.
func (b *Broker[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Further publishes are no-ops.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for token, ch := range b.subs {
		delete(b.subs, token)
		close(ch)
	}
}
