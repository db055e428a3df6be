package broadcast

import (
	"context"
	"sync"
)

// Subscriber receives messages from a Broadcaster.
type Subscriber[T any] interface {
	// Messages returns the receive channel. It is closed when the subscriber
	// is closed, the subscription context ends, or the broadcaster shuts down.
	Messages() <-chan T

	// Close releases the subscription. It is idempotent.
	Close() error
}

// Broadcaster fans messages out to every active subscriber.
// Implementations drop messages for slow consumers rather than block.
type Broadcaster[T any] interface {
	Subscribe(ctx context.Context) Subscriber[T]
	Broadcast(ctx context.Context, msg T) error
	Close() error
}

type subscriber[T any] struct {
	ch     chan T
	closed bool
	mu     sync.RWMutex
	detach func()
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{ch: make(chan T, bufferSize)}
}

func (s *subscriber[T]) Messages() <-chan T {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	if s.detach != nil {
		s.detach()
	}
	s.close()
	return nil
}

func (s *subscriber[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

// send never blocks; it reports false when the message was dropped.
func (s *subscriber[T]) send(msg T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}
