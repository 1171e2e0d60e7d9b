package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T.
type Message[T any] struct {
	Data T
}

// Subscriber receives the messages published to one channel.
type Subscriber[T any] interface {
	// Receive returns the message channel. It is closed when the
	// subscription ends.
	Receive() <-chan Message[T]

	// Close ends the subscription. It is idempotent.
	Close() error
}

// Broadcaster delivers messages to the subscribers of named channels.
// Slow subscribers lose messages instead of blocking the publisher.
type Broadcaster[T any] interface {
	Subscribe(ctx context.Context, channel string) Subscriber[T]
	Publish(ctx context.Context, channel string, msg Message[T]) int
	Close() error
}

type subscriber[T any] struct {
	ch     chan Message[T]
	closed bool
	mu     sync.RWMutex
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{ch: make(chan Message[T], bufferSize)}
}

func (s *subscriber[T]) Receive() <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

func (s *subscriber[T]) send(msg Message[T]) bool {
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
