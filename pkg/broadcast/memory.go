package broadcast

import (
	"context"
	"sync"
)

// MemoryBroadcaster is an in-process Broadcaster. All methods are safe
// for concurrent use.
type MemoryBroadcaster[T any] struct {
	mu         sync.RWMutex
	channels   map[string]map[*subscriber[T]]struct{}
	bufferSize int
	closed     bool
	cleanupWg  sync.WaitGroup
}

// NewMemoryBroadcaster creates a broadcaster whose subscribers buffer up to
// bufferSize messages (at least 1).
func NewMemoryBroadcaster[T any](bufferSize int) *MemoryBroadcaster[T] {
	return &MemoryBroadcaster[T]{
		channels:   make(map[string]map[*subscriber[T]]struct{}),
		bufferSize: max(bufferSize, 1),
	}
}

// Subscribe registers a subscriber on channel. The subscription ends when
// ctx is done. After Close it returns an already closed subscriber.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context, channel string) Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscriber[T](b.bufferSize)
	if b.closed {
		_ = sub.Close()
		return sub
	}

	subs, ok := b.channels[channel]
	if !ok {
		subs = make(map[*subscriber[T]]struct{})
		b.channels[channel] = subs
	}
	subs[sub] = struct{}{}

	if ctx.Done() != nil {
		b.cleanupWg.Add(1)
		go func() {
			defer b.cleanupWg.Done()
			<-ctx.Done()
			b.unsubscribe(channel, sub)
		}()
	}
	return sub
}

// Publish sends msg to the subscribers of channel and returns how many
// received it. Subscribers with a full buffer are dropped.
func (b *MemoryBroadcaster[T]) Publish(_ context.Context, channel string, msg Message[T]) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return 0
	}

	delivered := 0
	for sub := range b.channels[channel] {
		if sub.send(msg) {
			delivered++
			continue
		}
		go b.unsubscribe(channel, sub)
	}
	return delivered
}

// Subscribers returns the number of subscribers on channel.
func (b *MemoryBroadcaster[T]) Subscribers(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.channels[channel])
}

// Close closes every subscriber. It is safe to call more than once.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	for _, subs := range b.channels {
		for sub := range subs {
			_ = sub.Close()
		}
	}
	clear(b.channels)
	b.mu.Unlock()

	b.cleanupWg.Wait()
	return nil
}

func (b *MemoryBroadcaster[T]) unsubscribe(channel string, sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subs, ok := b.channels[channel]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(b.channels, channel)
		}
	}
	_ = sub.Close()
}
