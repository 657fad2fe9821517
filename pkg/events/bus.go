// Package events provides an in-process fan-out bus for tab switch
// notifications. A Bus is created by the application and injected into every
// tab group that should report on it; there is no process-wide channel.
package events

import (
	"slices"
	"sync"
)

// Bus fans a published value out to every current subscriber.
type Bus[T any] struct {
	mu        sync.RWMutex
	listeners map[uint64]func(T)
	nextID    uint64
	closed    bool
}

// NewBus creates an empty bus
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{listeners: make(map[uint64]func(T))}
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (b *Bus[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return func() {}
	}
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers v to a snapshot of the subscribers taken at call time.
// Subscribers are called in subscription order.
func (b *Bus[T]) Publish(v T) {
	b.mu.RLock()
	if b.closed || len(b.listeners) == 0 {
		b.mu.RUnlock()
		return
	}
	ids := make([]uint64, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	snapshot := make([]func(T), 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, b.listeners[id])
	}
	b.mu.RUnlock()

	for _, fn := range snapshot {
		fn(v)
	}
}

// Len returns the number of live subscribers
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// Close drops every subscriber. Publish and Subscribe are no-ops afterwards.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.listeners = make(map[uint64]func(T))
}
