package pubsub

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Handler receives a synchronously delivered event. The returned command,
// if any, is batched with the commands of the other handlers.
type Handler[T any] func(Event[T]) tea.Cmd

type subscription[T any] struct {
	id      uint64
	handler Handler[T]
}

// Bus is a synchronous publish/subscribe channel. Publish invokes every
// handler before returning, in the order the handlers subscribed.
type Bus[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription[T]
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers handler and returns the function that removes it.
// The returned function is idempotent.
func (b *Bus[T]) Subscribe(handler Handler[T]) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription[T]{id: id, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers payload to every current subscriber.
// Handlers may subscribe or unsubscribe during delivery; such changes take
// effect from the next Publish.
func (b *Bus[T]) Publish(eventType EventType, payload T) tea.Cmd {
	b.mu.Lock()
	subs := make([]subscription[T], len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	if len(subs) == 0 {
		return nil
	}

	event := Event[T]{Type: eventType, Payload: payload, Timestamp: time.Now()}
	var cmds []tea.Cmd
	for _, s := range subs {
		if cmd := s.handler(event); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
