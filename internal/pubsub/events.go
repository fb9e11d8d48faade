// Package pubsub provides typed event delivery. Bus delivers synchronously,
// in subscription order, on the caller's goroutine (used for document-level
// UI events). Broker fans events out to buffered channels for background
// producers such as the file watcher.
package pubsub

import "time"

// EventType names the kind of event being published.
type EventType string

const (
	KeyDownEvent   EventType = "keydown"
	MouseDownEvent EventType = "mousedown"
	MouseUpEvent   EventType = "mouseup"
	ChangedEvent   EventType = "changed"
	ErrorEvent     EventType = "error"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
