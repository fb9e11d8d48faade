// Package document is the application-wide event surface shared by the
// widgets of a screen. It carries keydown, mousedown and mouseup channels
// that any component can listen on, a default-action veto, and the notion
// of a single focused element.
package document

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/gridline/internal/pubsub"
)

// Element is anything that can hold keyboard focus.
type Element interface {
	ElementID() string
}

// TextSelector is implemented by focused text controls that can hold a
// native text selection (for example a cell editor after select-all).
type TextSelector interface {
	HasTextSelection() bool
}

// KeyEvent wraps a key message delivered on the keydown channel.
type KeyEvent struct {
	Msg       tea.KeyMsg
	prevented bool
}

// PreventDefault suppresses the default action bound to the key.
func (e *KeyEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *KeyEvent) DefaultPrevented() bool { return e.prevented }

// String returns the key chord, e.g. "ctrl+c".
func (e *KeyEvent) String() string { return e.Msg.String() }

// MouseEvent wraps a press or release delivered on the mouse channels.
type MouseEvent struct {
	Msg       tea.MouseMsg
	prevented bool
}

// PreventDefault suppresses the default action of the press.
func (e *MouseEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *MouseEvent) DefaultPrevented() bool { return e.prevented }

// KeyHandler listens on the keydown channel.
type KeyHandler func(*KeyEvent) tea.Cmd

// MouseHandler listens on the mousedown or mouseup channel.
type MouseHandler func(*MouseEvent) tea.Cmd

// Document owns the event channels and the focus state of one screen.
// It is not safe for use outside the bubbletea update loop.
type Document struct {
	keyDown   *pubsub.Bus[*KeyEvent]
	mouseDown *pubsub.Bus[*MouseEvent]
	mouseUp   *pubsub.Bus[*MouseEvent]
	active    Element
}

// New creates a document with no listeners and nothing focused.
func New() *Document {
	return &Document{
		keyDown:   pubsub.NewBus[*KeyEvent](),
		mouseDown: pubsub.NewBus[*MouseEvent](),
		mouseUp:   pubsub.NewBus[*MouseEvent](),
	}
}

// OnKeyDown registers a keydown listener.
func (d *Document) OnKeyDown(h KeyHandler) (unsubscribe func()) {
	return d.keyDown.Subscribe(func(e pubsub.Event[*KeyEvent]) tea.Cmd { return h(e.Payload) })
}

// OnMouseDown registers a listener for button presses anywhere on screen.
func (d *Document) OnMouseDown(h MouseHandler) (unsubscribe func()) {
	return d.mouseDown.Subscribe(func(e pubsub.Event[*MouseEvent]) tea.Cmd { return h(e.Payload) })
}

// OnMouseUp registers a listener for button releases anywhere on screen.
func (d *Document) OnMouseUp(h MouseHandler) (unsubscribe func()) {
	return d.mouseUp.Subscribe(func(e pubsub.Event[*MouseEvent]) tea.Cmd { return h(e.Payload) })
}

// DispatchKey delivers msg to every keydown listener. The returned event
// tells the caller whether the default action was prevented.
func (d *Document) DispatchKey(msg tea.KeyMsg) (*KeyEvent, tea.Cmd) {
	ev := &KeyEvent{Msg: msg}
	cmd := d.keyDown.Publish(pubsub.KeyDownEvent, ev)
	return ev, cmd
}

// DispatchMouse routes a left-button press to the mousedown channel and
// any release to the mouseup channel. Motion and wheel messages are not
// document events; it returns a nil event for them.
func (d *Document) DispatchMouse(msg tea.MouseMsg) (*MouseEvent, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		ev := &MouseEvent{Msg: msg}
		return ev, d.mouseDown.Publish(pubsub.MouseDownEvent, ev)
	case msg.Action == tea.MouseActionRelease:
		ev := &MouseEvent{Msg: msg}
		return ev, d.mouseUp.Publish(pubsub.MouseUpEvent, ev)
	default:
		return nil, nil
	}
}

// Focus makes el the active element. Focusing nil is equivalent to Blur.
func (d *Document) Focus(el Element) { d.active = el }

// Blur clears the active element if it is el. Blurring an element that
// lost focus to another one is a no-op.
func (d *Document) Blur(el Element) {
	if d.active != nil && el != nil && d.active.ElementID() == el.ElementID() {
		d.active = nil
	}
}

// ActiveElement returns the focused element or nil.
func (d *Document) ActiveElement() Element { return d.active }

// HasActiveTextSelection reports whether the focused element is a text
// control holding a non-empty native selection.
func (d *Document) HasActiveTextSelection() bool {
	ts, ok := d.active.(TextSelector)
	return ok && ts.HasTextSelection()
}

// ListenerCounts returns the number of keydown, mousedown and mouseup
// listeners. Used to assert that mounted components clean up.
func (d *Document) ListenerCounts() (keyDown, mouseDown, mouseUp int) {
	return d.keyDown.SubscriberCount(), d.mouseDown.SubscriberCount(), d.mouseUp.SubscriberCount()
}
