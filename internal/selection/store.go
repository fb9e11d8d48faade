package selection

import (
	"github.com/zjrosen/gridline/internal/log"
)

// Store holds the selection of one grid session. It must only be used
// from the goroutine delivering UI events.
type Store struct {
	state State
}

// NewStore returns an Idle store.
func NewStore() *Store {
	return &Store{}
}

// Dispatch applies ev and reports whether the state changed.
func (s *Store) Dispatch(ev Event) bool {
	prev := s.state
	next := Reduce(prev, ev)
	changed := !sameState(prev, next)
	s.state = next
	if changed {
		log.Debug(log.CatSelection, "transition",
			"event", eventName(ev),
			"from", prev.Phase(),
			"to", next.Phase(),
			"cells", len(next.selected))
	}
	return changed
}

// PointerDown begins a drag at (row, col), replacing any selection.
func (s *Store) PointerDown(row, col int) {
	s.Dispatch(PointerDown{Cell: Coord{Row: row, Col: col}})
}

// PointerEnter extends an active drag to (row, col).
func (s *Store) PointerEnter(row, col int) {
	s.Dispatch(PointerEnter{Cell: Coord{Row: row, Col: col}})
}

// PointerUp ends an active drag.
func (s *Store) PointerUp() {
	s.Dispatch(PointerUp{})
}

// Clear empties the selection.
func (s *Store) Clear(reason ClearReason) {
	s.Dispatch(Clear{Reason: reason})
}

// IsSelected reports whether (row, col) is selected.
func (s *Store) IsSelected(row, col int) bool { return s.state.IsSelected(row, col) }

// IsDragging reports whether a drag is in progress.
func (s *Store) IsDragging() bool { return s.state.dragging }

// Phase returns the current machine state.
func (s *Store) Phase() Phase { return s.state.Phase() }

// Selected returns a read-only view of the selected set.
func (s *Store) Selected() View { return s.state.View() }

// State returns the current snapshot.
func (s *Store) State() State { return s.state }

func sameState(a, b State) bool {
	if a.active != b.active || a.dragging != b.dragging || a.anchor != b.anchor || a.current != b.current {
		return false
	}
	return len(a.selected) == len(b.selected)
}

func eventName(ev Event) string {
	switch ev := ev.(type) {
	case PointerDown:
		return "pointer-down " + ev.Cell.String()
	case PointerEnter:
		return "pointer-enter " + ev.Cell.String()
	case PointerUp:
		return "pointer-up"
	case Clear:
		return "clear " + string(ev.Reason)
	default:
		return "unknown"
	}
}
