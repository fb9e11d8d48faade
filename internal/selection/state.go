package selection

// Phase is the externally visible state of the selection machine.
type Phase int

const (
	Idle Phase = iota
	Selected
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// State is an immutable selection snapshot. The zero value is Idle.
//
// A non-empty selection always has an anchor and is exactly the rectangle
// between anchor and current. Reduce never mutates the set of an existing
// State, so snapshots can be shared freely.
type State struct {
	anchor   Coord
	current  Coord
	active   bool
	dragging bool
	selected map[CellID]struct{}
}

// Anchor returns the drag origin, if any.
func (s State) Anchor() (Coord, bool) { return s.anchor, s.active }

// Current returns the drag end, if any.
func (s State) Current() (Coord, bool) { return s.current, s.active }

// Dragging reports whether a drag is in progress.
func (s State) Dragging() bool { return s.dragging }

// Phase derives the machine state.
func (s State) Phase() Phase {
	switch {
	case s.dragging:
		return Dragging
	case len(s.selected) > 0:
		return Selected
	default:
		return Idle
	}
}

// IsSelected reports whether (row, col) is in the selection.
func (s State) IsSelected(row, col int) bool {
	if !s.active {
		return false
	}
	_, ok := s.selected[Coord{Row: row, Col: col}.ID()]
	return ok
}

// View returns a read-only view of the selected set.
func (s State) View() View {
	return View{set: s.selected, bounds: Span(s.anchor, s.current), ok: s.active}
}

// Event is a message accepted by Reduce.
type Event interface {
	isEvent()
}

// PointerDown starts a new drag at Cell.
type PointerDown struct{ Cell Coord }

// PointerEnter moves the drag end to Cell.
type PointerEnter struct{ Cell Coord }

// PointerUp ends the drag.
type PointerUp struct{}

// ClearReason names what triggered a Clear.
type ClearReason string

const (
	ClearEscape     ClearReason = "escape"
	ClearOutside    ClearReason = "outside-press"
	ClearSort       ClearReason = "sort"
	ClearFilter     ClearReason = "filter"
	ClearVisibility ClearReason = "visibility"
	ClearReload     ClearReason = "reload"
	ClearUnmount    ClearReason = "unmount"
	ClearExplicit   ClearReason = "explicit"
)

// Clear empties the selection.
type Clear struct{ Reason ClearReason }

func (PointerDown) isEvent()  {}
func (PointerEnter) isEvent() {}
func (PointerUp) isEvent()    {}
func (Clear) isEvent()        {}

// Reduce returns the state that follows s after ev.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case PointerDown:
		return State{
			anchor:   ev.Cell,
			current:  ev.Cell,
			active:   true,
			dragging: true,
			selected: map[CellID]struct{}{ev.Cell.ID(): {}},
		}

	case PointerEnter:
		if !s.dragging {
			return s
		}
		if ev.Cell == s.current {
			return s
		}
		return State{
			anchor:   s.anchor,
			current:  ev.Cell,
			active:   true,
			dragging: true,
			selected: toSet(Range(s.anchor, ev.Cell)),
		}

	case PointerUp:
		if !s.dragging {
			return s
		}
		next := s
		next.dragging = false
		return next

	case Clear:
		return State{}
	}
	return s
}

func toSet(ids []CellID) map[CellID]struct{} {
	set := make(map[CellID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
