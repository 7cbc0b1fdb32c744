package switcher

import "github.com/atomicstack/window-switcher/internal/window"

// Event is one input to the engine. The set is closed: only the types in
// this file implement it.
type Event interface {
	switcherEvent()
}

// Direction names a selection movement.
type Direction int

const (
	Next Direction = iota
	Previous
	First
	Last
	PageUp
	PageDown
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	case First:
		return "first"
	case Last:
		return "last"
	case PageUp:
		return "page-up"
	case PageDown:
		return "page-down"
	default:
		return "unknown"
	}
}

// QueryChanged carries the full query text after an edit.
type QueryChanged struct {
	Text string
}

// SelectionMoved moves the highlight within the displayed list.
type SelectionMoved struct {
	Direction Direction
}

// SelectIndex highlights an explicit row of the displayed list.
type SelectIndex struct {
	Index int
}

// Refresh re-enumerates windows and re-applies the current query.
type Refresh struct{}

// SnapshotUpdated delivers a snapshot captured outside the engine, such as
// by the background watcher.
type SnapshotUpdated struct {
	Snapshot window.Snapshot
}

// Commit activates the highlighted window and closes the engine.
type Commit struct{}

// Dismiss closes the engine without activating anything.
type Dismiss struct{}

func (QueryChanged) switcherEvent()    {}
func (SelectionMoved) switcherEvent()  {}
func (SelectIndex) switcherEvent()     {}
func (Refresh) switcherEvent()         {}
func (SnapshotUpdated) switcherEvent() {}
func (Commit) switcherEvent()          {}
func (Dismiss) switcherEvent()         {}

// Result summarises what a dispatched event did.
type Result struct {
	// Changed is set when the displayed list or the selection changed.
	Changed bool
	// Closed is set once the engine has been committed or dismissed.
	Closed bool
	// Activated is set when Commit sent an activation request.
	Activated bool
}
