package selection

// None is the index reported when nothing is displayed.
const None = -1

// State tracks the highlighted row of the displayed list along with the
// viewport offset used when the list is taller than the screen.
type State struct {
	count          int
	index          int
	viewportOffset int
}

// New returns a State with nothing selected.
func New() *State {
	return &State{index: None}
}

// Reset replaces the selection for a freshly displayed list. With an empty
// query the second row is preferred: the first row is normally the window
// that was focused when the switcher opened.
func (s *State) Reset(displayedCount int, emptyQuery bool) {
	s.viewportOffset = 0
	if displayedCount <= 0 {
		s.count = 0
		s.index = None
		return
	}
	s.count = displayedCount
	if emptyQuery && displayedCount > 1 {
		s.index = 1
		return
	}
	s.index = 0
}

// Current returns the selected index, or (None, false).
func (s *State) Current() (int, bool) {
	if s.index == None {
		return None, false
	}
	return s.index, true
}

// Count returns the length of the list the selection refers to.
func (s *State) Count() int {
	return s.count
}

// ViewportOffset returns the first visible row.
func (s *State) ViewportOffset() int {
	return s.viewportOffset
}

// MoveNext advances one row, stopping at the last one.
func (s *State) MoveNext() bool {
	return s.moveBy(1)
}

// MovePrevious goes back one row, stopping at the first one.
func (s *State) MovePrevious() bool {
	return s.moveBy(-1)
}

// MoveFirst selects the first row.
func (s *State) MoveFirst() bool {
	if s.index == None {
		return false
	}
	old := s.index
	s.index = 0
	return old != s.index
}

// MoveLast selects the last row.
func (s *State) MoveLast() bool {
	if s.index == None {
		return false
	}
	old := s.index
	s.index = s.count - 1
	return old != s.index
}

// MovePageUp moves up by the given page size.
func (s *State) MovePageUp(maxVisible int) bool {
	return s.moveBy(-s.pageSize(maxVisible))
}

// MovePageDown moves down by the given page size.
func (s *State) MovePageDown(maxVisible int) bool {
	return s.moveBy(s.pageSize(maxVisible))
}

// Set selects idx when it is inside the displayed list.
func (s *State) Set(idx int) bool {
	if s.index == None || idx < 0 || idx >= s.count {
		return false
	}
	old := s.index
	s.index = idx
	return old != s.index
}

func (s *State) moveBy(delta int) bool {
	if s.index == None {
		return false
	}
	old := s.index
	s.index += delta
	if s.index < 0 {
		s.index = 0
	}
	if s.index >= s.count {
		s.index = s.count - 1
	}
	return s.index != old
}

func (s *State) pageSize(maxVisible int) int {
	if s.count == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > s.count {
		size = s.count
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureVisible adjusts the viewport offset so the selected row stays on
// screen when at most maxVisible rows fit.
func (s *State) EnsureVisible(maxVisible int) {
	if s.index == None || maxVisible <= 0 {
		s.viewportOffset = 0
		return
	}
	maxOffset := s.count - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.viewportOffset > maxOffset {
		s.viewportOffset = maxOffset
	}
	if s.viewportOffset < 0 {
		s.viewportOffset = 0
	}
	if s.index < s.viewportOffset {
		s.viewportOffset = s.index
	}
	if upper := s.viewportOffset + maxVisible - 1; s.index > upper {
		s.viewportOffset = s.index - maxVisible + 1
		if s.viewportOffset > maxOffset {
			s.viewportOffset = maxOffset
		}
	}
}
