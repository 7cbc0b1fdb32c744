package selection

import "testing"

func current(t *testing.T, s *State) int {
	t.Helper()
	idx, ok := s.Current()
	if !ok {
		t.Fatalf("expected a selection, got none")
	}
	return idx
}

func TestResetDefaultPolicy(t *testing.T) {
	cases := []struct {
		count int
		empty bool
		want  int
	}{
		{5, true, 1},
		{2, true, 1},
		{1, true, 0},
		{5, false, 0},
		{1, false, 0},
	}
	for _, tc := range cases {
		s := New()
		s.Reset(tc.count, tc.empty)
		if got := current(t, s); got != tc.want {
			t.Fatalf("Reset(%d, %v): expected %d, got %d", tc.count, tc.empty, tc.want, got)
		}
	}
}

func TestResetEmptyListIsNone(t *testing.T) {
	for _, empty := range []bool{true, false} {
		s := New()
		s.Reset(3, true)
		s.Reset(0, empty)
		if idx, ok := s.Current(); ok || idx != None {
			t.Fatalf("expected none, got %d/%v", idx, ok)
		}
		if s.MoveNext() || s.MovePrevious() || s.MoveFirst() || s.MoveLast() || s.MovePageDown(3) {
			t.Fatalf("expected moves to be no-ops without a selection")
		}
		if _, ok := s.Current(); ok {
			t.Fatalf("expected selection to stay none after moves")
		}
	}
}

func TestMovesClampWithoutWrapping(t *testing.T) {
	s := New()
	s.Reset(3, false)
	if s.MovePrevious() {
		t.Fatalf("expected MovePrevious at 0 to be a no-op")
	}
	if got := current(t, s); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	s.MoveNext()
	s.MoveNext()
	if got := current(t, s); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if s.MoveNext() {
		t.Fatalf("expected MoveNext at last index to be a no-op")
	}
	if got := current(t, s); got != 2 {
		t.Fatalf("expected to stay at 2, got %d", got)
	}
}

func TestResetReplacesPriorSelection(t *testing.T) {
	s := New()
	s.Reset(10, false)
	s.MoveLast()
	s.Reset(4, true)
	if got := current(t, s); got != 1 {
		t.Fatalf("expected reset to discard old selection, got %d", got)
	}
}

func TestPagingAndSet(t *testing.T) {
	s := New()
	s.Reset(5, false)
	if !s.MovePageDown(2) || current(t, s) != 2 {
		t.Fatalf("expected page down to 2")
	}
	if !s.MovePageDown(2) || current(t, s) != 4 {
		t.Fatalf("expected page down to 4")
	}
	if s.MovePageDown(2) {
		t.Fatalf("expected no movement past the end")
	}
	if !s.MovePageUp(10) || current(t, s) != 0 {
		t.Fatalf("expected page up to clamp at 0")
	}
	if !s.Set(3) || current(t, s) != 3 {
		t.Fatalf("expected explicit set to 3")
	}
	if s.Set(5) || s.Set(-1) {
		t.Fatalf("expected out of range set to be ignored")
	}
}

func TestEnsureVisible(t *testing.T) {
	s := New()
	s.Reset(5, false)
	s.MoveLast()
	s.EnsureVisible(2)
	if s.ViewportOffset() != 3 {
		t.Fatalf("expected offset 3, got %d", s.ViewportOffset())
	}
	s.Set(1)
	s.EnsureVisible(3)
	if s.ViewportOffset() != 1 {
		t.Fatalf("expected offset aligned with selection, got %d", s.ViewportOffset())
	}
	s.EnsureVisible(0)
	if s.ViewportOffset() != 0 {
		t.Fatalf("expected offset reset for unbounded viewport, got %d", s.ViewportOffset())
	}
}
