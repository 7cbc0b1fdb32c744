package state

import "testing"

func TestInsertAndDelete(t *testing.T) {
	var p Prompt
	if !p.Insert("ab") || p.Text != "ab" || p.Cursor != 2 {
		t.Fatalf("unexpected state %+v", p)
	}
	p.Cursor = 1
	p.Insert("z")
	if p.Text != "azb" || p.Cursor != 2 {
		t.Fatalf("expected insert into middle, got %+v", p)
	}
	if !p.DeleteRuneBackward() || p.Text != "ab" || p.Cursor != 1 {
		t.Fatalf("unexpected state after delete %+v", p)
	}
	p.Cursor = 0
	if p.DeleteRuneBackward() {
		t.Fatalf("expected no deletion at start")
	}
	if p.Insert("") {
		t.Fatalf("expected empty insert to be rejected")
	}
}

func TestMultibyteEditing(t *testing.T) {
	var p Prompt
	p.Insert("naïve")
	p.DeleteRuneBackward()
	p.MoveRuneBackward()
	p.DeleteRuneBackward()
	if p.Text != "nav" || p.Cursor != 2 {
		t.Fatalf("unexpected state %+v", p)
	}
}

func TestDeleteWordBackward(t *testing.T) {
	var p Prompt
	p.Set("visual studio  ", 15)
	if !p.DeleteWordBackward() || p.Text != "visual " || p.Cursor != 7 {
		t.Fatalf("unexpected state %+v", p)
	}
	p.Set("one two", 3)
	p.DeleteWordBackward()
	if p.Text != " two" || p.Cursor != 0 {
		t.Fatalf("unexpected state %+v", p)
	}
}

func TestCursorMovement(t *testing.T) {
	var p Prompt
	p.Set("alpha beta gamma", 99)
	if p.Cursor != 16 {
		t.Fatalf("expected clamp to end, got %d", p.Cursor)
	}
	if !p.MoveWordBackward() || p.Cursor != 11 {
		t.Fatalf("expected start of gamma, got %d", p.Cursor)
	}
	if !p.MoveStart() || p.MoveStart() || p.Cursor != 0 {
		t.Fatalf("unexpected start movement %d", p.Cursor)
	}
	if !p.MoveWordForward() || p.Cursor != 6 {
		t.Fatalf("expected start of beta, got %d", p.Cursor)
	}
	if !p.MoveRuneForward() || p.Cursor != 7 {
		t.Fatalf("expected 7, got %d", p.Cursor)
	}
	if !p.MoveEnd() || p.MoveEnd() || p.MoveRuneForward() || p.MoveWordForward() {
		t.Fatalf("unexpected end movement %d", p.Cursor)
	}
	p.Set("x", -4)
	if p.CursorPos() != 0 {
		t.Fatalf("expected clamp to start")
	}
}

func TestClear(t *testing.T) {
	var p Prompt
	if p.Clear() {
		t.Fatalf("expected clear of empty prompt to be a no-op")
	}
	p.Set("code", 4)
	if !p.Clear() || p.Text != "" || p.Cursor != 0 {
		t.Fatalf("unexpected state %+v", p)
	}
}
