package backend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/window-switcher/internal/window"
)

type scriptedSource struct {
	mu    sync.Mutex
	steps [][]window.Candidate
	errAt int
	calls int
}

func (s *scriptedSource) Windows(context.Context) ([]window.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls == s.errAt {
		return nil, errors.New("enumeration failed")
	}
	idx := s.calls - 1
	if idx >= len(s.steps) {
		idx = len(s.steps) - 1
	}
	out := make([]window.Candidate, len(s.steps[idx]))
	copy(out, s.steps[idx])
	return out, nil
}

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
	return Event{}
}

func TestWatcherEmitsOnlyChanges(t *testing.T) {
	a := []window.Candidate{{Handle: "1", Title: "one"}}
	b := []window.Candidate{{Handle: "1", Title: "one"}, {Handle: "2", Title: "a very long title"}}
	src := &scriptedSource{steps: [][]window.Candidate{a, a, b}}
	w := NewWatcher(context.Background(), src, 10*time.Millisecond, 6)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	first := nextEvent(t, w)
	if first.Err != nil || len(first.Snapshot) != 1 {
		t.Fatalf("unexpected first event %+v", first)
	}
	second := nextEvent(t, w)
	if len(second.Snapshot) != 2 {
		t.Fatalf("expected the unchanged poll to be skipped, got %+v", second)
	}
	if second.Snapshot[1].Title != "a very" {
		t.Fatalf("expected truncated title, got %q", second.Snapshot[1].Title)
	}
}

func TestWatcherReportsErrors(t *testing.T) {
	src := &scriptedSource{steps: [][]window.Candidate{{{Handle: "1"}}}, errAt: 1}
	w := NewWatcher(context.Background(), src, 10*time.Millisecond, 0)
	defer func() {
		w.Stop()
		w.Wait()
	}()
	if evt := nextEvent(t, w); evt.Err == nil {
		t.Fatalf("expected error event, got %+v", evt)
	}
	if evt := nextEvent(t, w); evt.Err != nil || len(evt.Snapshot) != 1 {
		t.Fatalf("expected recovery snapshot, got %+v", evt)
	}
}

func TestWatcherDisabledClosesImmediately(t *testing.T) {
	w := NewWatcher(context.Background(), &scriptedSource{}, 0, 0)
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatalf("expected no events")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected events channel to close")
	}
}

func TestWatcherStopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &scriptedSource{steps: [][]window.Candidate{{{Handle: "1"}}}}
	w := NewWatcher(ctx, src, time.Hour, 0)
	cancel()
	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("watcher did not stop")
	}
}

func TestPollGateSpacesCalls(t *testing.T) {
	gate := newPollGate(20 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	if !gate.wait(ctx) || !gate.wait(ctx) {
		t.Fatalf("expected both waits to proceed")
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("expected gated second call, elapsed %v", elapsed)
	}
	var nilGate *pollGate
	if !nilGate.wait(ctx) {
		t.Fatalf("expected nil gate to proceed")
	}
}

func TestPollGateReturnsOnCancel(t *testing.T) {
	gate := newPollGate(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	if !gate.wait(ctx) {
		t.Fatalf("expected first wait to proceed")
	}
	done := make(chan bool, 1)
	go func() { done <- gate.wait(ctx) }()
	cancel()
	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected cancelled wait to report false")
		}
	case <-time.After(time.Second):
		t.Fatalf("wait ignored cancellation")
	}
}
