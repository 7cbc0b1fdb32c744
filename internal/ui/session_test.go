package ui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func headlessOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	}
}

func runSession(t *testing.T, s *Session, ctx context.Context) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	return done
}

func waitSession(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("session returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("session did not exit")
	}
}

func TestSessionTeardownDismisses(t *testing.T) {
	fb := scenarioBackend()
	model := NewModel(context.Background(), Deps{Provider: fb, Port: fb}, Options{})
	s := NewSession("abc", model, headlessOptions()...)
	if s.ID() != "abc" || s.Model() != model {
		t.Fatalf("unexpected session identity")
	}
	done := runSession(t, s, context.Background())
	s.Teardown()
	waitSession(t, done)
	if !model.Closed() || !model.Engine().Closed() {
		t.Fatalf("expected teardown to close the engine")
	}
	if len(fb.activity) != 0 {
		t.Fatalf("teardown must not activate, got %v", fb.activity)
	}
}

func TestSessionStopsWhenContextCancelled(t *testing.T) {
	fb := scenarioBackend()
	model := NewModel(context.Background(), Deps{Provider: fb, Port: fb}, Options{})
	s := NewSession("ctx", model, headlessOptions()...)
	ctx, cancel := context.WithCancel(context.Background())
	done := runSession(t, s, ctx)
	cancel()
	waitSession(t, done)
	if !model.Engine().Closed() {
		t.Fatalf("expected engine closed after cancellation")
	}
}
