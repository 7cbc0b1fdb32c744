// Package session keeps at most one overlay session alive per process.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/atomicstack/window-switcher/internal/logging/events"
)

// Session is one overlay lifetime.
type Session interface {
	ID() string
	// Run blocks until the session's event loop exits.
	Run(ctx context.Context) error
	// Teardown asks the session to close. It must not block.
	Teardown()
}

// Factory builds the next session. id is a fresh identifier for tracing.
type Factory func(id string) (Session, error)

type live struct {
	session Session
	done    chan struct{}
	err     error
}

// Manager swaps sessions on every trigger: the previous one is torn down and
// joined before its replacement starts.
type Manager struct {
	mu      sync.Mutex
	current *live
}

// NewManager returns a manager with no live session.
func NewManager() *Manager {
	return &Manager{}
}

// NewID returns a session identifier.
func NewID() string {
	return uuid.NewString()
}

// Trigger replaces the live session, if any, with one built by factory.
func (m *Manager) Trigger(ctx context.Context, factory Factory) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()

	s, err := factory(NewID())
	if err != nil {
		return nil, err
	}
	l := &live{session: s, done: make(chan struct{})}
	m.current = l
	events.Session.Start(s.ID())
	go func() {
		defer close(l.done)
		l.err = s.Run(ctx)
	}()
	return s, nil
}

// Close tears down and joins the live session.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// Wait blocks until the session live at call time exits and returns its
// error. It returns nil immediately when no session is live.
func (m *Manager) Wait() error {
	m.mu.Lock()
	l := m.current
	m.mu.Unlock()
	if l == nil {
		return nil
	}
	<-l.done
	return l.err
}

// Active reports whether a session is live.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return false
	}
	select {
	case <-m.current.done:
		return false
	default:
		return true
	}
}

// Done returns a channel closed when the live session exits, or nil.
func (m *Manager) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	return m.current.done
}

func (m *Manager) stopLocked() {
	l := m.current
	if l == nil {
		return
	}
	m.current = nil
	id := l.session.ID()
	select {
	case <-l.done:
	default:
		events.Session.Teardown(id)
		l.session.Teardown()
		<-l.done
	}
	events.Session.Joined(id, l.err)
}
