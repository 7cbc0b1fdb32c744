package ui

import (
	"context"
	"errors"

	"github.com/atomicstack/window-switcher/internal/switcher"
	tea "github.com/charmbracelet/bubbletea"
)

// Session runs one Model as a Bubble Tea program. It satisfies
// session.Session.
type Session struct {
	id      string
	model   *Model
	program *tea.Program
}

// NewSession wraps model in a program built with opts.
func NewSession(id string, model *Model, opts ...tea.ProgramOption) *Session {
	return &Session{
		id:      id,
		model:   model,
		program: tea.NewProgram(model, opts...),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Model returns the session's model.
func (s *Session) Model() *Model {
	return s.model
}

// Run blocks until the overlay is committed, dismissed or torn down.
// Cancelling ctx tears the session down.
func (s *Session) Run(ctx context.Context) error {
	if ctx != nil {
		stop := context.AfterFunc(ctx, s.Teardown)
		defer stop()
	}
	_, err := s.program.Run()
	if !s.model.Closed() {
		s.model.engine.Dispatch(switcher.Dismiss{})
		s.model.close()
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Teardown asks the program to dismiss the overlay and quit. It returns
// immediately.
func (s *Session) Teardown() {
	go s.program.Send(teardownMsg{})
}
