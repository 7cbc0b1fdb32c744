// Package app wires configuration, a window-system backend and the overlay
// together for the three run modes: a single session, a resident daemon and
// a non-interactive listing.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/atomicstack/window-switcher/internal/backend"
	"github.com/atomicstack/window-switcher/internal/logging"
	"github.com/atomicstack/window-switcher/internal/logging/events"
	"github.com/atomicstack/window-switcher/internal/platform"
	"github.com/atomicstack/window-switcher/internal/query"
	"github.com/atomicstack/window-switcher/internal/session"
	"github.com/atomicstack/window-switcher/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Backend     string
	SocketPath  string
	Filter      string
	Match       string
	FieldLimit  int
	Refresh     time.Duration
	Width       int
	Height      int
	ShowFooter  bool
	ShowPreview bool
	Daemon      bool
	List        bool
	Query       string
}

var (
	openBackend = platform.Open

	programOptions = func() []tea.ProgramOption {
		return []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus()}
	}
)

// Run opens the configured backend and runs the selected mode until it
// finishes or ctx is cancelled. Listings are written to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	mode, err := query.ParseMode(cfg.Match)
	if err != nil {
		return err
	}
	be, err := openBackend(cfg.Backend, platform.Options{Socket: cfg.SocketPath, Filter: cfg.Filter})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := be.Close(); cerr != nil {
			logging.Error(fmt.Errorf("close %s backend: %w", be.Name(), cerr))
		}
	}()
	matcher := query.Matcher{Mode: mode}

	switch {
	case cfg.List:
		return writeListing(ctx, out, be, matcher, cfg)
	case cfg.Daemon:
		return runDaemon(ctx, cfg, be, matcher)
	default:
		return runOnce(ctx, cfg, be, matcher)
	}
}

func runOnce(ctx context.Context, cfg Config, be platform.Backend, matcher query.Matcher) error {
	mgr := session.NewManager()
	defer mgr.Close()
	if _, err := mgr.Trigger(ctx, newSessionFactory(ctx, cfg, be, matcher)); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	err := mgr.Wait()
	events.App.Stop("session-ended")
	return err
}

// newSessionFactory builds overlay sessions sharing one backend. Each session
// gets its own watcher, stopped when the session closes.
func newSessionFactory(ctx context.Context, cfg Config, be platform.Backend, matcher query.Matcher) session.Factory {
	return func(id string) (session.Session, error) {
		watcher := backend.NewWatcher(ctx, be, cfg.Refresh, cfg.FieldLimit)
		model := ui.NewModel(ctx, ui.Deps{
			Provider:  be,
			Port:      be,
			Previewer: be,
			Watcher:   watcher,
		}, ui.Options{
			Width:       cfg.Width,
			Height:      cfg.Height,
			ShowFooter:  cfg.ShowFooter,
			ShowPreview: cfg.ShowPreview,
			Query:       cfg.Query,
			Matcher:     matcher,
			FieldLimit:  cfg.FieldLimit,
			BackendName: be.Name(),
		})
		return ui.NewSession(id, model, programOptions()...), nil
	}
}
