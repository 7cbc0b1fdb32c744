package platform

import (
	"context"
	"sync"

	"github.com/atomicstack/window-switcher/internal/logging/events"
	"github.com/atomicstack/window-switcher/internal/tmux"
	"github.com/atomicstack/window-switcher/internal/window"
)

var (
	fetchTmuxWindows  = tmux.FetchWindows
	focusTmuxWindow   = tmux.FocusWindow
	previewTmuxWindow = tmux.WindowPreview
	currentTmuxClient = tmux.CurrentClientID
	resolveTmuxSocket = tmux.ResolveSocketPath
)

// tmuxBackend treats every tmux window on one server as a candidate.
type tmuxBackend struct {
	socket   string
	filter   string
	clientID string
	selfPID  int

	mu   sync.Mutex
	last map[window.Handle]tmux.Window
}

func openTmux(opts Options) (Backend, error) {
	socket, err := resolveTmuxSocket(opts.Socket)
	if err != nil {
		return nil, err
	}
	return &tmuxBackend{
		socket:   socket,
		filter:   opts.Filter,
		clientID: currentTmuxClient(socket),
		selfPID:  opts.selfPID(),
		last:     map[window.Handle]tmux.Window{},
	}, nil
}

func (b *tmuxBackend) Name() string { return "tmux" }

func (b *tmuxBackend) Close() error { return nil }

func (b *tmuxBackend) Windows(ctx context.Context) ([]window.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	windows, err := fetchTmuxWindows(b.socket, b.filter)
	if err != nil {
		return nil, err
	}
	last := make(map[window.Handle]tmux.Window, len(windows))
	candidates := make([]window.Candidate, 0, len(windows))
	for _, w := range windows {
		if w.PanePID == b.selfPID {
			continue
		}
		h := window.Handle(w.ID)
		last[h] = w
		candidates = append(candidates, window.Candidate{
			Handle:      h,
			PID:         w.PanePID,
			Title:       w.Name,
			ProcessName: w.Command,
		})
	}
	b.mu.Lock()
	b.last = last
	b.mu.Unlock()
	return candidates, nil
}

// IsMinimized is always false: tmux windows cannot be iconified.
func (b *tmuxBackend) IsMinimized(window.Handle) bool { return false }

func (b *tmuxBackend) Restore(window.Handle) {}

func (b *tmuxBackend) BringToForeground(h window.Handle) {
	b.mu.Lock()
	w, ok := b.last[h]
	b.mu.Unlock()
	if !ok {
		w = tmux.Window{ID: string(h)}
	}
	if err := focusTmuxWindow(b.socket, b.clientID, w); err != nil {
		events.Activation.CommandFailed(string(h), "focus", err)
	}
}

func (b *tmuxBackend) Preview(ctx context.Context, h window.Handle) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return previewTmuxWindow(b.socket, string(h))
}
