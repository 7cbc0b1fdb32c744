package activation

import (
	"github.com/atomicstack/window-switcher/internal/logging/events"
	"github.com/atomicstack/window-switcher/internal/window"
)

// Port is the window-system side of activation. Every call is a best-effort
// request; implementations do not report whether the OS honoured it.
type Port interface {
	IsMinimized(h window.Handle) bool
	Restore(h window.Handle)
	BringToForeground(h window.Handle)
}

// Resolver turns a selected handle into activation requests.
type Resolver struct {
	port Port
}

// NewResolver returns a resolver issuing requests through port.
func NewResolver(port Port) *Resolver {
	return &Resolver{port: port}
}

// Activate brings h to the foreground, restoring it first when minimized.
// Handles that are null or absent from snap are ignored: the window was
// closed or the selection went stale between capture and commit. The result
// reports whether any request was sent.
func (r *Resolver) Activate(snap window.Snapshot, h window.Handle) bool {
	if r == nil || r.port == nil {
		return false
	}
	if !snap.Contains(h) {
		events.Activation.Stale(string(h))
		return false
	}
	restored := false
	if r.port.IsMinimized(h) {
		r.port.Restore(h)
		restored = true
	}
	r.port.BringToForeground(h)
	events.Activation.Request(string(h), restored)
	return true
}
