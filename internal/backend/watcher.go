package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/window-switcher/internal/logging/events"
	"github.com/atomicstack/window-switcher/internal/window"
)

const minPollGap = 250 * time.Millisecond

// Source enumerates candidate windows.
type Source interface {
	Windows(ctx context.Context) ([]window.Candidate, error)
}

// Event conveys a fresh snapshot or the error from a failed poll.
type Event struct {
	Snapshot window.Snapshot
	Err      error
}

// Watcher polls a Source at a fixed interval and publishes snapshots that
// differ from the previous one.
type Watcher struct {
	source     Source
	interval   time.Duration
	fieldLimit int

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts polling source every interval. The first poll happens
// one interval after start; callers take their own initial snapshot. A
// non-positive interval yields a watcher that never emits.
func NewWatcher(parent context.Context, source Source, interval time.Duration, fieldLimit int) *Watcher {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	w := &Watcher{
		source:     source,
		interval:   interval,
		fieldLimit: fieldLimit,
		ctx:        ctx,
		cancel:     cancel,
		events:     make(chan Event, 4),
	}

	if interval > 0 && source != nil {
		w.wg.Add(1)
		go w.poll(newPollGate(minPollGap))
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of snapshot events. It is closed once the
// watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits once an in-flight fetch
// returns; use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll(gate *pollGate) {
	defer w.wg.Done()

	var previous window.Snapshot
	havePrevious := false

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		}

		if !gate.wait(w.ctx) {
			return
		}
		candidates, err := w.source.Windows(w.ctx)
		var evt Event
		if err != nil {
			if w.ctx.Err() != nil {
				return
			}
			events.Snapshot.Error("watcher", err)
			evt.Err = err
			havePrevious = false
		} else {
			snap := window.NewSnapshot(window.Truncate(candidates, w.fieldLimit))
			if havePrevious && sameSnapshot(previous, snap) {
				continue
			}
			previous, havePrevious = snap, true
			events.Snapshot.Taken("watcher", len(snap))
			evt.Snapshot = snap
		}

		select {
		case <-w.ctx.Done():
			return
		case w.events <- evt:
		}
	}
}

func sameSnapshot(a, b window.Snapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
