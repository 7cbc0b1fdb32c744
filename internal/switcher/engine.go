// Package switcher owns one filter cycle of the overlay: the current
// snapshot, the query, its match set, the displayed list and the selection.
// Every input arrives through Engine.Dispatch.
package switcher

import (
	"context"
	"fmt"

	"github.com/atomicstack/window-switcher/internal/activation"
	"github.com/atomicstack/window-switcher/internal/logging"
	"github.com/atomicstack/window-switcher/internal/logging/events"
	"github.com/atomicstack/window-switcher/internal/query"
	"github.com/atomicstack/window-switcher/internal/selection"
	"github.com/atomicstack/window-switcher/internal/window"
)

// Provider enumerates candidate windows.
type Provider interface {
	Windows(ctx context.Context) ([]window.Candidate, error)
}

// Sink receives render requests whenever the displayed list or the
// selection changes. selected is selection.None for an empty list.
type Sink interface {
	RenderList(displayed []window.Candidate, selected int)
	RenderPreview(h window.Handle)
}

// Options tune filtering and navigation.
type Options struct {
	Matcher    query.Matcher
	FieldLimit int
	PageSize   int
}

// Engine is single-threaded: Dispatch must only be called from the owning
// session's event loop.
type Engine struct {
	ctx      context.Context
	provider Provider
	sink     Sink
	resolver *activation.Resolver
	opts     Options

	text      string
	snap      window.Snapshot
	matches   query.MatchSet
	displayed []window.Candidate
	sel       *selection.State
	closed    bool
}

// New builds an engine. Nothing is enumerated until the first QueryChanged
// or Refresh event.
func New(ctx context.Context, provider Provider, port activation.Port, sink Sink, opts Options) *Engine {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Engine{
		ctx:      ctx,
		provider: provider,
		sink:     sink,
		resolver: activation.NewResolver(port),
		opts:     opts,
		sel:      selection.New(),
	}
}

// Dispatch applies ev and reports the outcome. Once closed the engine
// ignores every event.
func (e *Engine) Dispatch(ev Event) Result {
	if e.closed {
		return Result{Closed: true}
	}
	var res Result
	switch ev := ev.(type) {
	case QueryChanged:
		e.text = ev.Text
		e.applySnapshot(e.capture(), false)
		res.Changed = true
	case Refresh:
		e.applySnapshot(e.capture(), false)
		res.Changed = true
	case SnapshotUpdated:
		e.applySnapshot(ev.Snapshot, true)
		res.Changed = true
	case SelectionMoved:
		res.Changed = e.move(ev.Direction)
	case SelectIndex:
		res.Changed = e.sel.Set(ev.Index)
	case Commit:
		res.Activated = e.commit()
		e.closed = true
		events.Session.Close(events.SessionReasonCommit)
	case Dismiss:
		e.closed = true
		events.Session.Close(events.SessionReasonDismiss)
	default:
		return res
	}
	res.Closed = e.closed
	if res.Changed && !e.closed {
		e.notify()
	}
	return res
}

// SetPageSize changes how far PageUp and PageDown move, normally the number
// of rows that fit on screen.
func (e *Engine) SetPageSize(n int) {
	e.opts.PageSize = n
}

// Query returns the current query text.
func (e *Engine) Query() string { return e.text }

// Snapshot returns the snapshot of the current filter cycle.
func (e *Engine) Snapshot() window.Snapshot { return e.snap }

// Matches returns the match set of the current filter cycle.
func (e *Engine) Matches() query.MatchSet { return e.matches }

// Displayed returns the rows currently on screen: the matches, or the whole
// snapshot when nothing matched.
func (e *Engine) Displayed() []window.Candidate { return e.displayed }

// Selection exposes the selection state for viewport rendering.
func (e *Engine) Selection() *selection.State { return e.sel }

// Closed reports whether the engine has been committed or dismissed.
func (e *Engine) Closed() bool { return e.closed }

// Selected returns the highlighted candidate.
func (e *Engine) Selected() (window.Candidate, bool) {
	idx, ok := e.sel.Current()
	if !ok || idx >= len(e.displayed) {
		return window.Candidate{}, false
	}
	return e.displayed[idx], true
}

func (e *Engine) capture() window.Snapshot {
	if e.provider == nil {
		return nil
	}
	candidates, err := e.provider.Windows(e.ctx)
	if err != nil {
		logging.Error(fmt.Errorf("enumerate windows: %w", err))
		events.Snapshot.Error("engine", err)
		return nil
	}
	snap := window.NewSnapshot(window.Truncate(candidates, e.opts.FieldLimit))
	events.Snapshot.Taken("engine", len(snap))
	return snap
}

// applySnapshot replaces the snapshot and re-filters. With keep set, the
// previously highlighted window stays highlighted when it is still shown.
func (e *Engine) applySnapshot(snap window.Snapshot, keep bool) {
	var previous window.Handle
	if keep {
		if cand, ok := e.Selected(); ok {
			previous = cand.Handle
		}
	}

	e.snap = snap
	e.matches = e.opts.Matcher.Filter(e.text, snap)
	if len(e.matches) > 0 {
		e.displayed = snap.Select(e.matches)
	} else {
		e.displayed = []window.Candidate(snap)
		if len(snap) > 0 {
			events.Query.Fallback(e.text, len(snap))
		}
	}
	events.Query.Change(e.text, len(e.matches), len(e.displayed))

	emptyQuery := query.IsEmpty(e.text)
	e.sel.Reset(len(e.displayed), emptyQuery)
	if previous.Valid() {
		for i, cand := range e.displayed {
			if cand.Handle == previous {
				e.sel.Set(i)
				return
			}
		}
	}
	idx, _ := e.sel.Current()
	events.Selection.Reset(idx, emptyQuery)
}

func (e *Engine) move(dir Direction) bool {
	var moved bool
	switch dir {
	case Next:
		moved = e.sel.MoveNext()
	case Previous:
		moved = e.sel.MovePrevious()
	case First:
		moved = e.sel.MoveFirst()
	case Last:
		moved = e.sel.MoveLast()
	case PageUp:
		moved = e.sel.MovePageUp(e.opts.PageSize)
	case PageDown:
		moved = e.sel.MovePageDown(e.opts.PageSize)
	}
	if moved {
		idx, _ := e.sel.Current()
		events.Selection.Move(dir.String(), idx)
	}
	return moved
}

func (e *Engine) commit() bool {
	cand, ok := e.Selected()
	if !ok {
		return false
	}
	return e.resolver.Activate(e.snap, cand.Handle)
}

func (e *Engine) notify() {
	if e.sink == nil {
		return
	}
	idx, ok := e.sel.Current()
	if !ok {
		idx = selection.None
	}
	e.sink.RenderList(e.displayed, idx)
	var h window.Handle
	if cand, ok := e.Selected(); ok {
		h = cand.Handle
	}
	e.sink.RenderPreview(h)
}
