package events

import "github.com/atomicstack/window-switcher/internal/logging"

type QueryTracer struct{}

type SelectionTracer struct{}

type ActivationTracer struct{}

type SnapshotTracer struct{}

var (
	Query      = QueryTracer{}
	Selection  = SelectionTracer{}
	Activation = ActivationTracer{}
	Snapshot   = SnapshotTracer{}
)

func (QueryTracer) Change(query string, matches, displayed int) {
	logging.Trace("query.change", map[string]interface{}{
		"query":     query,
		"matches":   matches,
		"displayed": displayed,
	})
}

func (QueryTracer) Fallback(query string, total int) {
	logging.Trace("query.fallback", map[string]interface{}{"query": query, "total": total})
}

func (SelectionTracer) Move(direction string, index int) {
	logging.Trace("selection.move", map[string]interface{}{"direction": direction, "index": index})
}

func (SelectionTracer) Reset(index int, emptyQuery bool) {
	logging.Trace("selection.reset", map[string]interface{}{"index": index, "emptyQuery": emptyQuery})
}

func (ActivationTracer) Request(handle string, restored bool) {
	logging.Trace("activation.request", map[string]interface{}{"handle": handle, "restored": restored})
}

func (ActivationTracer) Stale(handle string) {
	logging.Trace("activation.stale", map[string]interface{}{"handle": handle})
}

func (ActivationTracer) CommandFailed(handle, op string, err error) {
	if err == nil {
		return
	}
	logging.Trace("activation.command-failed", map[string]interface{}{"handle": handle, "op": op, "error": err.Error()})
}

func (SnapshotTracer) Taken(source string, count int) {
	logging.Trace("snapshot.taken", map[string]interface{}{"source": source, "count": count})
}

func (SnapshotTracer) Error(source string, err error) {
	if err == nil {
		return
	}
	logging.Trace("snapshot.error", map[string]interface{}{"source": source, "error": err.Error()})
}
