package events

import "github.com/atomicstack/window-switcher/internal/logging"

type PromptTracer struct{}

type PreviewTracer struct{}

var (
	Prompt  = PromptTracer{}
	Preview = PreviewTracer{}
)

func (PromptTracer) Edit(op, text string, cursor int) {
	logging.Trace("prompt.edit", map[string]interface{}{
		"op":     op,
		"text":   text,
		"cursor": cursor,
	})
}

func (PreviewTracer) Request(handle string, seq int) {
	logging.Trace("preview.request", map[string]interface{}{"handle": handle, "seq": seq})
}

func (PreviewTracer) Loaded(handle string, seq, lines int, err error) {
	payload := map[string]interface{}{"handle": handle, "seq": seq, "lines": lines}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("preview.loaded", payload)
}

func (PreviewTracer) Stale(handle string, seq, current int) {
	logging.Trace("preview.stale", map[string]interface{}{"handle": handle, "seq": seq, "current": current})
}
