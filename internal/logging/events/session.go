package events

import "github.com/atomicstack/window-switcher/internal/logging"

type SessionTracer struct{}

type sessionReason string

const (
	SessionReasonCommit   sessionReason = "commit"
	SessionReasonDismiss  sessionReason = "dismiss"
	SessionReasonTeardown sessionReason = "teardown"
)

var Session = SessionTracer{}

func (SessionTracer) Start(id string) {
	logging.Trace("session.start", map[string]interface{}{"id": id})
}

func (SessionTracer) Teardown(id string) {
	logging.Trace("session.teardown", map[string]interface{}{"id": id})
}

func (SessionTracer) Joined(id string, err error) {
	payload := map[string]interface{}{"id": id}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.joined", payload)
}

func (SessionTracer) Close(reason sessionReason) {
	logging.Trace("session.close", map[string]interface{}{"reason": string(reason)})
}
