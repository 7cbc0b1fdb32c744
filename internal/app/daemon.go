package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/atomicstack/window-switcher/internal/logging"
	"github.com/atomicstack/window-switcher/internal/logging/events"
	"github.com/atomicstack/window-switcher/internal/platform"
	"github.com/atomicstack/window-switcher/internal/query"
	"github.com/atomicstack/window-switcher/internal/session"
)

// triggerSource returns a channel that fires whenever a new overlay should
// open, and a func releasing it.
var triggerSource = func() (<-chan os.Signal, func(), error) {
	if len(triggerSignals) == 0 {
		return nil, nil, fmt.Errorf("daemon mode: %w", platform.ErrUnsupported)
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, triggerSignals...)
	return ch, func() { signal.Stop(ch) }, nil
}

// runDaemon opens a fresh overlay on every trigger, replacing any overlay
// still on screen, until ctx is cancelled.
func runDaemon(ctx context.Context, cfg Config, be platform.Backend, matcher query.Matcher) error {
	triggers, release, err := triggerSource()
	if err != nil {
		return err
	}
	defer release()

	mgr := session.NewManager()
	defer mgr.Close()
	factory := newSessionFactory(ctx, cfg, be, matcher)

	for {
		select {
		case <-ctx.Done():
			events.App.Stop("context")
			return nil
		case sig, ok := <-triggers:
			if !ok {
				events.App.Stop("triggers-closed")
				return nil
			}
			events.App.Trigger(sig.String())
			if _, err := mgr.Trigger(ctx, factory); err != nil {
				logging.Error(fmt.Errorf("start session: %w", err))
			}
		}
	}
}
