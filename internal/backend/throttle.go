package backend

import (
	"context"
	"sync"
	"time"
)

// pollGate keeps successive enumerations at least gap apart.
type pollGate struct {
	gap time.Duration

	mu   sync.Mutex
	last time.Time
}

func newPollGate(gap time.Duration) *pollGate {
	return &pollGate{gap: gap}
}

// wait reserves the next slot and blocks until it arrives. It returns false
// when ctx is done first.
func (g *pollGate) wait(ctx context.Context) bool {
	if g == nil || g.gap <= 0 {
		return ctx.Err() == nil
	}
	g.mu.Lock()
	now := time.Now()
	slot := g.last.Add(g.gap)
	if slot.Before(now) {
		slot = now
	}
	g.last = slot
	g.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
