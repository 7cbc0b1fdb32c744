package platform

import (
	"context"

	"github.com/atomicstack/window-switcher/internal/window"
)

type fakeBackend struct{}

func (*fakeBackend) Windows(context.Context) ([]window.Candidate, error) { return nil, nil }
func (*fakeBackend) IsMinimized(window.Handle) bool                      { return false }
func (*fakeBackend) Restore(window.Handle)                               {}
func (*fakeBackend) BringToForeground(window.Handle)                     {}
func (*fakeBackend) Preview(context.Context, window.Handle) ([]string, error) {
	return nil, nil
}
func (*fakeBackend) Name() string { return "fake" }
func (*fakeBackend) Close() error { return nil }
