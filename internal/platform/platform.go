// Package platform adapts window systems to the switcher: enumeration of
// candidate windows, activation requests and preview text.
package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/atomicstack/window-switcher/internal/activation"
	"github.com/atomicstack/window-switcher/internal/window"
)

var (
	// ErrUnsupported is returned when a backend cannot run on this host.
	ErrUnsupported = errors.New("backend not supported on this platform")
	// ErrUnknownBackend is returned for names nothing was registered under.
	ErrUnknownBackend = errors.New("unknown backend")
)

// Enumerator lists candidate windows, front-to-back, excluding the
// switcher's own windows.
type Enumerator interface {
	Windows(ctx context.Context) ([]window.Candidate, error)
}

// Previewer describes a window as a handful of text lines.
type Previewer interface {
	Preview(ctx context.Context, h window.Handle) ([]string, error)
}

// Backend bundles everything the switcher needs from a window system.
type Backend interface {
	Enumerator
	activation.Port
	Previewer
	Name() string
	Close() error
}

// Options configure backend construction.
type Options struct {
	// Socket is the tmux server socket; empty resolves the default.
	Socket string
	// Filter is a tmux list-windows filter expression.
	Filter string
	// SelfPID is excluded from enumeration. Zero means the current process.
	SelfPID int
}

func (o Options) selfPID() int {
	if o.SelfPID != 0 {
		return o.SelfPID
	}
	return os.Getpid()
}

// Factory builds a backend.
type Factory func(Options) (Backend, error)

var factories = map[string]Factory{
	"x11":     openX11,
	"tmux":    openTmux,
	"windows": openWindows,
}

// Register adds or replaces a backend factory.
func Register(name string, f Factory) {
	factories[strings.ToLower(strings.TrimSpace(name))] = f
}

// Names lists registered backends.
func Names() []string {
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Open builds the named backend. "auto" or an empty name picks one for the
// current host.
func Open(name string, opts Options) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		name = Detect(runtime.GOOS, os.Getenv)
		if name == "" {
			return nil, fmt.Errorf("auto-detect backend: %w", ErrUnsupported)
		}
	}
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, name)
	}
	b, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", name, err)
	}
	return b, nil
}

// Detect picks a backend name from the OS and environment. It returns an
// empty string when nothing fits.
func Detect(goos string, getenv func(string) string) string {
	switch {
	case goos == "windows":
		return "windows"
	case getenv("DISPLAY") != "":
		return "x11"
	case getenv("TMUX") != "":
		return "tmux"
	default:
		return ""
	}
}
