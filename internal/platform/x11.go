package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/atomicstack/window-switcher/internal/logging/events"
	"github.com/atomicstack/window-switcher/internal/window"
)

const processCacheSize = 512

// window types that are never switch targets
var skippedWindowTypes = map[string]bool{
	"_NET_WM_WINDOW_TYPE_DESKTOP": true,
	"_NET_WM_WINDOW_TYPE_DOCK":    true,
	"_NET_WM_WINDOW_TYPE_SPLASH":  true,
	"_NET_WM_WINDOW_TYPE_TOOLBAR": true,
	"_NET_WM_WINDOW_TYPE_MENU":    true,
}

const (
	stateHidden      = "_NET_WM_STATE_HIDDEN"
	stateSkipTaskbar = "_NET_WM_STATE_SKIP_TASKBAR"
)

// ewmhClient is the slice of an EWMH window manager the backend reads and
// drives.
type ewmhClient interface {
	ClientListStacking() ([]xproto.Window, error)
	ClientList() ([]xproto.Window, error)
	Title(win xproto.Window) string
	PID(win xproto.Window) (int, error)
	Desktop(win xproto.Window) (uint, error)
	WindowTypes(win xproto.Window) ([]string, error)
	States(win xproto.Window) ([]string, error)
	Class(win xproto.Window) (instance, class string, err error)
	RemoveState(win xproto.Window, state string) error
	Activate(win xproto.Window) error
	Close()
}

var dialX11 = dialXgb

// x11Backend talks EWMH to the window manager over the X connection.
type x11Backend struct {
	client   ewmhClient
	selfPID  int
	procRoot string
	names    *lru.Cache[int, string]
}

func openX11(opts Options) (Backend, error) {
	client, err := dialX11()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %v: %w", err, ErrUnsupported)
	}
	b, err := newX11Backend(client, opts.selfPID(), "/proc")
	if err != nil {
		client.Close()
		return nil, err
	}
	return b, nil
}

func newX11Backend(client ewmhClient, selfPID int, procRoot string) (*x11Backend, error) {
	names, err := lru.New[int, string](processCacheSize)
	if err != nil {
		return nil, err
	}
	return &x11Backend{client: client, selfPID: selfPID, procRoot: procRoot, names: names}, nil
}

func (b *x11Backend) Name() string { return "x11" }

func (b *x11Backend) Close() error {
	b.names.Purge()
	b.client.Close()
	return nil
}

// Windows lists managed client windows, topmost first. Sticky windows are
// kept; docks, desktops and taskbar-skipping windows are not.
func (b *x11Backend) Windows(ctx context.Context) ([]window.Candidate, error) {
	wins, err := b.client.ClientListStacking()
	if err == nil {
		slices.Reverse(wins)
	} else {
		// mapping order is the best available without stacking support
		if wins, err = b.client.ClientList(); err != nil {
			return nil, fmt.Errorf("read _NET_CLIENT_LIST: %w", err)
		}
	}

	candidates := make([]window.Candidate, 0, len(wins))
	for _, win := range wins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !b.switchable(win) {
			continue
		}
		pid, _ := b.client.PID(win)
		if pid != 0 && pid == b.selfPID {
			continue
		}
		candidates = append(candidates, window.Candidate{
			Handle:      handleForXID(win),
			PID:         pid,
			Title:       b.client.Title(win),
			ProcessName: b.processName(pid),
		})
	}
	return candidates, nil
}

func (b *x11Backend) switchable(win xproto.Window) bool {
	types, _ := b.client.WindowTypes(win)
	for _, t := range types {
		if skippedWindowTypes[t] {
			return false
		}
	}
	states, _ := b.client.States(win)
	return !slices.Contains(states, stateSkipTaskbar)
}

func (b *x11Backend) IsMinimized(h window.Handle) bool {
	win, ok := xidFor(h)
	if !ok {
		return false
	}
	states, err := b.client.States(win)
	if err != nil {
		events.Activation.CommandFailed(string(h), "_NET_WM_STATE", err)
		return false
	}
	return slices.Contains(states, stateHidden)
}

func (b *x11Backend) Restore(h window.Handle) {
	win, ok := xidFor(h)
	if !ok {
		return
	}
	if err := b.client.RemoveState(win, stateHidden); err != nil {
		events.Activation.CommandFailed(string(h), "restore", err)
	}
}

func (b *x11Backend) BringToForeground(h window.Handle) {
	win, ok := xidFor(h)
	if !ok {
		return
	}
	if err := b.client.Activate(win); err != nil {
		events.Activation.CommandFailed(string(h), "_NET_ACTIVE_WINDOW", err)
	}
}

// Preview reports the window's class, pid, desktop and state properties.
func (b *x11Backend) Preview(ctx context.Context, h window.Handle) ([]string, error) {
	win, ok := xidFor(h)
	if !ok {
		return nil, fmt.Errorf("invalid window handle %q", h)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lines := []string{"title:   " + b.client.Title(win)}
	if instance, class, err := b.client.Class(win); err == nil {
		lines = append(lines, fmt.Sprintf("class:   %s (%s)", class, instance))
	}
	if pid, err := b.client.PID(win); err == nil && pid > 0 {
		lines = append(lines,
			"process: "+b.processName(pid),
			"pid:     "+strconv.Itoa(pid))
	}
	if desktop, err := b.client.Desktop(win); err == nil {
		label := strconv.FormatUint(uint64(desktop), 10)
		if desktop == 0xFFFFFFFF {
			label = "all"
		}
		lines = append(lines, "desktop: "+label)
	}
	if states, err := b.client.States(win); err == nil && len(states) > 0 {
		short := make([]string, len(states))
		for i, s := range states {
			short[i] = strings.ToLower(strings.TrimPrefix(s, "_NET_WM_STATE_"))
		}
		lines = append(lines, "state:   "+strings.Join(short, ", "))
	}
	return lines, nil
}

// processName returns the base name of pid's executable. The exe link is
// preferred since comm is cut at 15 bytes.
func (b *x11Backend) processName(pid int) string {
	if pid <= 0 {
		return ""
	}
	if name, ok := b.names.Get(pid); ok {
		return name
	}
	dir := filepath.Join(b.procRoot, strconv.Itoa(pid))
	var name string
	if target, err := os.Readlink(filepath.Join(dir, "exe")); err == nil {
		name = filepath.Base(strings.TrimSuffix(target, " (deleted)"))
	} else if data, err := os.ReadFile(filepath.Join(dir, "comm")); err == nil {
		name = strings.TrimSpace(string(data))
	} else {
		return ""
	}
	b.names.Add(pid, name)
	return name
}

// handleForXID renders an X window id as 0x plus eight hex digits.
func handleForXID(win xproto.Window) window.Handle {
	return window.Handle(fmt.Sprintf("0x%08x", uint32(win)))
}

func xidFor(h window.Handle) (xproto.Window, bool) {
	raw := string(h)
	if !strings.HasPrefix(raw, "0x") {
		return 0, false
	}
	v, err := strconv.ParseUint(raw[2:], 16, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return xproto.Window(v), true
}
