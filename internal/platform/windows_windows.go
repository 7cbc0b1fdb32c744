//go:build windows

package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/atomicstack/window-switcher/internal/logging/events"
	"github.com/atomicstack/window-switcher/internal/window"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procIsWindowEnabled          = user32.NewProc("IsWindowEnabled")
	procIsIconic                 = user32.NewProc("IsIconic")
	procGetWindow                = user32.NewProc("GetWindow")
	procGetWindowLongW           = user32.NewProc("GetWindowLongW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procShowWindow               = user32.NewProc("ShowWindow")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
)

// Negative GetWindowLongW indices must be non-constant to convert to uintptr.
var (
	gwlStyle   int32 = -16
	gwlExStyle int32 = -20
)

const (
	gwOwner         = 4
	wsMinimizeBox   = 0x00020000
	wsExToolWindow  = 0x00000080
	swRestore       = 9
	classNameBuffer = 256
)

// win32Backend talks to user32 directly.
type win32Backend struct {
	selfPID uint32
}

func openWindows(opts Options) (Backend, error) {
	if err := procIsWindowVisible.Find(); err != nil {
		return nil, fmt.Errorf("user32: %w", ErrUnsupported)
	}
	return &win32Backend{selfPID: uint32(opts.selfPID())}, nil
}

func (b *win32Backend) Name() string { return "windows" }

func (b *win32Backend) Close() error { return nil }

// enumState carries one EnumWindows pass through the callback's lparam.
type enumState struct {
	ctx   context.Context
	hwnds []uintptr
}

// enumWindowsCallback is shared by every enumeration. Callbacks are never
// released and the runtime caps how many exist.
var enumWindowsCallback = syscall.NewCallback(func(hwnd, lparam uintptr) uintptr {
	state := (*enumState)(unsafe.Pointer(lparam))
	if state.ctx.Err() != nil {
		return 0
	}
	if switchable(hwnd) {
		state.hwnds = append(state.hwnds, hwnd)
	}
	return 1
})

// Windows walks the top-level windows in z-order, topmost first.
func (b *win32Backend) Windows(ctx context.Context) ([]window.Candidate, error) {
	state := &enumState{ctx: ctx}
	enumErr := windows.EnumWindows(enumWindowsCallback, unsafe.Pointer(state))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if enumErr != nil {
		return nil, fmt.Errorf("EnumWindows: %w", enumErr)
	}
	hwnds := state.hwnds

	candidates := make([]window.Candidate, 0, len(hwnds))
	for _, hwnd := range hwnds {
		var pid uint32
		procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
		if pid == b.selfPID {
			continue
		}
		candidates = append(candidates, window.Candidate{
			Handle:      handleFor(hwnd),
			PID:         int(pid),
			Title:       windowText(hwnd),
			ProcessName: processImageName(pid),
		})
	}
	return candidates, nil
}

func (b *win32Backend) IsMinimized(h window.Handle) bool {
	hwnd, ok := hwndFor(h)
	if !ok {
		return false
	}
	ret, _, _ := procIsIconic.Call(hwnd)
	return ret != 0
}

func (b *win32Backend) Restore(h window.Handle) {
	if hwnd, ok := hwndFor(h); ok {
		procShowWindow.Call(hwnd, swRestore)
	}
}

func (b *win32Backend) BringToForeground(h window.Handle) {
	hwnd, ok := hwndFor(h)
	if !ok {
		return
	}
	if ret, _, err := procSetForegroundWindow.Call(hwnd); ret == 0 {
		events.Activation.CommandFailed(string(h), "SetForegroundWindow", err)
	}
}

func (b *win32Backend) Preview(_ context.Context, h window.Handle) ([]string, error) {
	hwnd, ok := hwndFor(h)
	if !ok {
		return nil, fmt.Errorf("invalid window handle %q", h)
	}
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	buf := make([]uint16, classNameBuffer)
	procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	state := "normal"
	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		state = "minimized"
	}
	return []string{
		"title:   " + windowText(hwnd),
		"class:   " + windows.UTF16ToString(buf),
		"process: " + processImagePath(pid),
		"pid:     " + strconv.FormatUint(uint64(pid), 10),
		"state:   " + state,
	}, nil
}

// switchable mirrors the alt-tab rules: visible, enabled, unowned top-level
// windows with a minimize box that are not tool windows.
func switchable(hwnd uintptr) bool {
	if ret, _, _ := procIsWindowVisible.Call(hwnd); ret == 0 {
		return false
	}
	if ret, _, _ := procIsWindowEnabled.Call(hwnd); ret == 0 {
		return false
	}
	if owner, _, _ := procGetWindow.Call(hwnd, gwOwner); owner != 0 {
		return false
	}
	style, _, _ := procGetWindowLongW.Call(hwnd, uintptr(int32(gwlStyle)))
	if uint32(style)&wsMinimizeBox == 0 {
		return false
	}
	exStyle, _, _ := procGetWindowLongW.Call(hwnd, uintptr(int32(gwlExStyle)))
	return uint32(exStyle)&wsExToolWindow == 0
}

func windowText(hwnd uintptr) string {
	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}

func processImagePath(pid uint32) string {
	if pid == 0 {
		return ""
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)
	buf := make([]uint16, windows.MAX_LONG_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	return windows.UTF16ToString(buf[:size])
}

func processImageName(pid uint32) string {
	path := processImagePath(pid)
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

func handleFor(hwnd uintptr) window.Handle {
	return window.Handle(fmt.Sprintf("0x%x", hwnd))
}

func hwndFor(h window.Handle) (uintptr, bool) {
	raw := strings.TrimPrefix(string(h), "0x")
	v, err := strconv.ParseUint(raw, 16, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uintptr(v), true
}
