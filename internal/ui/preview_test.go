package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/window-switcher/internal/window"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func previewOptions() Options {
	return Options{Width: 120, Height: 20, ShowPreview: true}
}

func TestPreviewLoadsForSelection(t *testing.T) {
	fb := scenarioBackend()
	h := newTestHarness(t, fb, previewOptions())
	view := h.View()
	if !strings.Contains(view, "Preview: explorer.exe - Explorer") {
		t.Fatalf("expected preview title:\n%s", view)
	}
	if !strings.Contains(view, `C:\Users`) {
		t.Fatalf("expected preview body:\n%s", view)
	}

	h.Press(tea.KeyDown)
	if !strings.Contains(h.View(), "main.go") {
		t.Fatalf("expected preview to follow selection:\n%s", h.View())
	}
	want := []window.Handle{"h2", "h3"}
	if fmt.Sprint(fb.previewed) != fmt.Sprint(want) {
		t.Fatalf("unexpected preview requests %v", fb.previewed)
	}

	h.Type("code")
	if len(fb.previewed) != 2 {
		t.Fatalf("same window should not be previewed again, got %v", fb.previewed)
	}
}

func TestStalePreviewIsDropped(t *testing.T) {
	fb := scenarioBackend()
	h := newTestHarness(t, fb, previewOptions())
	h.Press(tea.KeyDown)
	h.Send(previewLoadedMsg{target: "h1", seq: 1, lines: []string{"stale text"}})
	m := h.Model()
	if m.preview == nil || m.preview.target != "h3" {
		t.Fatalf("expected preview to stay on h3, got %+v", m.preview)
	}
	if strings.Contains(h.View(), "stale text") {
		t.Fatalf("stale preview rendered:\n%s", h.View())
	}
}

func TestPreviewErrorIsRendered(t *testing.T) {
	fb := scenarioBackend()
	h := newTestHarness(t, fb, previewOptions())
	fb.previewErr = errors.New("window vanished")
	h.Press(tea.KeyDown)
	if !strings.Contains(h.View(), "window vanished") {
		t.Fatalf("expected preview error:\n%s", h.View())
	}
}

func TestPreviewDisabled(t *testing.T) {
	fb := scenarioBackend()
	opts := previewOptions()
	opts.ShowPreview = false
	h := newTestHarness(t, fb, opts)
	h.Press(tea.KeyDown)
	if len(fb.previewed) != 0 {
		t.Fatalf("expected no preview requests, got %v", fb.previewed)
	}
	if strings.Contains(h.View(), "Preview") {
		t.Fatalf("preview panel should be hidden:\n%s", h.View())
	}
}

func TestSidePanelFillsWidth(t *testing.T) {
	h := newTestHarness(t, scenarioBackend(), previewOptions())
	lines := strings.Split(h.View(), "\n")
	panelH := h.Model().panelHeight()
	if len(lines) != panelH+bottomBarRows {
		t.Fatalf("expected %d lines, got %d", panelH+bottomBarRows, len(lines))
	}
	for i := 0; i < panelH; i++ {
		if w := lipgloss.Width(lines[i]); w != 120 {
			t.Fatalf("line %d is %d columns wide: %q", i, w, lines[i])
		}
	}
}

func TestMouseWheelScrollsPreview(t *testing.T) {
	fb := scenarioBackend()
	long := make([]string, 30)
	for i := range long {
		long[i] = fmt.Sprintf("line %d", i+1)
	}
	fb.previews["h2"] = long
	opts := previewOptions()
	opts.Height = 12
	h := newTestHarness(t, fb, opts)
	if !strings.Contains(h.View(), " 8/30 ") {
		t.Fatalf("expected scroll indicator:\n%s", h.View())
	}
	h.Send(tea.MouseMsg{X: 100, Y: 4, Button: tea.MouseButtonWheelDown})
	if got := selectedHandle(t, h); got != "h2" {
		t.Fatalf("wheel over preview must not move selection, got %s", got)
	}
	if !strings.Contains(h.View(), " 11/30 ") {
		t.Fatalf("expected preview to scroll:\n%s", h.View())
	}
	for i := 0; i < 20; i++ {
		h.Send(tea.MouseMsg{X: 100, Y: 4, Button: tea.MouseButtonWheelDown})
	}
	if !strings.Contains(h.View(), " 30/30 ") {
		t.Fatalf("expected scroll to clamp at the end:\n%s", h.View())
	}
}
