package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/window-switcher/internal/window"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestViewShowsHeaderAndAlignedRows(t *testing.T) {
	h := newTestHarness(t, scenarioBackend(), Options{BackendName: "x11", ShowFooter: true})
	view := h.View()
	if !strings.Contains(view, "window-switcher · 3/3 windows · x11") {
		t.Fatalf("missing header:\n%s", view)
	}
	if !strings.Contains(view, footerText) {
		t.Fatalf("missing footer:\n%s", view)
	}
	lines := strings.Split(view, "\n")
	var notepad, code string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "Notepad"):
			notepad = line
		case strings.Contains(line, "Visual Studio Code"):
			code = line
		}
	}
	if notepad == "" || code == "" {
		t.Fatalf("expected both rows in view:\n%s", view)
	}
	if strings.Index(notepad, "Notepad") != strings.Index(code, "Visual") {
		t.Fatalf("title column not aligned:\n%q\n%q", notepad, code)
	}
}

func TestViewPromptShowsQueryAndPlaceholder(t *testing.T) {
	h := newTestHarness(t, scenarioBackend(), Options{})
	if !strings.Contains(h.View(), placeholderText) {
		t.Fatalf("expected placeholder for empty query:\n%s", h.View())
	}
	h.Type("note")
	view := h.View()
	if strings.Contains(view, placeholderText) {
		t.Fatalf("placeholder should disappear once typing")
	}
	if !strings.Contains(view, "> note") {
		t.Fatalf("expected query in prompt:\n%s", view)
	}
	if !strings.Contains(view, "1/3 windows") {
		t.Fatalf("expected match count in header:\n%s", view)
	}
}

func TestViewRespectsWidth(t *testing.T) {
	fb := scenarioBackend()
	fb.windows[2].Title = strings.Repeat("very long title ", 10)
	h := newTestHarness(t, fb, Options{Width: 30, Height: 10})
	for i, line := range strings.Split(h.View(), "\n") {
		if w := lipgloss.Width(line); w > 30 {
			t.Fatalf("line %d is %d columns wide: %q", i, w, line)
		}
	}
}

func TestViewScrollsToSelection(t *testing.T) {
	fb := &fakeBackend{minimized: map[window.Handle]bool{}}
	for i := 0; i < 20; i++ {
		fb.windows = append(fb.windows, window.Candidate{
			Handle:      window.Handle(fmt.Sprintf("w%02d", i)),
			Title:       fmt.Sprintf("window %02d", i),
			ProcessName: "app",
		})
	}
	h := newTestHarness(t, fb, Options{Width: 40, Height: 8})
	h.Press(tea.KeyEnd)
	view := h.View()
	if !strings.Contains(view, "window 19") {
		t.Fatalf("expected last row visible:\n%s", view)
	}
	if strings.Contains(view, "window 00") {
		t.Fatalf("expected first row scrolled away:\n%s", view)
	}
	if got := len(strings.Split(view, "\n")); got > 8 {
		t.Fatalf("view taller than the terminal: %d lines", got)
	}
}

func TestMouseClickSelectsRow(t *testing.T) {
	h := newTestHarness(t, scenarioBackend(), Options{Width: 40, Height: 20})
	h.Send(tea.MouseMsg{X: 4, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := selectedHandle(t, h); got != "h3" {
		t.Fatalf("expected click on third row to select h3, got %s", got)
	}
	h.Send(tea.MouseMsg{X: 4, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := selectedHandle(t, h); got != "h3" {
		t.Fatalf("click on header should not move selection, got %s", got)
	}
	h.Send(tea.MouseMsg{X: 4, Y: 5, Button: tea.MouseButtonWheelUp})
	if got := selectedHandle(t, h); got != "h2" {
		t.Fatalf("expected wheel up to move selection, got %s", got)
	}
}

func TestMouseClickOnSelectedRowCommits(t *testing.T) {
	fb := scenarioBackend()
	h := newTestHarness(t, fb, Options{Width: 40, Height: 20})
	h.Send(tea.MouseMsg{X: 4, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if h.Model().Closed() || len(fb.activity) != 0 {
		t.Fatalf("first click should only select, activity %v", fb.activity)
	}
	h.Send(tea.MouseMsg{X: 4, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if h.Model().Closed() {
		t.Fatalf("release must not commit")
	}
	h.Send(tea.MouseMsg{X: 4, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if want := []string{"raise h3"}; fmt.Sprint(fb.activity) != fmt.Sprint(want) {
		t.Fatalf("expected click on selected row to activate h3, got %v", fb.activity)
	}
	if !h.Model().Closed() || !h.Quit() {
		t.Fatalf("expected click commit to close the session")
	}
}

func TestFitWidth(t *testing.T) {
	if got := fitWidth("abc", 5); got != "abc  " {
		t.Fatalf("expected padding, got %q", got)
	}
	if got := fitWidth("abcdef", 4); lipgloss.Width(got) != 4 || !strings.HasSuffix(got, "…") {
		t.Fatalf("expected truncation with ellipsis, got %q", got)
	}
	if got := fitWidth("abc", 0); got != "" {
		t.Fatalf("expected empty string for zero width, got %q", got)
	}
}
