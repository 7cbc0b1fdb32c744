package ui

import (
	"strings"

	"github.com/atomicstack/window-switcher/internal/logging/events"
	"github.com/atomicstack/window-switcher/internal/window"
	tea "github.com/charmbracelet/bubbletea"
)

type previewData struct {
	target       window.Handle
	label        string
	lines        []string
	err          string
	loading      bool
	seq          int
	scrollOffset int
}

type previewLoadedMsg struct {
	target window.Handle
	seq    int
	lines  []string
	err    error
}

// takePreviewCmd issues a load for the window last passed to RenderPreview
// when it differs from what is on screen.
func (m *Model) takePreviewCmd() tea.Cmd {
	if !m.previewDirty {
		return nil
	}
	m.previewDirty = false
	if !m.showPreview || m.previewer == nil {
		return nil
	}
	target := m.previewTarget
	if !target.Valid() {
		m.preview = nil
		return nil
	}
	if m.preview != nil && m.preview.target == target {
		return nil
	}
	m.previewSeq++
	seq := m.previewSeq
	m.preview = &previewData{
		target:  target,
		label:   m.labelFor(target),
		loading: true,
		seq:     seq,
	}
	events.Preview.Request(string(target), seq)
	ctx := m.ctx
	previewer := m.previewer
	return func() tea.Msg {
		lines, err := previewer.Preview(ctx, target)
		return previewLoadedMsg{target: target, seq: seq, lines: lines, err: err}
	}
}

func (m *Model) handlePreviewLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(previewLoadedMsg)
	if !ok {
		return nil
	}
	if m.preview == nil || m.preview.seq != loaded.seq || m.preview.target != loaded.target {
		events.Preview.Stale(string(loaded.target), loaded.seq, m.previewSeq)
		return nil
	}
	events.Preview.Loaded(string(loaded.target), loaded.seq, len(loaded.lines), loaded.err)
	m.preview.loading = false
	m.preview.scrollOffset = 0
	if loaded.err != nil {
		m.preview.err = loaded.err.Error()
		m.preview.lines = nil
		return nil
	}
	m.preview.err = ""
	m.preview.lines = trimTrailingBlank(loaded.lines)
	return nil
}

func (m *Model) labelFor(h window.Handle) string {
	for _, cand := range m.displayed {
		if cand.Handle == h {
			return cand.Label()
		}
	}
	return string(h)
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}
