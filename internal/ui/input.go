package ui

import (
	"strings"

	"github.com/atomicstack/window-switcher/internal/logging/events"
	"github.com/atomicstack/window-switcher/internal/switcher"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) updateQueryCursor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.queryCursor, cmd = m.queryCursor.Update(msg)
	return cmd
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.closed {
		return nil
	}
	switch keyMsg.String() {
	case "enter":
		return m.dispatch(switcher.Commit{})
	case "esc", "ctrl+c":
		return m.dispatch(switcher.Dismiss{})
	case "ctrl+r":
		m.errMsg = ""
		m.preview = nil
		return m.dispatch(switcher.Refresh{})
	case "up", "ctrl+p", "shift+tab":
		return m.dispatch(switcher.SelectionMoved{Direction: switcher.Previous})
	case "down", "ctrl+n", "tab":
		return m.dispatch(switcher.SelectionMoved{Direction: switcher.Next})
	case "pgup":
		return m.dispatch(switcher.SelectionMoved{Direction: switcher.PageUp})
	case "pgdown":
		return m.dispatch(switcher.SelectionMoved{Direction: switcher.PageDown})
	case "home":
		return m.dispatch(switcher.SelectionMoved{Direction: switcher.First})
	case "end":
		return m.dispatch(switcher.SelectionMoved{Direction: switcher.Last})
	}
	return m.handleTextInput(keyMsg)
}

// handleTextInput applies prompt edits. Edits that change the text start a
// new filter cycle; caret-only moves just redraw the caret.
func (m *Model) handleTextInput(msg tea.KeyMsg) tea.Cmd {
	before := m.prompt
	var op string
	switch msg.String() {
	case "backspace", "ctrl+h":
		op = "backspace"
		m.prompt.DeleteRuneBackward()
	case "ctrl+w", "alt+backspace":
		op = "delete-word"
		m.prompt.DeleteWordBackward()
	case "ctrl+u":
		op = "clear"
		m.prompt.Clear()
	case "ctrl+a":
		op = "start"
		m.prompt.MoveStart()
	case "ctrl+e":
		op = "end"
		m.prompt.MoveEnd()
	case "alt+b", "ctrl+left":
		op = "word-backward"
		m.prompt.MoveWordBackward()
	case "alt+f", "ctrl+right":
		op = "word-forward"
		m.prompt.MoveWordForward()
	case "left":
		op = "left"
		m.prompt.MoveRuneBackward()
	case "right":
		op = "right"
		m.prompt.MoveRuneForward()
	default:
		text := insertableText(msg)
		if text == "" {
			return nil
		}
		op = "insert"
		m.prompt.Insert(text)
	}

	if m.prompt == before {
		return nil
	}
	events.Prompt.Edit(op, m.prompt.Text, m.prompt.CursorPos())
	if m.prompt.CursorPos() != before.CursorPos() {
		m.cursorDirty = true
	}
	if m.prompt.Text == before.Text {
		return nil
	}
	m.errMsg = ""
	return m.dispatch(switcher.QueryChanged{Text: m.prompt.Text})
}

// insertableText returns the text a key press types into the prompt, or ""
// for keys that do not type anything.
func insertableText(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeySpace:
		return " "
	case tea.KeyRunes:
		if msg.Alt {
			return ""
		}
		text := string(msg.Runes)
		if msg.Paste {
			text = strings.Join(strings.Fields(text), " ")
		}
		return text
	}
	return ""
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || m.closed {
		return nil
	}
	overPreview := m.hasSidePreview() && ev.X >= m.listColumnWidth()
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		if overPreview {
			m.scrollPreview(-previewScrollStep)
			return nil
		}
		return m.dispatch(switcher.SelectionMoved{Direction: switcher.Previous})
	case tea.MouseButtonWheelDown:
		if overPreview {
			m.scrollPreview(previewScrollStep)
			return nil
		}
		return m.dispatch(switcher.SelectionMoved{Direction: switcher.Next})
	case tea.MouseButtonLeft:
		if ev.Action != tea.MouseActionPress {
			return nil
		}
		idx, ok := m.rowAt(ev.X, ev.Y)
		if !ok {
			return nil
		}
		// a click on the highlighted row switches to it
		if idx == m.selected {
			return m.dispatch(switcher.Commit{})
		}
		return m.dispatch(switcher.SelectIndex{Index: idx})
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.engine.SetPageSize(m.maxVisibleItems())
	m.syncViewport()
	return nil
}

// handleBlurMsg closes the overlay when its terminal loses focus.
func (m *Model) handleBlurMsg(tea.Msg) tea.Cmd {
	if m.closed {
		return nil
	}
	return m.dispatch(switcher.Dismiss{})
}
