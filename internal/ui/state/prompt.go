// Package state holds editing state for the query prompt.
package state

import "unicode"

// Prompt is the query text plus a rune-indexed caret.
type Prompt struct {
	Text   string
	Cursor int
}

// Set replaces the text and clamps the caret into range.
func (p *Prompt) Set(text string, cursor int) {
	p.Text = text
	n := len([]rune(text))
	if cursor < 0 {
		cursor = 0
	}
	if cursor > n {
		cursor = n
	}
	p.Cursor = cursor
}

// CursorPos returns the caret offset in runes.
func (p *Prompt) CursorPos() int {
	n := len([]rune(p.Text))
	if p.Cursor < 0 {
		return 0
	}
	if p.Cursor > n {
		return n
	}
	return p.Cursor
}

// Insert adds text at the caret.
func (p *Prompt) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(p.Text)
	pos := p.CursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	p.Set(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward removes the rune before the caret.
func (p *Prompt) DeleteRuneBackward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if pos == 0 {
		return false
	}
	updated := append(runes[:pos-1:pos-1], runes[pos:]...)
	p.Set(string(updated), pos-1)
	return true
}

// DeleteWordBackward removes the word before the caret along with any
// whitespace between it and the caret.
func (p *Prompt) DeleteWordBackward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	if pos == 0 {
		return false
	}
	i := wordStartBefore(runes, pos)
	updated := append(runes[:i:i], runes[pos:]...)
	p.Set(string(updated), i)
	return true
}

// Clear empties the prompt.
func (p *Prompt) Clear() bool {
	if p.Text == "" {
		return false
	}
	p.Set("", 0)
	return true
}

func (p *Prompt) MoveStart() bool {
	if p.CursorPos() == 0 {
		return false
	}
	p.Cursor = 0
	return true
}

func (p *Prompt) MoveEnd() bool {
	end := len([]rune(p.Text))
	if p.CursorPos() == end {
		return false
	}
	p.Cursor = end
	return true
}

func (p *Prompt) MoveWordBackward() bool {
	pos := p.CursorPos()
	i := wordStartBefore([]rune(p.Text), pos)
	if i == pos {
		return false
	}
	p.Cursor = i
	return true
}

func (p *Prompt) MoveWordForward() bool {
	runes := []rune(p.Text)
	pos := p.CursorPos()
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	p.Cursor = i
	return true
}

func (p *Prompt) MoveRuneBackward() bool {
	pos := p.CursorPos()
	if pos == 0 {
		return false
	}
	p.Cursor = pos - 1
	return true
}

func (p *Prompt) MoveRuneForward() bool {
	pos := p.CursorPos()
	if pos >= len([]rune(p.Text)) {
		return false
	}
	p.Cursor = pos + 1
	return true
}

func wordStartBefore(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
