// Package query filters window snapshots against the text typed into the
// switcher prompt.
//
// A query is split on whitespace into tokens. A candidate matches when every
// token occurs in its title or in its process name. Folding is ASCII only:
// bytes outside A-Z are compared as they are, so "É" and "é" stay distinct.
package query

import (
	"fmt"
	"strings"

	"github.com/atomicstack/window-switcher/internal/window"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchSet holds strictly increasing indices into the snapshot it was
// computed from.
type MatchSet []int

// Mode selects how a single token is tested against a field.
type Mode int

const (
	ModeSubstring Mode = iota
	ModeFuzzy
)

func (m Mode) String() string {
	switch m {
	case ModeFuzzy:
		return "fuzzy"
	default:
		return "substring"
	}
}

// ParseMode converts a configuration value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return ModeSubstring, nil
	case "fuzzy":
		return ModeFuzzy, nil
	default:
		return ModeSubstring, fmt.Errorf("unknown match mode %q (expected substring or fuzzy)", s)
	}
}

// Matcher filters snapshots using one Mode.
type Matcher struct {
	Mode Mode
}

// Filter applies the default substring matcher.
func Filter(query string, snap window.Snapshot) MatchSet {
	return Matcher{}.Filter(query, snap)
}

// Filter returns the indices of snap matching every token of query. A query
// without tokens matches the whole snapshot.
func (m Matcher) Filter(query string, snap window.Snapshot) MatchSet {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		all := make(MatchSet, len(snap))
		for i := range snap {
			all[i] = i
		}
		return all
	}
	match := m.tokenMatch()
	out := make(MatchSet, 0, len(snap))
	for i, c := range snap {
		title := foldASCII(c.Title)
		process := foldASCII(c.ProcessName)
		if matchesAll(tokens, title, process, match) {
			out = append(out, i)
		}
	}
	return out
}

func (m Matcher) tokenMatch() func(token, field string) bool {
	if m.Mode == ModeFuzzy {
		return fuzzy.MatchFold
	}
	return strings.Contains
}

func matchesAll(tokens []string, title, process string, match func(string, string) bool) bool {
	for _, tok := range tokens {
		if !match(tok, title) && !match(tok, process) {
			return false
		}
	}
	return true
}

// Tokenize splits query on whitespace runs and folds each token to lower
// case. Empty tokens never appear in the result.
func Tokenize(query string) []string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return nil
	}
	for i, f := range fields {
		fields[i] = foldASCII(f)
	}
	return fields
}

// IsEmpty reports whether query carries no tokens.
func IsEmpty(query string) bool {
	return len(strings.Fields(query)) == 0
}

func foldASCII(s string) string {
	upper := -1
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			upper = i
			break
		}
	}
	if upper < 0 {
		return s
	}
	b := []byte(s)
	for i := upper; i < len(b); i++ {
		if c := b[i]; 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
