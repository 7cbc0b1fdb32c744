package window

import "unicode/utf8"

// Handle is an opaque identity for a top-level window. Backends encode
// their native id into it; the zero value is the null handle.
type Handle string

// Valid reports whether h refers to a window at all.
func (h Handle) Valid() bool {
	return h != ""
}

// Candidate describes one switchable window captured by a snapshot.
type Candidate struct {
	Handle      Handle `json:"handle" yaml:"handle"`
	PID         int    `json:"pid" yaml:"pid"`
	Title       string `json:"title" yaml:"title"`
	ProcessName string `json:"process" yaml:"process"`
}

// Label renders the candidate the way the list shows it.
func (c Candidate) Label() string {
	switch {
	case c.ProcessName == "":
		return c.Title
	case c.Title == "":
		return c.ProcessName
	default:
		return c.ProcessName + " - " + c.Title
	}
}

// Snapshot is an ordered capture of candidates in enumeration order.
type Snapshot []Candidate

// NewSnapshot builds a snapshot from raw enumeration output. Null handles
// and repeated handles are dropped so every handle appears at most once.
func NewSnapshot(candidates []Candidate) Snapshot {
	if len(candidates) == 0 {
		return nil
	}
	seen := make(map[Handle]struct{}, len(candidates))
	snap := make(Snapshot, 0, len(candidates))
	for _, c := range candidates {
		if !c.Handle.Valid() {
			continue
		}
		if _, dup := seen[c.Handle]; dup {
			continue
		}
		seen[c.Handle] = struct{}{}
		snap = append(snap, c)
	}
	return snap
}

// IndexOf returns the position of h in the snapshot or -1.
func (s Snapshot) IndexOf(h Handle) int {
	if !h.Valid() {
		return -1
	}
	for i, c := range s {
		if c.Handle == h {
			return i
		}
	}
	return -1
}

// Contains reports whether h was captured by this snapshot.
func (s Snapshot) Contains(h Handle) bool {
	return s.IndexOf(h) >= 0
}

// Select returns the candidates at the given indices, in index order.
// Out of range indices are skipped.
func (s Snapshot) Select(indices []int) []Candidate {
	out := make([]Candidate, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(s) {
			continue
		}
		out = append(out, s[idx])
	}
	return out
}

// Truncate limits title and process name to limit runes each. A limit of
// zero or less leaves the candidates untouched.
func Truncate(candidates []Candidate, limit int) []Candidate {
	if limit <= 0 {
		return candidates
	}
	for i := range candidates {
		candidates[i].Title = truncateRunes(candidates[i].Title, limit)
		candidates[i].ProcessName = truncateRunes(candidates[i].ProcessName, limit)
	}
	return candidates
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
