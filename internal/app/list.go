package app

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/window-switcher/internal/platform"
	"github.com/atomicstack/window-switcher/internal/query"
	"github.com/atomicstack/window-switcher/internal/window"
)

type listing struct {
	Backend  string      `yaml:"backend"`
	Query    string      `yaml:"query,omitempty"`
	Match    string      `yaml:"match"`
	Total    int         `yaml:"total"`
	Matched  int         `yaml:"matched"`
	Fallback bool        `yaml:"fallback,omitempty"`
	Windows  []listEntry `yaml:"windows"`
}

type listEntry struct {
	Index            int `yaml:"index"`
	window.Candidate `yaml:",inline"`
}

// writeListing prints the snapshot filtered by cfg.Query as YAML. Like the
// overlay, a query without matches lists every window and sets fallback.
func writeListing(ctx context.Context, out io.Writer, be platform.Backend, matcher query.Matcher, cfg Config) error {
	candidates, err := be.Windows(ctx)
	if err != nil {
		return fmt.Errorf("enumerate windows: %w", err)
	}
	snap := window.NewSnapshot(window.Truncate(candidates, cfg.FieldLimit))
	matches := matcher.Filter(cfg.Query, snap)

	doc := listing{
		Backend: be.Name(),
		Query:   cfg.Query,
		Match:   matcher.Mode.String(),
		Total:   len(snap),
		Matched: len(matches),
		Windows: []listEntry{},
	}
	indices := []int(matches)
	if len(matches) == 0 && len(snap) > 0 {
		doc.Fallback = true
		indices = make([]int, len(snap))
		for i := range snap {
			indices[i] = i
		}
	}
	for _, idx := range indices {
		doc.Windows = append(doc.Windows, listEntry{Index: idx, Candidate: snap[idx]})
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}
	return enc.Close()
}
