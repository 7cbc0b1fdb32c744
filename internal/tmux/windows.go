package tmux

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Window is one tmux window across all sessions.
type Window struct {
	ID       string
	Session  string
	Index    int
	Name     string
	Command  string
	PanePID  int
	Active   bool
	Attached bool
	Activity int64
}

// Target returns the session:index form accepted by tmux commands.
func (w Window) Target() string {
	return fmt.Sprintf("%s:%d", w.Session, w.Index)
}

const windowFormat = "#{window_id}\t#{session_name}\t#{window_index}\t#{window_name}\t#{pane_current_command}\t#{pane_pid}\t#{window_active}\t#{session_attached}\t#{window_activity}"

// FetchWindows lists every window of the server, most recently active
// first. Windows linked into several sessions are reported once.
func FetchWindows(socketPath, filter string) ([]Window, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	lines, err := client.ListWindowsFormat("", strings.TrimSpace(filter), windowFormat)
	if err != nil {
		return nil, fmt.Errorf("list-windows: %w", err)
	}
	windows := parseWindowLines(lines)
	sort.SliceStable(windows, func(i, j int) bool {
		return windowRank(windows[i]) > windowRank(windows[j])
	})
	return windows, nil
}

// windowRank orders the active window of an attached session ahead of
// everything else, then by last activity.
func windowRank(w Window) int64 {
	if w.Active && w.Attached {
		return 1 << 62
	}
	return w.Activity
}

func parseWindowLines(lines []string) []Window {
	seen := make(map[string]struct{}, len(lines))
	out := make([]Window, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 4 {
			continue
		}
		id := strings.TrimSpace(parts[0])
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		w := Window{
			ID:      id,
			Session: strings.TrimSpace(parts[1]),
			Name:    parts[3],
		}
		w.Index, _ = strconv.Atoi(strings.TrimSpace(parts[2]))
		if len(parts) > 4 {
			w.Command = strings.TrimSpace(parts[4])
		}
		if len(parts) > 5 {
			w.PanePID, _ = strconv.Atoi(strings.TrimSpace(parts[5]))
		}
		if len(parts) > 6 {
			w.Active = strings.TrimSpace(parts[6]) == "1"
		}
		if len(parts) > 7 {
			n, _ := strconv.Atoi(strings.TrimSpace(parts[7]))
			w.Attached = n > 0
		}
		if len(parts) > 8 {
			w.Activity, _ = strconv.ParseInt(strings.TrimSpace(parts[8]), 10, 64)
		}
		out = append(out, w)
	}
	return out
}

// SwitchClient points clientID (or the most recent client when empty) at
// the given session.
func SwitchClient(socketPath, clientID, target string) error {
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	opts := &gotmux.SwitchClientOptions{TargetSession: target}
	if strings.TrimSpace(clientID) != "" {
		opts.TargetClient = clientID
	}
	return client.SwitchClient(opts)
}

// SelectWindow makes target the current window of its session.
func SelectWindow(socketPath, target string) error {
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.SelectWindow(target)
}

// FocusWindow switches clientID to the window's session and selects it.
func FocusWindow(socketPath, clientID string, w Window) error {
	if strings.TrimSpace(w.Session) != "" {
		if err := SwitchClient(socketPath, clientID, w.Session); err != nil {
			return fmt.Errorf("switch-client %s: %w", w.Session, err)
		}
	}
	if err := SelectWindow(socketPath, w.ID); err != nil {
		return fmt.Errorf("select-window %s: %w", w.ID, err)
	}
	return nil
}
