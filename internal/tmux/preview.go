package tmux

import (
	"fmt"
	"strings"
)

const panePreviewDefaultLines = 40

// WindowPreview captures the visible contents of the window's active pane.
func WindowPreview(socketPath, window string) ([]string, error) {
	target := strings.TrimSpace(window)
	if target == "" {
		return nil, fmt.Errorf("window target required")
	}
	args := append(baseArgs(socketPath), "capture-pane", "-ep", "-S", fmt.Sprintf("-%d", panePreviewDefaultLines), "-t", target)
	output, err := runExecCommand("tmux", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("capture-pane %s: %w", target, err)
	}
	lines := splitPreviewLines(string(output), true)
	if len(lines) == 0 {
		return []string{"(window is empty)"}, nil
	}
	if len(lines) > panePreviewDefaultLines {
		lines = lines[len(lines)-panePreviewDefaultLines:]
	}
	return lines, nil
}

func splitPreviewLines(text string, keepEmpty bool) []string {
	if text == "" {
		return nil
	}
	normalised := strings.ReplaceAll(text, "\r\n", "\n")
	normalised = strings.ReplaceAll(normalised, "\r", "\n")
	normalised = strings.TrimRight(normalised, "\n")
	if normalised == "" {
		return nil
	}
	raw := strings.Split(normalised, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" && !keepEmpty {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}
