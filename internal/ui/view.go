package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/window-switcher/internal/format/table"
	"github.com/atomicstack/window-switcher/internal/query"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	previewPanelMinWidth = 36  // minimum cols for the preview panel; below this no split
	previewPanelFraction = 0.5 // fraction of total width given to the preview panel
	previewScrollStep    = 3
	processColumnMax     = 24
	bottomBarRows        = 2 // status line + query prompt
	footerText           = "↑/↓ move  enter switch  ctrl+r refresh  esc close"
	placeholderText      = "type to filter windows"
	itemIndicator        = "▌"
)

// hasSidePreview reports whether the preview panel is drawn to the right of
// the list.
func (m *Model) hasSidePreview() bool {
	return m.showPreview && m.previewPanelWidth() > 0
}

// previewPanelWidth returns 0 when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) listColumnWidth() int {
	if !m.hasSidePreview() {
		return m.width
	}
	return m.width - m.previewPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.closed {
		return ""
	}
	top := m.listColumn()
	if m.hasSidePreview() {
		panelH := m.panelHeight()
		listW := m.listColumnWidth()
		for len(top) < panelH {
			top = append(top, "")
		}
		if len(top) > panelH {
			top = top[:panelH]
		}
		for i := range top {
			top[i] = fitWidth(top[i], listW)
		}
		preview := m.renderPreviewPanel(m.previewPanelWidth(), panelH)
		joined := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(top, "\n"), preview)
		return joined + "\n" + strings.Join(m.bottomBar(), "\n")
	}
	if m.height > 0 {
		top = limitHeight(top, m.height-bottomBarRows)
	}
	lines := append(top, m.bottomBar()...)
	if m.width > 0 {
		for i := range lines {
			lines[i] = truncateWidth(lines[i], m.width)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) panelHeight() int {
	h := m.height - bottomBarRows
	if h < 3 {
		h = 3
	}
	return h
}

// listColumn renders the header, notice, visible rows and footer.
func (m *Model) listColumn() []string {
	width := m.listColumnWidth()
	lines := make([]string, 0, 16)
	lines = append(lines, styles.Header.Render(m.header()))
	if notice := m.notice(); notice != "" {
		lines = append(lines, styles.Notice.Render(notice))
	}

	if len(m.displayed) == 0 {
		lines = append(lines, styles.Info.Render("(no windows)"))
	} else {
		start, end := m.visibleRange()
		rows := m.formatRows(start, end)
		for i, row := range rows {
			lines = append(lines, m.renderRow(row, start+i == m.selected, width))
		}
	}

	if m.showFooter {
		lines = append(lines, "", styles.Footer.Render(footerText))
	}
	return lines
}

func (m *Model) header() string {
	total := len(m.engine.Snapshot())
	shown := len(m.displayed)
	if m.isFallback() {
		shown = 0
	}
	header := fmt.Sprintf("window-switcher · %d/%d windows", shown, total)
	if m.backendName != "" {
		header += " · " + m.backendName
	}
	return header
}

// isFallback reports whether a non-empty query matched nothing and the whole
// snapshot is shown instead.
func (m *Model) isFallback() bool {
	if m.engine == nil {
		return false
	}
	return !query.IsEmpty(m.engine.Query()) && len(m.engine.Matches()) == 0 && len(m.displayed) > 0
}

func (m *Model) notice() string {
	if !m.isFallback() {
		return ""
	}
	return fmt.Sprintf("No matches for %q, showing all windows", m.engine.Query())
}

func (m *Model) visibleRange() (int, int) {
	start := 0
	end := len(m.displayed)
	if limit := m.maxVisibleItems(); limit > 0 && end > limit {
		start = m.engine.Selection().ViewportOffset()
		if start+limit > end {
			start = end - limit
		}
		if start < 0 {
			start = 0
		}
		end = start + limit
	}
	return start, end
}

// formatRows aligns the process and title columns of displayed[start:end].
// Unselected rows carry their styles inside the cells.
func (m *Model) formatRows(start, end int) []string {
	cells := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		cand := m.displayed[i]
		process, title := cand.ProcessName, cand.Title
		if i != m.selected {
			if process != "" {
				process = styles.Process.Render(process)
			}
			title = styles.Item.Render(title)
		}
		cells = append(cells, []string{process, title})
	}
	return table.Format(cells, []table.Column{{Max: processColumnMax}, {}})
}

func (m *Model) renderRow(row string, selected bool, width int) string {
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
	}
	text := " " + row
	if width > 1 {
		text = fitWidth(text, width-1)
	}
	if selected {
		text = styles.SelectedItem.Render(text)
	}
	return indicatorStyle.Render(itemIndicator) + text
}

func (m *Model) bottomBar() []string {
	status := ""
	if m.errMsg != "" {
		status = styles.Error.Render("Error: " + m.errMsg)
	}
	return []string{status, m.promptLine()}
}

func (m *Model) promptLine() string {
	prefix := styles.QueryPrompt.Render("> ")
	runes := []rune(m.prompt.Text)
	pos := m.prompt.CursorPos()
	if len(runes) == 0 {
		m.queryCursor.SetChar(" ")
		return prefix + m.queryCursor.View() + styles.QueryPlaceholder.Render(placeholderText)
	}
	at, after := " ", ""
	if pos < len(runes) {
		at = string(runes[pos])
		after = string(runes[pos+1:])
	}
	m.queryCursor.SetChar(at)
	return prefix + styles.Query.Render(string(runes[:pos])) + m.queryCursor.View() + styles.Query.Render(after)
}

// renderPreviewPanel builds the bordered preview box with exactly height
// rows and totalWidth columns.
func (m *Model) renderPreviewPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	title := "Preview"
	scrollInfo := ""
	var content []string
	bodyStyle := styles.PreviewBody
	preview := m.preview
	switch {
	case preview == nil:
		content = []string{"(nothing selected)"}
	case preview.err != "":
		title = "Preview: " + preview.label
		content = []string{preview.err}
		bodyStyle = styles.PreviewError
	case preview.loading:
		title = "Preview: " + preview.label
		content = []string{"Loading…"}
	default:
		title = "Preview: " + preview.label
		m.clampPreviewScroll(innerH)
		end := preview.scrollOffset + innerH
		if end > len(preview.lines) {
			end = len(preview.lines)
		}
		content = preview.lines[preview.scrollOffset:end]
		if len(preview.lines) > innerH {
			scrollInfo = fmt.Sprintf(" %d/%d ", end, len(preview.lines))
		}
	}

	titleSeg := " " + title + " "
	maxTitle := totalWidth - 4 - lipgloss.Width(scrollInfo)
	if maxTitle < 3 {
		scrollInfo = ""
		maxTitle = totalWidth - 4
	}
	if lipgloss.Width(titleSeg) > maxTitle {
		if maxTitle < 1 {
			maxTitle = 1
		}
		titleSeg = truncate.StringWithTail(titleSeg, uint(maxTitle), "…")
	}
	dashes := totalWidth - 4 - lipgloss.Width(titleSeg) - lipgloss.Width(scrollInfo)
	if dashes < 0 {
		dashes = 0
	}
	border := styles.PreviewBorder
	rows := make([]string, 0, height)
	rows = append(rows, border.Render(tlc+hz)+
		styles.PreviewTitle.Render(titleSeg)+
		border.Render(strings.Repeat(hz, dashes))+
		styles.Footer.Render(scrollInfo)+
		border.Render(hz+trc))
	for i := 0; i < innerH; i++ {
		var line string
		if i < len(content) {
			line = content[i]
		}
		rows = append(rows, border.Render(vt)+bodyStyle.Render(fitWidth(line, innerW))+border.Render(vt))
	}
	rows = append(rows, border.Render(blc+strings.Repeat(hz, innerW)+brc))
	return strings.Join(rows, "\n")
}

func (m *Model) scrollPreview(delta int) {
	if m.preview == nil || m.preview.loading {
		return
	}
	m.preview.scrollOffset += delta
	m.clampPreviewScroll(m.panelHeight() - 2)
}

func (m *Model) clampPreviewScroll(innerH int) {
	maxOffset := len(m.preview.lines) - innerH
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.preview.scrollOffset > maxOffset {
		m.preview.scrollOffset = maxOffset
	}
	if m.preview.scrollOffset < 0 {
		m.preview.scrollOffset = 0
	}
}

// maxVisibleItems returns how many list rows fit, or -1 when the height is
// unknown.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomBarRows + 1 // header
	if m.isFallback() {
		used++
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

// rowAt maps a mouse position to a displayed index.
func (m *Model) rowAt(x, y int) (int, bool) {
	if m.hasSidePreview() && x >= m.listColumnWidth() {
		return 0, false
	}
	top := 1
	if m.isFallback() {
		top++
	}
	row := y - top
	start, end := m.visibleRange()
	if row < 0 || start+row >= end {
		return 0, false
	}
	return start + row, true
}

func limitHeight(lines []string, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []string{"…"}
	}
	trimmed := make([]string, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	return append(trimmed, "…")
}

// fitWidth truncates or pads text to exactly width visible columns.
func fitWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = truncateWidth(text, width)
	if w := lipgloss.Width(text); w < width {
		text += strings.Repeat(" ", width-w)
	}
	return text
}

// truncateWidth cuts text to at most width visible columns, keeping ANSI
// sequences intact.
func truncateWidth(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
