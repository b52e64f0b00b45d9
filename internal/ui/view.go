package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-menubar/internal/shell"
	uistate "github.com/atomicstack/tmux-menubar/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	defaultWidth   = 80
	defaultHeight  = 24
	paletteMaxRows = 12
	paletteMinCols = 30
	footerHint     = "F10 menu · Ctrl+P palette · M context · Ctrl+Q quit"
)

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m *Model) paletteRows() int {
	_, h := m.size()
	rows := h - 6
	if rows > paletteMaxRows {
		rows = paletteMaxRows
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.size()
	status := m.statusLines(width)
	bodyHeight := height - 1 - len(status)
	if bodyHeight < 0 {
		bodyHeight = 0
	}

	lines := make([]string, 0, height)
	lines = append(lines, m.bar.Render(styles, width))
	lines = append(lines, m.bodyLines(width, bodyHeight)...)
	lines = append(lines, status...)

	if root := m.openRoot(); root != nil {
		for v := root; v != nil && v.IsOpen(); v = v.Submenu() {
			x, y := v.Position()
			lines = overlay(lines, v.Render(styles, width-x, height-y), x, y)
		}
	}
	if m.palette != nil {
		x := 2
		lines = overlay(lines, m.renderPalette(width-2*x), x, 1)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) bodyLines(width, height int) []string {
	out := make([]string, 0, height)
	if height <= 0 {
		return out
	}
	w, ok := m.shell.Revealed(shell.AreaMain)
	if !ok {
		hint := "Press F10 to open the menu bar."
		out = append(out, styleLine(styles.Info, hint))
	} else {
		titleStyle := styles.WidgetTitle
		if active, ok := m.shell.Active(); ok && active.ID() == w.ID() {
			titleStyle = styles.WidgetTitleActive
		}
		out = append(out, styleLine(titleStyle, w.Title()))
		if body := w.Render(width, height-1); body != "" {
			for _, line := range strings.Split(body, "\n") {
				out = append(out, styleLine(styles.WidgetBody, line))
			}
		}
	}
	for len(out) < height {
		out = append(out, "")
	}
	return out[:height]
}

func (m *Model) statusLines(width int) []string {
	var lines []string
	switch {
	case m.errMsg != "":
		lines = append(lines, styleLine(styles.Error, clip("Error: "+m.errMsg, width)))
	case m.infoMsg != "":
		lines = append(lines, styleLine(styles.Info, clip(m.infoMsg, width)))
	case m.verbose:
		if err := m.sessions.Err(); err != nil {
			lines = append(lines, styleLine(styles.Error, clip(fmt.Sprintf("tmux: %v", err), width)))
		}
	}
	if m.showFooter {
		lines = append(lines, styleLine(styles.Footer, clip(footerHint, width)))
	}
	return lines
}

func (m *Model) renderPalette(maxWidth int) string {
	if maxWidth < paletteMinCols {
		maxWidth = paletteMinCols
	}
	inner := maxWidth - 2
	rows := m.paletteRows()
	lines := []string{m.filterPrompt()}
	visible, start := m.palette.Visible(rows)
	if len(visible) == 0 {
		msg := "(no commands)"
		if m.palette.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.palette.Filter)
		}
		lines = append(lines, styleLine(styles.Info, msg))
	}
	for i, e := range visible {
		lines = append(lines, paletteRow(e, inner, start+i == m.palette.Cursor))
	}
	for i, line := range lines {
		if pad := inner - lipgloss.Width(line); pad > 0 {
			lines[i] = line + strings.Repeat(" ", pad)
		} else if pad < 0 {
			lines[i] = xansi.Cut(line, 0, inner)
		}
	}
	body := strings.Join(lines, "\n")
	if styles.MenuBox == nil {
		return body
	}
	return styles.MenuBox.Render(body)
}

func paletteRow(e uistate.Entry, width int, selected bool) string {
	mark := "  "
	if e.Toggled {
		mark = "✓ "
	}
	label := mark + e.Label
	text := label
	if e.Hint != "" {
		pad := width - lipgloss.Width(label) - lipgloss.Width(e.Hint) - 1
		if pad < 1 {
			pad = 1
		}
		text = label + strings.Repeat(" ", pad) + e.Hint
	}
	text = clip(text, width)
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	style := styles.Item
	switch {
	case selected:
		style = styles.SelectedItem
	case e.Disabled:
		style = styles.DisabledItem
	}
	return styleLine(style, text)
}

// overlay splices block into lines with its top-left corner at x, y.
// Cells of the base lines outside the block are kept.
func overlay(lines []string, block string, x, y int) []string {
	if block == "" || y < 0 {
		return lines
	}
	if x < 0 {
		x = 0
	}
	for i, row := range strings.Split(block, "\n") {
		idx := y + i
		if idx >= len(lines) {
			break
		}
		base := lines[idx]
		baseWidth := xansi.StringWidth(base)
		left := xansi.Cut(base, 0, x)
		if w := xansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		end := x + xansi.StringWidth(row)
		right := ""
		if end < baseWidth {
			right = xansi.Cut(base, end, baseWidth)
		}
		lines[idx] = left + row + right
	}
	return lines
}

func clip(text string, width int) string {
	if width > 0 && xansi.StringWidth(text) > width {
		return xansi.Truncate(text, width, "…")
	}
	return text
}

func styleLine(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}
