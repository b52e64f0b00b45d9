package menuview

import (
	"strings"

	"github.com/atomicstack/tmux-menubar/internal/theme"
	"github.com/atomicstack/tmux-menubar/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	markToggled = "✓ "
	markNone    = "  "
	markSubmenu = "▸"
	hintGap     = 3
	minInner    = 12
)

// Width returns the rendered width of the open view including its border.
func (v *View) Width() int {
	if v.level == nil {
		return 0
	}
	return innerWidth(v.level.Items) + 2
}

func innerWidth(entries []state.Entry) int {
	width := minInner
	for _, e := range entries {
		if e.Separator {
			continue
		}
		w := lipgloss.Width(markNone) + lipgloss.Width(e.Label)
		switch {
		case e.Submenu:
			w += hintGap + lipgloss.Width(markSubmenu)
		case e.Hint != "":
			w += hintGap + lipgloss.Width(e.Hint)
		}
		if w+1 > width {
			width = w + 1
		}
	}
	return width
}

// Render draws the open view inside a box. maxWidth and maxHeight bound the
// box including borders; zero means unbounded.
func (v *View) Render(styles *theme.Styles, maxWidth, maxHeight int) string {
	if v.level == nil || !v.IsOpen() {
		return ""
	}
	inner := innerWidth(v.level.Items)
	if maxWidth > 2 && inner > maxWidth-2 {
		inner = maxWidth - 2
	}
	rows := 0
	if maxHeight > 2 {
		rows = maxHeight - 2
	}
	visible, start := v.level.Visible(rows)
	lines := make([]string, 0, len(visible)+1)
	if len(visible) == 0 {
		lines = append(lines, styleText(styles.DisabledItem, padRight(" (empty)", inner)))
	}
	for i, e := range visible {
		lines = append(lines, renderEntry(styles, e, inner, start+i == v.level.Cursor))
	}
	body := strings.Join(lines, "\n")
	if styles.MenuBox == nil {
		return body
	}
	return styles.MenuBox.Render(body)
}

func renderEntry(styles *theme.Styles, e state.Entry, inner int, selected bool) string {
	if e.Separator {
		return styleText(styles.Separator, strings.Repeat("─", inner))
	}
	mark := markNone
	if e.Toggled {
		mark = markToggled
	}
	hint := e.Hint
	if e.Submenu {
		hint = markSubmenu
	}
	room := inner - lipgloss.Width(mark) - 1
	if hint != "" {
		room -= lipgloss.Width(hint) + hintGap
	}
	label := e.Label
	if room < 1 {
		room = 1
	}
	if lipgloss.Width(label) > room {
		label = truncate.StringWithTail(label, uint(room), "…")
	}
	left := mark + label
	text := left
	if hint != "" {
		pad := inner - lipgloss.Width(left) - lipgloss.Width(hint) - 1
		if pad < 1 {
			pad = 1
		}
		text = left + strings.Repeat(" ", pad) + hint + " "
	}
	text = padRight(text, inner)

	style := styles.Item
	switch {
	case selected:
		style = styles.SelectedItem
	case e.Disabled:
		style = styles.DisabledItem
	}
	return styleText(style, text)
}

func padRight(text string, width int) string {
	if pad := width - lipgloss.Width(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

func styleText(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}
