package ui

import (
	"fmt"
	"unicode"

	"github.com/atomicstack/tmux-menubar/internal/logging/events"
	"github.com/atomicstack/tmux-menubar/internal/menu"
	uistate "github.com/atomicstack/tmux-menubar/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const paletteID = "palette"

func (m *Model) updatePaletteCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.paletteCursor, cmd = m.paletteCursor.Update(msg)
	return cmd
}

// paletteEntries lists every command reachable from the main menu once.
// Labels carry their menu path so fuzzy matching can hit either part.
func paletteEntries(items []menu.Item) []uistate.Entry {
	var out []uistate.Entry
	seen := make(map[string]bool)
	for _, item := range menu.Flatten(items, ": ") {
		if seen[item.CommandID] {
			continue
		}
		seen[item.CommandID] = true
		out = append(out, uistate.Entry{
			ID:       item.CommandID,
			Label:    item.Label,
			Hint:     item.Accelerator,
			Disabled: !item.Enabled,
			Toggled:  item.Toggled,
		})
	}
	return out
}

func (m *Model) openPalette() tea.Cmd {
	m.closeMenus(events.CloseSwitch)
	projector := m.projector()
	projector.Snapshotter.Visibility = menu.VisibilityForced
	items := projector.Render(m.menus.GetMenu(menu.MainMenu))
	entries := paletteEntries(items)
	m.palette = uistate.NewLevel(paletteID, "Command Palette", entries)
	if idx := m.palette.IndexOf(m.paletteLastSelected); idx >= 0 {
		m.palette.Cursor = idx
	}
	m.errMsg = ""
	m.infoMsg = ""
	events.Menu.Palette("", len(entries))
	return m.paletteCursor.Focus()
}

func (m *Model) closePalette() {
	m.palette = nil
	m.paletteCursor.Blur()
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	current := m.palette
	switch msg.String() {
	case "esc":
		m.closePalette()
		return nil
	case "enter":
		entry, ok := current.Current()
		if !ok {
			return nil
		}
		if entry.Disabled {
			m.infoMsg = fmt.Sprintf("%s is unavailable", entry.Label)
			return nil
		}
		m.paletteLastSelected = entry.ID
		m.closePalette()
		return m.bus.Execute(entry.ID)
	case "up", "ctrl+k":
		current.MoveCursorUp()
		return nil
	case "down", "ctrl+j":
		current.MoveCursorDown()
		return nil
	case "pgup":
		current.MoveCursorPageUp(m.paletteRows())
		return nil
	case "pgdown":
		current.MoveCursorPageDown(m.paletteRows())
		return nil
	}
	m.handleTextInput(msg)
	return nil
}

func (m *Model) noteFilterCursorChange(before int) {
	if m.palette != nil && before != m.palette.FilterCursorPos() {
		m.paletteCursorDirty = true
	}
}

func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	current := m.palette
	before := current.FilterCursorPos()
	changed := false
	switch msg.String() {
	case "ctrl+u":
		if current.Filter != "" {
			current.SetFilter("", 0)
			changed = true
		}
	case "ctrl+w":
		changed = current.DeleteFilterWordBackward()
	}
	if !changed {
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyCtrlH:
			changed = current.DeleteFilterRuneBackward()
		case tea.KeySpace:
			changed = current.InsertFilterText(" ")
		case tea.KeyRunes:
			if msg.Alt || len(msg.Runes) == 0 {
				return false
			}
			for _, r := range msg.Runes {
				if unicode.IsControl(r) {
					return false
				}
			}
			changed = current.InsertFilterText(string(msg.Runes))
		}
	}
	if !changed {
		return false
	}
	m.noteFilterCursorChange(before)
	m.infoMsg = ""
	current.EnsureCursorVisible(m.paletteRows())
	events.Menu.Palette(current.Filter, len(current.Items))
	return true
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if m.palette == nil {
		return prompt
	}
	text := m.palette.Filter
	if text == "" {
		placeholder := []rune("type a command")
		if styles.FilterPlaceholder != nil {
			m.paletteCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(placeholder[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	if styles.Filter != nil {
		m.paletteCursor.TextStyle = styles.Filter.Copy()
	}
	runes := []rune(text)
	pos := m.palette.FilterCursorPos()
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + render(styles.Filter, string(runes[:pos])) + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.paletteCursor.SetChar(char)
	return m.paletteCursor.View()
}
