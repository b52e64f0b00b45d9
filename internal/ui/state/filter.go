package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter replaces the query and places the filter cursor at cursor. The
// list cursor jumps to the best match while a query is present and returns to
// where it was once the query is cleared.
func (l *Level) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	wasFiltering := strings.TrimSpace(l.Filter) != ""
	l.Filter = query
	l.FilterCursor = clampInt(cursor, 0, len([]rune(query)))

	switch {
	case trimmed != "":
		if !wasFiltering {
			l.LastCursor = l.Cursor
		}
		l.Cursor = 0
		l.applyFilter()
		if idx := BestMatchIndex(l.Items, trimmed); idx >= 0 {
			l.Cursor = idx
		}
	case wasFiltering:
		restore := l.LastCursor
		l.applyFilter()
		if restore >= 0 && restore < len(l.Items) {
			l.Cursor = restore
		} else {
			l.Cursor = l.firstSelectable()
		}
		l.LastCursor = -1
	default:
		l.applyFilter()
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		l.Cursor = l.firstSelectable()
	}
	l.settle(1)
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *Level) FilterCursorPos() int {
	return clampInt(l.FilterCursor, 0, len([]rune(l.Filter)))
}

// editFilter applies fn to the query runes around the cursor. fn returns the
// new query and cursor, or false when nothing changed.
func (l *Level) editFilter(fn func(runes []rune, pos int) ([]rune, int, bool)) bool {
	updated, pos, ok := fn([]rune(l.Filter), l.FilterCursorPos())
	if !ok {
		return false
	}
	l.SetFilter(string(updated), pos)
	return true
}

// InsertFilterText inserts text at the filter cursor.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if len(insert) == 0 {
			return nil, 0, false
		}
		out := make([]rune, 0, len(runes)+len(insert))
		out = append(out, runes[:pos]...)
		out = append(out, insert...)
		out = append(out, runes[pos:]...)
		return out, pos + len(insert), true
	})
}

// DeleteFilterRuneBackward deletes the rune before the filter cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if pos == 0 {
			return nil, 0, false
		}
		return append(runes[:pos-1:pos-1], runes[pos:]...), pos - 1, true
	})
}

// DeleteFilterWordBackward deletes the word before the filter cursor along
// with any spaces between it and the cursor.
func (l *Level) DeleteFilterWordBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int, bool) {
		if pos == 0 {
			return nil, 0, false
		}
		i := pos
		for i > 0 && unicode.IsSpace(runes[i-1]) {
			i--
		}
		for i > 0 && !unicode.IsSpace(runes[i-1]) {
			i--
		}
		return append(runes[:i:i], runes[pos:]...), i, true
	})
}

// matchTargets lists the strings a query is matched against: the full label,
// the part after a "Category: " prefix, the accelerator and the id.
func matchTargets(e Entry) []string {
	targets := []string{e.Label}
	if short := commandPart(e.Label); short != e.Label {
		targets = append(targets, short)
	}
	if e.Hint != "" {
		targets = append(targets, e.Hint)
	}
	if e.ID != "" {
		targets = append(targets, e.ID)
	}
	return targets
}

func commandPart(label string) string {
	if i := strings.LastIndex(label, ": "); i >= 0 {
		return label[i+2:]
	}
	return label
}

// FilterItems returns the entries matching query in their original order.
// Separators only survive an empty query.
func FilterItems(items []Entry, query string) []Entry {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneEntries(items)
	}
	filtered := make([]Entry, 0, len(items))
	for _, item := range items {
		if !item.Selectable() {
			continue
		}
		for _, target := range matchTargets(item) {
			if fuzzy.MatchNormalizedFold(trimmed, target) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// BestMatchIndex picks the entry the cursor should land on for query: an
// exact match first, then a prefix match, then the closest fuzzy match.
func BestMatchIndex(items []Entry, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(items) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	for i, item := range items {
		for _, target := range matchTargets(item) {
			if strings.EqualFold(target, trimmed) {
				return i
			}
		}
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(commandPart(item.Label)), lower) {
			return i
		}
	}
	best, bestDistance := 0, -1
	for i, item := range items {
		for _, target := range matchTargets(item) {
			d := fuzzy.RankMatchNormalizedFold(trimmed, target)
			if d >= 0 && (bestDistance < 0 || d < bestDistance) {
				best, bestDistance = i, d
			}
		}
	}
	return best
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
