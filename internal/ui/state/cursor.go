package state

// MoveCursorUp moves to the previous selectable row, wrapping at the top.
func (l *Level) MoveCursorUp() bool {
	return l.step(-1)
}

// MoveCursorDown moves to the next selectable row, wrapping at the bottom.
func (l *Level) MoveCursorDown() bool {
	return l.step(1)
}

func (l *Level) step(dir int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	pos := l.Cursor
	if pos < 0 || pos >= n {
		pos = -dir
		if dir < 0 {
			pos = n
		}
	}
	for i := 0; i < n; i++ {
		pos = (pos + dir + n) % n
		if l.Items[pos].Selectable() {
			l.Cursor = pos
			return l.Cursor != old
		}
	}
	return false
}

// MoveCursorHome moves the cursor to the first selectable row.
func (l *Level) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = l.firstSelectable()
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last selectable row.
func (l *Level) MoveCursorEnd() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = l.lastSelectable()
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorBy(l.pageSize(maxVisible))
}

func (l *Level) moveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.Cursor += delta
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	l.settle(delta)
	return l.Cursor != old
}

// settle moves the cursor off a separator, preferring the direction of travel.
func (l *Level) settle(delta int) {
	if l.Cursor >= 0 && l.Cursor < len(l.Items) && l.Items[l.Cursor].Selectable() {
		return
	}
	dir := 1
	if delta < 0 {
		dir = -1
	}
	for _, d := range []int{dir, -dir} {
		for i := l.Cursor + d; i >= 0 && i < len(l.Items); i += d {
			if l.Items[i].Selectable() {
				l.Cursor = i
				return
			}
		}
	}
}

func (l *Level) firstSelectable() int {
	for i, item := range l.Items {
		if item.Selectable() {
			return i
		}
	}
	return 0
}

func (l *Level) lastSelectable() int {
	for i := len(l.Items) - 1; i >= 0; i-- {
		if l.Items[i].Selectable() {
			return i
		}
	}
	return 0
}

func (l *Level) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if upper := l.ViewportOffset + maxVisible - 1; l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
	}
}

// Visible returns the rows inside the viewport and the index of the first one.
func (l *Level) Visible(maxVisible int) ([]Entry, int) {
	l.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 || len(l.Items) <= maxVisible {
		return l.Items, 0
	}
	start := l.ViewportOffset
	return l.Items[start : start+maxVisible], start
}
