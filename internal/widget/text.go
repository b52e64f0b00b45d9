package widget

import (
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// Text is a read-only widget showing a block of text.
type Text struct {
	id       string
	title    string
	body     string
	disposed atomic.Bool
}

// NewText returns a text widget with a fresh instance id.
func NewText(title, body string) *Text {
	return &Text{
		id:    uuid.NewString(),
		title: title,
		body:  body,
	}
}

func (t *Text) ID() string     { return t.id }
func (t *Text) Title() string  { return t.title }
func (t *Text) Body() string   { return t.body }
func (t *Text) Dispose()       { t.disposed.Store(true) }
func (t *Text) Disposed() bool { return t.disposed.Load() }

// Render wraps the body to width and cuts it to height lines.
func (t *Text) Render(width, height int) string {
	body := t.body
	if width > 0 {
		body = wordwrap.String(body, width)
	}
	lines := strings.Split(body, "\n")
	if height > 0 && len(lines) > height {
		lines = append(lines[:height-1], "…")
	}
	if width > 0 {
		for i, line := range lines {
			lines[i] = truncate.String(line, uint(width))
		}
	}
	return strings.Join(lines, "\n")
}
