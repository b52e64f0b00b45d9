package widget

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-menubar/internal/format/table"
	"github.com/atomicstack/tmux-menubar/internal/opener"
	"github.com/atomicstack/tmux-menubar/internal/shell"
)

// Static creates text widgets from a fixed title and a body computed per call.
type Static struct {
	FactoryID string
	Heading   string
	Body      func(opts opener.WidgetOptions) (string, error)
}

func (s Static) ID() string { return s.FactoryID }

// CreateWidget implements opener.Factory.
func (s Static) CreateWidget(ctx context.Context, opts opener.WidgetOptions) (shell.Widget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body := ""
	if s.Body != nil {
		var err error
		if body, err = s.Body(opts); err != nil {
			return nil, fmt.Errorf("%s: %w", s.FactoryID, err)
		}
	}
	return NewText(s.Heading, body), nil
}

// About returns the factory behind about: URIs.
func About(version string) Static {
	return Static{
		FactoryID: "about",
		Heading:   "About",
		Body: func(opener.WidgetOptions) (string, error) {
			return fmt.Sprintf("tmux-menubar %s\n\nA menu bar and command palette for tmux.", version), nil
		},
	}
}

// Binding is one line of the keybinding reference.
type Binding struct {
	Keys  string
	Label string
}

// Keybindings returns the factory behind keys: URIs. list is consulted
// when the widget is created.
func Keybindings(list func() []Binding) Static {
	return Static{
		FactoryID: "keybindings",
		Heading:   "Keybindings",
		Body: func(opener.WidgetOptions) (string, error) {
			var bindings []Binding
			if list != nil {
				bindings = list()
			}
			if len(bindings) == 0 {
				return "(no keybindings)", nil
			}
			rows := make([][]string, len(bindings))
			for i, b := range bindings {
				rows[i] = []string{b.Keys, b.Label}
			}
			lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
			for i := range lines {
				lines[i] = strings.TrimRight(lines[i], " ")
			}
			return strings.Join(lines, "\n"), nil
		},
	}
}
