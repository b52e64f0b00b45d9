package ui

import (
	"context"
	"os"
	"reflect"
	"sync"

	"github.com/atomicstack/tmux-menubar/internal/backend"
	"github.com/atomicstack/tmux-menubar/internal/command"
	"github.com/atomicstack/tmux-menubar/internal/contrib"
	"github.com/atomicstack/tmux-menubar/internal/data/dispatcher"
	"github.com/atomicstack/tmux-menubar/internal/keybinding"
	"github.com/atomicstack/tmux-menubar/internal/logging"
	"github.com/atomicstack/tmux-menubar/internal/menu"
	"github.com/atomicstack/tmux-menubar/internal/opener"
	"github.com/atomicstack/tmux-menubar/internal/shell"
	"github.com/atomicstack/tmux-menubar/internal/state"
	"github.com/atomicstack/tmux-menubar/internal/theme"
	"github.com/atomicstack/tmux-menubar/internal/ui/menubar"
	"github.com/atomicstack/tmux-menubar/internal/ui/menuview"
	uistate "github.com/atomicstack/tmux-menubar/internal/ui/state"
	"github.com/atomicstack/tmux-menubar/internal/widget"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	SocketPath  string
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	OpenMenuBar bool
	Version     string
	Watcher     *backend.Watcher
	// Contributions are applied after the built-in ones.
	Contributions []contrib.Contribution
}

// Model implements the Bubble Tea model for the menu bar.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	errMsg      string
	infoMsg     string

	menus    *menu.Registry
	commands *command.Registry
	keys     *keybinding.Registry
	bus      *command.Bus

	bar     *menubar.Bar
	context *menuview.View

	palette             *uistate.Level
	paletteCursor       cursor.Model
	paletteCursorDirty  bool
	paletteLastSelected string

	shell   *shell.Shell
	opener  *opener.Service
	ctx     context.Context
	cancel  context.CancelFunc
	version string

	bindingsMu sync.Mutex
	bindings   []widget.Binding

	socketPath  string
	inTmux      bool
	backend     *backend.Watcher
	sessions    state.SessionStore
	sessionMenu *contrib.SessionMenu
	dispatcher  *dispatcher.Dispatcher

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the registries, applies the built-in and extra
// contributions and builds the menu bar.
func NewModel(opts Options) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		menus:      menu.NewRegistry(),
		commands:   command.NewRegistry(),
		keys:       keybinding.NewRegistry(),
		shell:      shell.New(),
		ctx:        ctx,
		cancel:     cancel,
		version:    opts.Version,
		socketPath: opts.SocketPath,
		inTmux:     os.Getenv("TMUX") != "",
		backend:    opts.Watcher,
		sessions:   state.NewSessionStore(),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.bus = command.NewBus(m.commands)
	m.commands.SetContext(m.commandContext)
	m.opener = m.newOpener()
	m.sessionMenu = contrib.NewSessionMenu(m.menus, m.commands)
	m.dispatcher = dispatcher.New(m.sessions, m.sessionMenu)

	contribs := []contrib.Contribution{appContribution{m: m}, contrib.Tmux{}, helpContribution{}}
	contribs = append(contribs, opts.Contributions...)
	if err := contrib.Apply(m.registries(), contribs...); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
	}
	m.refreshBindings()
	m.bar = m.CreateMenuBar()

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.paletteCursor = c

	if opts.OpenMenuBar {
		m.bar.Open(0)
	}
	m.registerHandlers()
	return m
}

func (m *Model) registries() contrib.Registries {
	return contrib.Registries{Menus: m.menus, Commands: m.commands, Keybindings: m.keys}
}

func (m *Model) newOpener() *opener.Service {
	manager := opener.NewWidgetManager()
	_ = manager.Register(widget.About(m.version))
	_ = manager.Register(widget.Keybindings(m.bindingList))
	about := opener.NewHandler("help.about", "about", "about", manager, m.shell)
	keys := opener.NewHandler("help.keybindings", "keys", "keybindings", manager, m.shell)
	return opener.NewService(about, keys)
}

func (m *Model) commandContext() command.Context {
	ctx := command.Context{SocketPath: m.socketPath, InTmux: m.inTmux}
	if w, ok := m.shell.Active(); ok {
		ctx.Focused = w.ID()
	}
	return ctx
}

func (m *Model) projector() menu.Projector {
	return menu.Projector{Snapshotter: menu.Snapshotter{
		Commands:    m.commands,
		Keybindings: m.keys,
		Visibility:  menu.VisibilityDynamic,
	}}
}

// CreateMenuBar builds a bar over the main menu. Its entries always show
// every resolved command.
func (m *Model) CreateMenuBar() *menubar.Bar {
	return menubar.New(m.menus, menu.MainMenu, m.projector(), m.shell)
}

// CreateContextMenu builds a closed view over path that honours each
// command's visibility.
func (m *Model) CreateContextMenu(path menu.Path) *menuview.View {
	v := menuview.New(path.String(), m.menus.GetMenu(path), m.projector(), m.shell)
	v.Kind = menuview.KindContext
	return v
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updatePaletteCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):         m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):       m.handleCommandResultMsg,
		reflect.TypeOf(ContributeMsg{}):        m.handleContributeMsg,
		reflect.TypeOf(openWidgetRequestMsg{}): m.handleOpenWidgetRequestMsg,
		reflect.TypeOf(widgetOpenedMsg{}):      m.handleWidgetOpenedMsg,
		reflect.TypeOf(openPaletteMsg{}):       m.handleOpenPaletteMsg,
		reflect.TypeOf(toggleFooterMsg{}):      m.handleToggleFooterMsg,
		reflect.TypeOf(closeWidgetMsg{}):       m.handleCloseWidgetMsg,
		reflect.TypeOf(focusNextWidgetMsg{}):   m.handleFocusNextWidgetMsg,
		reflect.TypeOf(backendEventMsg{}):      m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):       m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.paletteCursorDirty {
		m.paletteCursorDirty = false
		m.paletteCursor.Blink = false
		if cmd := m.paletteCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	return nil
}

// ContributeMsg applies a contribution on the UI goroutine. Send it through
// tea.Program.Send from code that runs elsewhere.
type ContributeMsg struct {
	Contribution contrib.Contribution
}

func (m *Model) handleContributeMsg(msg tea.Msg) tea.Cmd {
	c, ok := msg.(ContributeMsg)
	if !ok || c.Contribution == nil {
		return nil
	}
	if err := contrib.Apply(m.registries(), c.Contribution); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return nil
	}
	m.refreshBindings()
	m.bar.Refresh()
	return nil
}

// refreshBindings snapshots the keybinding reference read by the
// keybindings widget factory, which runs off the UI goroutine.
func (m *Model) refreshBindings() {
	var list []widget.Binding
	for _, b := range builtinBindings {
		list = append(list, b)
	}
	for _, cmd := range m.commands.Commands() {
		bindings := m.keys.KeybindingsForCommand(cmd.ID)
		if len(bindings) == 0 {
			continue
		}
		label := cmd.Label
		if label == "" {
			label = cmd.ID
		}
		list = append(list, widget.Binding{Keys: keybinding.Accelerator(bindings[0]), Label: label})
	}
	m.bindingsMu.Lock()
	m.bindings = list
	m.bindingsMu.Unlock()
}

func (m *Model) bindingList() []widget.Binding {
	m.bindingsMu.Lock()
	defer m.bindingsMu.Unlock()
	return append([]widget.Binding(nil), m.bindings...)
}

// Shutdown cancels pending widget creation and stops the backend watcher.
func (m *Model) Shutdown() {
	m.cancel()
	if m.backend != nil {
		m.backend.Stop()
	}
}
