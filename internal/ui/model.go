package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/dirtree/internal/nav"
	"github.com/atomicstack/dirtree/internal/render"
	"github.com/atomicstack/dirtree/internal/theme"
	"github.com/atomicstack/dirtree/internal/tree"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultHeight    = 24
	defaultStatusTTL = 5 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// tickMsg drives status message expiry.
type tickMsg time.Time

// Options configures a Model.
type Options struct {
	Width       int
	Height      int
	ShowFooter  bool
	MaxSiblings int
	// Tick is the interval of the status expiry timer; zero disables it.
	Tick      time.Duration
	StatusTTL time.Duration
	Executor  nav.Executor
}

// Model implements the Bubble Tea model for the directory browser.
type Model struct {
	ctrl        *nav.Controller
	keys        KeyMap
	help        help.Model
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	render      render.Options
	tick        time.Duration
	statusTTL   time.Duration
	frame       string
	quitting    bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps t in a controller and prepares the view.
func NewModel(t *tree.Tree, opts Options) *Model {
	h := help.New()
	if styles.FooterKey != nil {
		h.Styles.ShortKey = *styles.FooterKey
	}
	if styles.FooterAction != nil {
		h.Styles.ShortDesc = *styles.FooterAction
	}
	m := &Model{
		ctrl:       nav.New(t, opts.Executor),
		keys:       DefaultKeyMap(),
		help:       h,
		showFooter: opts.ShowFooter,
		render:     render.Options{MaxSiblings: opts.MaxSiblings},
		tick:       opts.Tick,
		statusTTL:  opts.StatusTTL,
	}
	if m.statusTTL <= 0 {
		m.statusTTL = defaultStatusTTL
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
		m.help.Width = opts.Width
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
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

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	cmd := m.keys.Command(keyMsg)
	if cmd == nav.CommandNone {
		return nil
	}
	if res := m.ctrl.Apply(cmd); res.Quit {
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
		m.help.Width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.ctrl.MarkDirty()
	return nil
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(tickMsg)
	if !ok {
		return nil
	}
	m.ctrl.ExpireStatus(time.Time(tick), m.statusTTL)
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	if m.tick <= 0 {
		return nil
	}
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Controller exposes the navigation controller, mostly for tests.
func (m *Model) Controller() *nav.Controller {
	return m.ctrl
}
