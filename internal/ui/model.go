package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/kaomoji-picker/internal/catalog"
	"github.com/atomicstack/kaomoji-picker/internal/clipboard"
	"github.com/atomicstack/kaomoji-picker/internal/hotkey"
	"github.com/atomicstack/kaomoji-picker/internal/picker"
	"github.com/atomicstack/kaomoji-picker/internal/theme"
	"github.com/atomicstack/kaomoji-picker/internal/ui/command"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultHint = "kaomoji picker is idle; run `kaomoji-picker activate` to open it (ctrl+c quits)"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Focuser moves terminal focus to the picker and back. The tmux integration
// implements it.
type Focuser interface {
	Show() error
	Hide() error
}

// Options configures a Model.
type Options struct {
	Catalog     *catalog.Catalog
	Hotkey      hotkey.Source
	Clipboard   clipboard.Sink
	Focus       Focuser
	Width       int
	Height      int
	ShowFooter  bool
	ShowOnStart bool
	// Hint replaces the idle line shown while hidden.
	Hint string
}

// Model implements the Bubble Tea model for the kaomoji picker.
type Model struct {
	controller *picker.Controller
	query      textinput.Model
	keys       keyMap
	help       help.Model

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	offset      int
	showFooter  bool
	showOnStart bool
	hint        string

	statusMsg string
	errMsg    string

	hotkey    hotkey.Source
	clipboard clipboard.Sink
	focus     Focuser
	bus       *command.Bus

	lastClick click
	now       func() time.Time

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the picker in the hidden state.
func NewModel(opts Options) *Model {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.New()
	}
	sink := opts.Clipboard
	if sink == nil {
		sink = clipboard.Discard{}
	}
	m := &Model{
		controller:  picker.NewController(cat),
		query:       newQueryInput(),
		keys:        defaultKeyMap(),
		help:        newHelp(),
		showFooter:  opts.ShowFooter,
		showOnStart: opts.ShowOnStart,
		hint:        opts.Hint,
		hotkey:      opts.Hotkey,
		clipboard:   sink,
		focus:       opts.Focus,
		bus:         command.New(),
		lastClick:   click{entry: picker.NoSelection},
		now:         time.Now,
	}
	if m.hint == "" {
		m.hint = defaultHint
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Controller exposes the picker state machine.
func (m *Model) Controller() *picker.Controller {
	return m.controller
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.hotkey != nil {
		cmds = append(cmds, waitForHotkey(m.hotkey))
	}
	if m.showOnStart {
		cmds = append(cmds, func() tea.Msg { return startupActivateMsg{} })
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
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
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):       m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(hotkeyMsg{}):          m.handleHotkeyMsg,
		reflect.TypeOf(hotkeyDoneMsg{}):      m.handleHotkeyDoneMsg,
		reflect.TypeOf(startupActivateMsg{}): m.handleStartupActivateMsg,
		reflect.TypeOf(command.Result{}):     m.handleCommandResultMsg,
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

func batch(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
