// Package tui is the terminal chat view: a scrollable message list above a
// multi-line input, driven by a conversation.Controller.
package tui

import (
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/longkey1/mentorchat/internal/mentor/conversation"
	"github.com/longkey1/mentorchat/internal/mentor/variant"
	"go.uber.org/zap"
)

// Layout constants
const (
	headerHeight = 3 // title, description, divider
	inputHeight  = 3
	footerHeight = 2 // status line, hint line
	minWidth     = 20
	defaultWidth = 80
)

// Options configure a Model.
type Options struct {
	Controller *conversation.Controller
	Variant    *variant.Variant
	Theme      string
	Logger     *zap.Logger
}

// Model is the bubbletea model of the chat screen.
type Model struct {
	ctrl    *conversation.Controller
	variant *variant.Variant
	theme   string
	styles  Styles
	keys    keyMap
	logger  *zap.Logger

	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	state    conversation.State
	rendered int // message count at the last scroll-follow
	status   string
	width    int
	height   int
	ready    bool

	updates     chan conversation.State
	unsubscribe func()
	closeOnce   sync.Once
}

// New creates the chat model and subscribes it to the controller.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	v := opts.Variant
	if v == nil {
		v, _ = variant.Builtin(variant.DefaultName)
	}
	styles := NewStyles(opts.Theme)

	ta := textarea.New()
	ta.Placeholder = v.Placeholder
	ta.Prompt = "▍ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(defaultWidth - 2)
	ta.SetHeight(inputHeight)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Waiting

	m := &Model{
		ctrl:     opts.Controller,
		variant:  v,
		theme:    opts.Theme,
		styles:   styles,
		keys:     newKeyMap(),
		logger:   logger.Named("tui"),
		input:    ta,
		spinner:  sp,
		viewport: viewport.New(defaultWidth, 10),
		state:    opts.Controller.Snapshot(),
		width:    defaultWidth,
		updates:  make(chan conversation.State, 1),
	}
	m.renderer = newRenderer(m.theme, defaultWidth)
	m.unsubscribe = opts.Controller.Subscribe(m.deliver)
	return m
}

// deliver hands st to the event loop, replacing any undelivered older state.
// Controller notifications are serialized, so there is a single sender.
func (m *Model) deliver(st conversation.State) {
	select {
	case m.updates <- st:
		return
	default:
	}
	select {
	case <-m.updates:
	default:
	}
	select {
	case m.updates <- st:
	default:
	}
}

// Close unsubscribes from the controller and closes it, cancelling any
// pending reply. It is safe to call more than once.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.unsubscribe()
		close(m.updates)
		m.ctrl.Close()
	})
}

func newRenderer(theme string, width int) *glamour.TermRenderer {
	if theme != "light" {
		theme = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return renderer
}
