package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/longkey1/mentorchat/internal/mentor"
	"github.com/longkey1/mentorchat/internal/mentor/conversation"
	"go.uber.org/zap"
)

// stateMsg carries a controller snapshot into the event loop.
type stateMsg conversation.State

// listen waits for the next controller snapshot.
func (m *Model) listen() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

// Init starts the cursor blink, the spinner and the state listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.listen())
}

// Update handles one event.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case stateMsg:
		cmd := m.apply(conversation.State(msg))
		return m, tea.Batch(cmd, m.listen())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state.Busy {
			m.refresh()
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Copy):
		m.copyLatest()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	m.status = ""
	switch conversation.ClassifyKey(toKey(msg)) {
	case conversation.KeySubmit:
		m.ctrl.SetDraft(m.input.Value())
		if m.ctrl.SubmitDraft() {
			m.input.Reset()
			m.apply(m.ctrl.Snapshot())
		}
		return m, nil

	case conversation.KeyNewline:
		if m.input.Focused() {
			m.input.InsertString("\n")
			m.ctrl.SetDraft(m.input.Value())
		}
		return m, nil
	}

	// Pass-through keys and composed (pasted) input go to the editor
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

// apply renders st and follows the newest message when the list changed.
func (m *Model) apply(st conversation.State) tea.Cmd {
	if st.Revision < m.state.Revision {
		return nil
	}
	m.state = st

	var cmd tea.Cmd
	if st.Busy {
		m.input.Blur()
	} else if !m.input.Focused() {
		cmd = m.input.Focus()
	}

	m.refresh()
	if len(st.Messages) != m.rendered {
		m.rendered = len(st.Messages)
		m.viewport.GotoBottom()
	}
	return cmd
}

func (m *Model) copyLatest() {
	msg, ok := latestForCopy(m.state.Messages)
	if !ok {
		return
	}
	if err := m.ctrl.Copy(msg.ID); err != nil {
		m.logger.Debug("Copy failed", zap.Error(err))
		m.status = "コピーできませんでした"
		return
	}
	m.status = "コピーしました"
}

// latestForCopy picks the newest assistant message, or the newest message
// when the mentor has not replied yet.
func latestForCopy(messages []mentor.Message) (mentor.Message, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == mentor.RoleAssistant {
			return messages[i], true
		}
	}
	if len(messages) == 0 {
		return mentor.Message{}, false
	}
	return messages[len(messages)-1], true
}

func (m *Model) resize(width, height int) {
	if width < minWidth {
		width = minWidth
	}
	m.width = width
	m.height = height

	vpHeight := height - headerHeight - inputHeight - 2 - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.SetWidth(width - 2)
	m.renderer = newRenderer(m.theme, width-4)
	m.ready = true

	m.refresh()
	m.viewport.GotoBottom()
}
