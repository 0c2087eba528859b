package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/longkey1/mentorchat/internal/mentor"
)

const waitingText = "考え中..."

// View renders the whole screen.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderStatus(),
		m.styles.Input.Width(m.width-2).Render(m.input.View()),
		m.renderHint(),
	)
}

func (m *Model) renderHeader() string {
	title := m.variant.Title
	if title == "" {
		title = m.variant.Name
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(title),
		m.styles.Description.Render(m.variant.Description),
		m.styles.Divider.Render(strings.Repeat("─", m.width)),
	)
}

// refresh re-renders the message list into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderMessages())
}

func (m *Model) renderMessages() string {
	width := m.width - 4
	if len(m.state.Messages) == 0 && !m.state.Busy {
		return m.renderWelcome(width)
	}

	var b strings.Builder
	for _, msg := range m.state.Messages {
		b.WriteString(m.renderMessage(msg, width))
		b.WriteString("\n\n")
	}
	if m.state.Busy {
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.styles.Waiting.Render(waitingText)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderWelcome(width int) string {
	block := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.WelcomeHeading.Render(m.variant.Heading),
		"",
		m.styles.WelcomeText.Render(m.variant.Welcome),
	)
	return lipgloss.Place(width, m.viewport.Height, lipgloss.Center, lipgloss.Center, block)
}

func (m *Model) renderMessage(msg mentor.Message, width int) string {
	labelStyle, bodyStyle := m.styles.UserLabel, m.styles.UserBody
	content := msg.Content
	if msg.Role == mentor.RoleAssistant {
		labelStyle, bodyStyle = m.styles.AssistantLabel, m.styles.AssistantBody
		content = m.renderMarkdown(content)
	}

	header := fmt.Sprintf("%s  %s",
		labelStyle.Render(msg.Label()),
		m.styles.Timestamp.Render(msg.Timestamp.Format("15:04")))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		bodyStyle.Width(width).Render(content),
	)
}

func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

func (m *Model) renderStatus() string {
	switch {
	case m.state.Err != nil:
		return m.styles.Error.Render("返信を受け取れませんでした: " + m.state.Err.Error())
	case m.status != "":
		return m.styles.Status.Render(m.status)
	default:
		return ""
	}
}

// renderHint shows the send hint, dimmed while the draft cannot be sent.
func (m *Model) renderHint() string {
	send := "Enter: 送信"
	rest := "  Alt+Enter: 改行  Ctrl+Y: コピー  Esc: 終了"
	sendStyle := m.styles.Hint
	if !m.ctrl.CanSubmit() {
		sendStyle = m.styles.HintDisabled
	}
	return sendStyle.Render(send) + m.styles.HintDisabled.Render(rest)
}
