package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/longkey1/mentorchat/internal/mentor"
	"github.com/longkey1/mentorchat/internal/mentor/conversation"
	"github.com/longkey1/mentorchat/internal/mentor/reply"
	"github.com/longkey1/mentorchat/internal/mentor/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// gate replies "ok reply" once released.
type gate chan struct{}

func (g gate) Respond(ctx context.Context, _ []mentor.Message, _ string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-g:
		return "ok reply", nil
	}
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteText(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func newTestModel(t *testing.T, opts conversation.Options, v *variant.Variant) *Model {
	t.Helper()
	if opts.Responder == nil {
		opts.Responder = reply.NewSimulated(0, reply.Fixed("ok reply"))
	}
	c := conversation.New(opts)
	m := New(Options{Controller: c, Variant: v, Theme: "dark"})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

// waitFor feeds controller snapshots into the model until cond holds.
func waitFor(t *testing.T, m *Model, cond func(conversation.State) bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !cond(m.state) {
		select {
		case st := <-m.updates:
			m.Update(stateMsg(st))
		case <-deadline:
			t.Fatalf("timed out waiting for state, last: %+v", m.state)
		}
	}
}

func view(m *Model) string {
	return ansi.Strip(m.View())
}

func TestViewBeforeResize(t *testing.T) {
	c := conversation.New(conversation.Options{Responder: reply.NewSimulated(0, nil)})
	m := New(Options{Controller: c})
	defer m.Close()

	assert.Equal(t, "Initializing...", m.View())
}

func TestWelcomeShownWhenEmpty(t *testing.T) {
	m := newTestModel(t, conversation.Options{}, nil)

	out := view(m)
	assert.Contains(t, out, "Mentor AI へようこそ")
	assert.Contains(t, out, "何でもお気軽にお話しください。")
	assert.Contains(t, out, "Mentor AI")
}

func TestGreetingReplacesWelcome(t *testing.T) {
	v, ok := variant.Builtin("companion")
	require.True(t, ok)
	m := newTestModel(t, conversation.Options{Greeting: v.Greeting}, v)

	out := view(m)
	assert.NotContains(t, out, v.Heading)
	assert.Contains(t, out, "Mentor")
}

func TestEnterSubmitsDraft(t *testing.T) {
	g := make(gate)
	m := newTestModel(t, conversation.Options{Responder: g}, nil)

	typeText(m, "hello")
	assert.Equal(t, "hello", m.ctrl.Draft())

	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	st := m.ctrl.Snapshot()
	require.Len(t, st.Messages, 1)
	assert.Equal(t, "hello", st.Messages[0].Content)
	assert.Equal(t, "", m.input.Value())
	assert.True(t, m.state.Busy)
	assert.False(t, m.input.Focused(), "input is disabled while waiting")
	assert.Contains(t, view(m), waitingText)

	close(g)
	waitFor(t, m, func(st conversation.State) bool { return !st.Busy })

	out := view(m)
	assert.Contains(t, out, "ok reply")
	assert.NotContains(t, out, waitingText)
	assert.True(t, m.input.Focused())
	assert.True(t, m.viewport.AtBottom(), "list follows the newest message")
}

func TestEnterWithBlankDraftDoesNothing(t *testing.T) {
	m := newTestModel(t, conversation.Options{}, nil)

	typeText(m, "   ")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.ctrl.Snapshot().Messages)
	assert.Equal(t, "   ", m.input.Value())
}

func TestAltEnterInsertsNewline(t *testing.T) {
	m := newTestModel(t, conversation.Options{}, nil)

	typeText(m, "line1")
	press(m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	typeText(m, "line2")

	assert.Equal(t, "line1\nline2", m.ctrl.Draft())
	assert.Empty(t, m.ctrl.Snapshot().Messages)
}

func TestPastedEnterDoesNotSubmit(t *testing.T) {
	m := newTestModel(t, conversation.Options{}, nil)

	typeText(m, "draft")
	press(m, tea.KeyMsg{Type: tea.KeyEnter, Paste: true})

	assert.Empty(t, m.ctrl.Snapshot().Messages)
	assert.Contains(t, m.ctrl.Draft(), "draft")
}

func TestEnterWhileBusyIsIgnored(t *testing.T) {
	g := make(gate)
	m := newTestModel(t, conversation.Options{Responder: g}, nil)

	typeText(m, "first")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "second")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Len(t, m.ctrl.Snapshot().Messages, 1)
	close(g)
	waitFor(t, m, func(st conversation.State) bool { return len(st.Messages) == 2 })
}

func TestReplyErrorIsShown(t *testing.T) {
	m := newTestModel(t, conversation.Options{Responder: reply.NewSimulated(0, reply.Fixed(""))}, nil)

	typeText(m, "hi")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, m, func(st conversation.State) bool { return st.Err != nil })

	assert.Contains(t, view(m), "返信を受け取れませんでした")
}

func TestCopyLatestAssistantMessage(t *testing.T) {
	cb := &fakeClipboard{}
	m := newTestModel(t, conversation.Options{Clipboard: cb}, nil)

	typeText(m, "question")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, m, func(st conversation.State) bool { return len(st.Messages) == 2 && !st.Busy })

	press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "ok reply", cb.text)
	assert.Contains(t, view(m), "コピーしました")

	cb.err = errors.New("no display")
	press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Contains(t, view(m), "コピーできませんでした")
}

func TestLatestForCopy(t *testing.T) {
	user := mentor.Message{ID: "1", Role: mentor.RoleUser}
	assistant := mentor.Message{ID: "2", Role: mentor.RoleAssistant}

	_, ok := latestForCopy(nil)
	assert.False(t, ok)

	got, ok := latestForCopy([]mentor.Message{user})
	require.True(t, ok)
	assert.Equal(t, "1", got.ID)

	got, ok = latestForCopy([]mentor.Message{assistant, user})
	require.True(t, ok)
	assert.Equal(t, "2", got.ID)
}

func TestQuitClosesController(t *testing.T) {
	g := make(gate)
	m := newTestModel(t, conversation.Options{Responder: g}, nil)

	typeText(m, "bye")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	assert.False(t, m.ctrl.Submit("after quit"))
	close(g)
}

func TestStaleStateIsIgnored(t *testing.T) {
	m := newTestModel(t, conversation.Options{}, nil)
	typeText(m, "x")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	current := m.state

	m.Update(stateMsg(conversation.State{Revision: 0}))
	assert.Equal(t, current.Revision, m.state.Revision)
}

func TestHintDimsWithoutDraft(t *testing.T) {
	m := newTestModel(t, conversation.Options{}, nil)
	assert.False(t, m.ctrl.CanSubmit())
	typeText(m, "ready")
	assert.True(t, m.ctrl.CanSubmit())
	assert.Contains(t, view(m), "Enter: 送信")
}
