package conversation

import (
	"testing"
	"time"

	"github.com/longkey1/mentorchat/internal/mentor/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKey(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want KeyAction
	}{
		{name: "plain enter", key: Key{Enter: true}, want: KeySubmit},
		{name: "shift enter", key: Key{Enter: true, Shift: true}, want: KeyNewline},
		{name: "enter while composing", key: Key{Enter: true, Composing: true}, want: KeySuppress},
		{name: "shift enter while composing", key: Key{Enter: true, Shift: true, Composing: true}, want: KeySuppress},
		{name: "other key", key: Key{}, want: KeyPassThrough},
		{name: "other key with shift", key: Key{Shift: true}, want: KeyPassThrough},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyKey(tt.key)
			if got != tt.want {
				t.Errorf("ClassifyKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPressKeyEnterSubmits(t *testing.T) {
	c := New(Options{Responder: reply.NewSimulated(10*time.Millisecond, reply.Fixed("ok"))})
	defer c.Close()

	c.SetDraft("Enter送信テスト")
	action, accepted := c.PressKey(Key{Enter: true})
	assert.Equal(t, KeySubmit, action)
	assert.True(t, accepted)

	st := c.Snapshot()
	require.Len(t, st.Messages, 1)
	assert.Equal(t, "Enter送信テスト", st.Messages[0].Content)
	assert.Equal(t, "", st.Draft)
	waitIdle(t, c)
}

func TestPressKeyShiftEnterInsertsNewline(t *testing.T) {
	c := New(Options{Responder: reply.NewSimulated(0, reply.Fixed("ok"))})
	defer c.Close()

	c.SetDraft("改行テスト")
	action, accepted := c.PressKey(Key{Enter: true, Shift: true})
	assert.Equal(t, KeyNewline, action)
	assert.False(t, accepted)

	st := c.Snapshot()
	assert.Empty(t, st.Messages)
	assert.Equal(t, "改行テスト\n", st.Draft)
}

func TestPressKeyWhileComposingDoesNotSubmit(t *testing.T) {
	c := New(Options{Responder: reply.NewSimulated(0, reply.Fixed("ok"))})
	defer c.Close()

	c.SetDraft("にほんご")
	action, accepted := c.PressKey(Key{Enter: true, Composing: true})
	assert.Equal(t, KeySuppress, action)
	assert.False(t, accepted)

	st := c.Snapshot()
	assert.Empty(t, st.Messages)
	assert.Equal(t, "にほんご", st.Draft)
}

func TestKeyActionString(t *testing.T) {
	assert.Equal(t, "submit", KeySubmit.String())
	assert.Equal(t, "newline", KeyNewline.String())
	assert.Equal(t, "suppress", KeySuppress.String())
	assert.Equal(t, "pass-through", KeyPassThrough.String())
}
