package reply

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedRespondsAfterDelay(t *testing.T) {
	s := NewSimulated(30*time.Millisecond, Fixed("こんにちは！"))

	start := time.Now()
	got, err := s.Respond(context.Background(), nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "こんにちは！", got)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestSimulatedRendersInput(t *testing.T) {
	s := NewSimulated(0, strings.ToUpper)

	got, err := s.Respond(context.Background(), nil, "career")
	require.NoError(t, err)
	assert.Equal(t, "CAREER", got)
}

func TestSimulatedWithoutRenderEchoes(t *testing.T) {
	s := NewSimulated(-time.Second, nil)
	assert.Equal(t, time.Duration(0), s.Delay)

	got, err := s.Respond(context.Background(), nil, "echo")
	require.NoError(t, err)
	assert.Equal(t, "echo", got)
}

func TestSimulatedHonoursCancellation(t *testing.T) {
	s := NewSimulated(time.Hour, Fixed("never"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Respond(ctx, nil, "hi")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Respond() did not return after cancel")
	}
}

func TestTemplate(t *testing.T) {
	tests := []struct {
		name  string
		tmpl  string
		input string
		want  string
	}{
		{"single", "「{{input}}」について", "転職", "「転職」について"},
		{"repeated", "{{input}} / {{input}}", "a", "a / a"},
		{"no placeholder", "fixed", "ignored", "fixed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Template(tt.tmpl)(tt.input))
		})
	}
}
