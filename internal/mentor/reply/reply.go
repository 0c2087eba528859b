// Package reply provides stand-in reply generators for the conversation
// controller. A real backend attaches by implementing conversation.Responder.
package reply

import (
	"context"
	"strings"
	"time"

	"github.com/longkey1/mentorchat/internal/mentor"
)

// DefaultDelay is the simulated response latency.
const DefaultDelay = 1000 * time.Millisecond

// RenderFunc derives the reply text from the user's input.
type RenderFunc func(input string) string

// Fixed returns a RenderFunc that always replies with text.
func Fixed(text string) RenderFunc {
	return func(string) string { return text }
}

// Template returns a RenderFunc that substitutes the input for every
// {{input}} placeholder in tmpl.
func Template(tmpl string) RenderFunc {
	return func(input string) string {
		return strings.ReplaceAll(tmpl, "{{input}}", input)
	}
}

// Simulated replies after a fixed delay with rendered text. It never fails
// except when ctx is cancelled before the delay elapses.
type Simulated struct {
	Delay  time.Duration
	Render RenderFunc
}

// NewSimulated creates a simulated responder. A negative delay is treated as zero.
func NewSimulated(delay time.Duration, render RenderFunc) *Simulated {
	if delay < 0 {
		delay = 0
	}
	return &Simulated{Delay: delay, Render: render}
}

// Respond waits for the delay and returns the rendered reply.
func (s *Simulated) Respond(ctx context.Context, _ []mentor.Message, input string) (string, error) {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	if s.Render == nil {
		return input, nil
	}
	return s.Render(input), nil
}
