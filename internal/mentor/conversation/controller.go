// Package conversation holds the state of a single chat: the ordered
// message list, the draft being composed, and the busy flag that gates
// submission while a reply is pending.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/longkey1/mentorchat/internal/mentor"
	"go.uber.org/zap"
)

// ErrUnknownMessage is returned by Copy when no message has the given ID.
var ErrUnknownMessage = errors.New("unknown message")

// Responder produces the assistant reply for an accepted user message.
// history holds every message up to and including the user message.
// Implementations must return promptly once ctx is cancelled.
type Responder interface {
	Respond(ctx context.Context, history []mentor.Message, input string) (string, error)
}

// Clipboard receives text from the copy action.
type Clipboard interface {
	WriteText(text string) error
}

// State is an immutable snapshot of a conversation.
type State struct {
	Messages []mentor.Message
	Draft    string
	Busy     bool
	Err      error  // Last responder error, cleared by the next accepted submit
	Revision uint64 // Increases on every change
}

// Listener is notified after every state change.
// Listeners run on the goroutine that made the change and must not call
// mutating Controller methods synchronously.
type Listener func(State)

// Options configure a Controller.
type Options struct {
	// Greeting seeds one assistant message when History is empty.
	Greeting string

	// History restores a previous transcript. Takes precedence over Greeting.
	History []mentor.Message

	// Responder generates replies. Required.
	Responder Responder

	// Clipboard backs Copy. Optional.
	Clipboard Clipboard

	Logger *zap.Logger
	Now    func() time.Time
}

// Controller owns the conversation state and the submit flow.
// It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	messages []mentor.Message
	draft    string
	busy     bool
	err      error
	revision uint64
	closed   bool

	// cancel is the handle of the pending reply task, nil when idle.
	cancel context.CancelFunc
	wg     sync.WaitGroup

	notifyMu     sync.Mutex
	listeners    map[int]Listener
	nextListener int

	ids       *idSource
	responder Responder
	clipboard Clipboard
	logger    *zap.Logger
}

// New creates a controller. It panics if opts.Responder is nil.
func New(opts Options) *Controller {
	if opts.Responder == nil {
		panic("conversation: nil Responder")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &Controller{
		listeners: make(map[int]Listener),
		ids:       newIDSource(now),
		responder: opts.Responder,
		clipboard: opts.Clipboard,
		logger:    logger.Named("conversation"),
	}

	switch {
	case len(opts.History) > 0:
		c.messages = append([]mentor.Message(nil), opts.History...)
		c.ids.observe(c.messages)
	case strings.TrimSpace(opts.Greeting) != "":
		c.messages = []mentor.Message{c.ids.message(mentor.RoleAssistant, strings.TrimSpace(opts.Greeting))}
	}

	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	return State{
		Messages: append([]mentor.Message(nil), c.messages...),
		Draft:    c.draft,
		Busy:     c.busy,
		Err:      c.err,
		Revision: c.revision,
	}
}

// Draft returns the text being composed.
func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Busy reports whether a reply is pending.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// CanSubmit reports whether the current draft would be accepted.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && !c.busy && strings.TrimSpace(c.draft) != ""
}

// SetDraft replaces the draft.
func (c *Controller) SetDraft(draft string) {
	c.mu.Lock()
	if c.closed || c.draft == draft {
		c.mu.Unlock()
		return
	}
	c.draft = draft
	c.revision++
	c.mu.Unlock()

	c.notify()
}

// SubmitDraft submits the controller's own draft.
func (c *Controller) SubmitDraft() bool {
	return c.Submit(c.Draft())
}

// Submit appends draft as a user message and starts the reply task.
// It is a no-op returning false when the trimmed draft is empty, a reply
// is pending, or the controller is closed. A rejected draft is left as is.
func (c *Controller) Submit(draft string) bool {
	content := strings.TrimSpace(draft)

	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		c.logger.Debug("Submit rejected, conversation closed")
		return false
	case content == "":
		c.mu.Unlock()
		c.logger.Debug("Submit rejected, empty draft")
		return false
	case c.busy:
		c.mu.Unlock()
		c.logger.Debug("Submit rejected, reply pending")
		return false
	}

	msg := c.ids.message(mentor.RoleUser, content)
	c.messages = append(c.messages, msg)
	c.draft = ""
	c.busy = true
	c.err = nil
	c.revision++

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	history := append([]mentor.Message(nil), c.messages...)
	c.wg.Add(1)
	c.mu.Unlock()

	c.logger.Debug("Message submitted", zap.String("id", msg.ID), zap.Int("length", len(content)))
	c.notify()

	go c.awaitReply(ctx, history, content)
	return true
}

func (c *Controller) awaitReply(ctx context.Context, history []mentor.Message, input string) {
	defer c.wg.Done()

	start := time.Now()
	reply, err := c.responder.Respond(ctx, history, input)

	c.mu.Lock()
	if c.closed || ctx.Err() != nil {
		c.mu.Unlock()
		c.logger.Debug("Reply discarded after close")
		return
	}
	c.cancel()
	c.cancel = nil

	if err == nil {
		reply = strings.TrimSpace(reply)
		if reply == "" {
			err = errors.New("empty reply")
		}
	}
	if err != nil {
		c.busy = false
		c.err = fmt.Errorf("reply failed: %w", err)
		c.revision++
		c.mu.Unlock()

		c.logger.Error("Reply failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		c.notify()
		return
	}

	msg := c.ids.message(mentor.RoleAssistant, reply)
	c.messages = append(c.messages, msg)
	c.busy = false
	c.revision++
	c.mu.Unlock()

	c.logger.Debug("Reply received", zap.String("id", msg.ID), zap.Duration("elapsed", time.Since(start)))
	c.notify()
}

// Copy hands the content of the message with the given ID to the clipboard.
// Failures are logged and returned; they never change conversation state.
func (c *Controller) Copy(id string) error {
	c.mu.Lock()
	var content string
	found := false
	for _, m := range c.messages {
		if m.ID == id {
			content, found = m.Content, true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownMessage, id)
	}
	if c.clipboard == nil {
		err := errors.New("clipboard unavailable")
		c.logger.Warn("Copy failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := c.clipboard.WriteText(content); err != nil {
		c.logger.Warn("Copy failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("copying message: %w", err)
	}
	c.logger.Debug("Message copied", zap.String("id", id))
	return nil
}

// Subscribe registers l for state change notifications.
// The returned function removes the subscription.
func (c *Controller) Subscribe(l Listener) func() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	id := c.nextListener
	c.nextListener++
	c.listeners[id] = l

	return func() {
		c.notifyMu.Lock()
		defer c.notifyMu.Unlock()
		delete(c.listeners, id)
	}
}

// notify delivers the latest snapshot to every listener. Snapshots are
// taken under notifyMu so deliveries never go backwards in revision.
func (c *Controller) notify() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	state := c.snapshotLocked()
	c.mu.Unlock()

	for _, l := range c.listeners {
		l(state)
	}
}

// Close cancels any pending reply, waits for it to finish and drops all
// listeners. The state is frozen afterwards. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	c.wg.Wait()

	c.notifyMu.Lock()
	c.listeners = make(map[int]Listener)
	c.notifyMu.Unlock()

	c.logger.Debug("Conversation closed")
}
