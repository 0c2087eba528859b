package conversation

// Key describes a key press on the draft editor.
type Key struct {
	Enter     bool // The key is Enter/Return
	Shift     bool // A newline modifier is held (Shift, or Alt in terminals)
	Composing bool // An input method composition or paste is in progress
}

// KeyAction is the outcome of the key-press policy.
type KeyAction int

const (
	// KeyPassThrough leaves the key to the editor.
	KeyPassThrough KeyAction = iota
	// KeySubmit submits the draft.
	KeySubmit
	// KeyNewline inserts a literal newline into the draft.
	KeyNewline
	// KeySuppress swallows the key.
	KeySuppress
)

func (a KeyAction) String() string {
	switch a {
	case KeySubmit:
		return "submit"
	case KeyNewline:
		return "newline"
	case KeySuppress:
		return "suppress"
	default:
		return "pass-through"
	}
}

// ClassifyKey applies the key-press policy: Enter submits, Shift+Enter
// inserts a newline, and Enter during composition never submits.
func ClassifyKey(k Key) KeyAction {
	switch {
	case !k.Enter:
		return KeyPassThrough
	case k.Composing:
		return KeySuppress
	case k.Shift:
		return KeyNewline
	default:
		return KeySubmit
	}
}

// PressKey applies the key-press policy to the controller's own draft.
// It returns the action taken and, for KeySubmit, whether the draft was accepted.
func (c *Controller) PressKey(k Key) (KeyAction, bool) {
	action := ClassifyKey(k)
	switch action {
	case KeySubmit:
		return action, c.SubmitDraft()
	case KeyNewline:
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			break
		}
		c.draft += "\n"
		c.revision++
		c.mu.Unlock()
		c.notify()
	}
	return action, false
}
