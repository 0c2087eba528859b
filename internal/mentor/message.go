package mentor

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation
type Message struct {
	ID        string    `json:"id"`        // Creation time in unix nanoseconds, unique within a conversation
	Content   string    `json:"content"`   // Trimmed, never empty
	Role      Role      `json:"role"`      // "user" or "assistant"
	Timestamp time.Time `json:"timestamp"` // Creation time
}

// Label returns the display label for the message author
func (m Message) Label() string {
	if m.Role == RoleAssistant {
		return "Mentor"
	}
	return "You"
}
