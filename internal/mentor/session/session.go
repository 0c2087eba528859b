// Package session persists conversation transcripts so a chat can be
// listed, inspected and resumed later.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/longkey1/mentorchat/internal/mentor"
)

// Session represents a saved conversation
type Session struct {
	ID        string           `json:"id"`      // UUID v4 (e.g., "550e8400-e29b-41d4-a716-446655440000")
	Name      string           `json:"name"`    // Optional session name (empty by default)
	Variant   string           `json:"variant"` // Variant the conversation was started with
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Messages  []mentor.Message `json:"messages"`
}

// NewSession creates a new, empty session for the given variant
func NewSession(variant string) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		Variant:   variant,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []mentor.Message{},
	}
}

// SetMessages replaces the transcript and bumps UpdatedAt
func (s *Session) SetMessages(messages []mentor.Message) {
	s.Messages = append([]mentor.Message(nil), messages...)
	s.UpdatedAt = time.Now()
}

// GetShortID returns the shortened session ID (first 8 characters)
func (s *Session) GetShortID() string {
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}

// GetDisplayName returns the display name for the session
// If name is set, returns the name. Otherwise, returns the short ID.
func (s *Session) GetDisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.GetShortID()
}

// MessageCount returns the number of messages in the session
func (s *Session) MessageCount() int {
	return len(s.Messages)
}

// LastMessage returns the newest message, if any.
func (s *Session) LastMessage() (mentor.Message, bool) {
	if len(s.Messages) == 0 {
		return mentor.Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
