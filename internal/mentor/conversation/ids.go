package conversation

import (
	"strconv"
	"time"

	"github.com/longkey1/mentorchat/internal/mentor"
)

// idSource issues message IDs from the creation time in unix nanoseconds.
// When the clock does not advance, the previous ID plus one is used so IDs
// stay unique and increasing. Callers must hold the controller lock.
type idSource struct {
	now  func() time.Time
	last int64
}

func newIDSource(now func() time.Time) *idSource {
	return &idSource{now: now}
}

func (s *idSource) message(role mentor.Role, content string) mentor.Message {
	ts := s.now()
	id := ts.UnixNano()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id

	return mentor.Message{
		ID:        strconv.FormatInt(id, 10),
		Content:   content,
		Role:      role,
		Timestamp: ts,
	}
}

// observe raises the floor above IDs restored from a transcript.
func (s *idSource) observe(messages []mentor.Message) {
	for _, m := range messages {
		if n, err := strconv.ParseInt(m.ID, 10, 64); err == nil && n > s.last {
			s.last = n
		}
	}
}
