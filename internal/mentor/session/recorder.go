package session

import (
	"context"
	"sync"
	"time"

	"github.com/longkey1/mentorchat/internal/mentor/conversation"
	"go.uber.org/zap"
)

const saveTimeout = 5 * time.Second

// Recorder saves a session every time the observed conversation gains a
// message. Use Observe as a conversation.Listener.
type Recorder struct {
	store   Store
	logger  *zap.Logger
	mu      sync.Mutex
	session *Session
	saved   int
	err     error
}

// NewRecorder records into sess. Messages already in sess count as saved.
func NewRecorder(store Store, sess *Session, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		store:   store,
		logger:  logger.Named("recorder"),
		session: sess,
		saved:   len(sess.Messages),
	}
}

// Observe saves st.Messages when their count differs from the last save.
func (r *Recorder) Observe(st conversation.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(st.Messages) == 0 || len(st.Messages) == r.saved {
		return
	}

	r.session.SetMessages(st.Messages)

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := r.store.Save(ctx, r.session); err != nil {
		r.err = err
		r.logger.Error("Failed to save session", zap.String("session", r.session.ID), zap.Error(err))
		return
	}
	r.saved = len(st.Messages)
	r.err = nil
	r.logger.Debug("Session saved", zap.String("session", r.session.ID), zap.Int("messages", r.saved))
}

// Err returns the error of the most recent failed save, nil after a success.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Session returns the recorded session.
func (r *Recorder) Session() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}
