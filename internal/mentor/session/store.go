package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when no session matches the requested ID.
var ErrNotFound = errors.New("session not found")

// MinPrefixLength is the shortest ID prefix FindByPrefix accepts.
const MinPrefixLength = 4

// Store persists sessions.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// List returns all sessions sorted by UpdatedAt (newest first)
	List(ctx context.Context) ([]Session, error)
	Close() error
}

// Open returns the store for backend ("json" or "sqlite") rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", "json":
		return NewFileStore(dir), nil
	case "sqlite":
		return OpenSQLite(filepath.Join(dir, "sessions.db"))
	default:
		return nil, fmt.Errorf("unsupported session store: %s", backend)
	}
}

// AmbiguousIDError is returned when multiple sessions match a prefix
type AmbiguousIDError struct {
	Prefix  string
	Matches []Session
}

func (e *AmbiguousIDError) Error() string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Ambiguous session ID %q. Multiple matches found:", e.Prefix))
	for _, match := range e.Matches {
		lines = append(lines, fmt.Sprintf("- %s (%s, %s, %d messages)",
			match.GetShortID(),
			match.Variant,
			match.CreatedAt.Format("2006-01-02"),
			match.MessageCount()))
	}
	lines = append(lines, "")
	lines = append(lines, "Please use a longer prefix or run 'mentorchat sessions list'.")
	return strings.Join(lines, "\n")
}

// FindByPrefix finds a session by short ID prefix (minimum 4 characters)
// Returns error if multiple matches are found (AmbiguousIDError)
// Special case: "latest" returns the most recently updated session
func FindByPrefix(ctx context.Context, store Store, prefix string) (*Session, error) {
	if prefix == "latest" {
		return Latest(ctx, store)
	}

	if len(prefix) < MinPrefixLength {
		return nil, fmt.Errorf("session ID prefix must be at least %d characters (got %d)", MinPrefixLength, len(prefix))
	}

	// Check if it's a full UUID (36 characters with 4 dashes)
	if len(prefix) == 36 && strings.Count(prefix, "-") == 4 {
		return store.Load(ctx, prefix)
	}

	sessions, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []Session
	for _, s := range sessions {
		if strings.HasPrefix(s.ID, prefix) {
			matches = append(matches, s)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s\n\nRun 'mentorchat sessions list' to see available sessions.", ErrNotFound, prefix)
	}

	if len(matches) > 1 {
		return nil, &AmbiguousIDError{
			Prefix:  prefix,
			Matches: matches,
		}
	}

	return &matches[0], nil
}

// Latest returns the most recently updated session
func Latest(ctx context.Context, store Store) (*Session, error) {
	sessions, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(sessions) == 0 {
		return nil, fmt.Errorf("%w: no sessions saved yet\n\nStart one with: mentorchat chat --new-session", ErrNotFound)
	}

	return &sessions[0], nil
}

// Prune deletes every session last updated before cutoff and returns how
// many were removed.
func Prune(ctx context.Context, store Store, cutoff time.Time) (int, error) {
	sessions, err := store.List(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, s := range sessions {
		if !s.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := store.Delete(ctx, s.ID); err != nil {
			return deleted, fmt.Errorf("failed to delete session %s: %w", s.GetShortID(), err)
		}
		deleted++
	}
	return deleted, nil
}
