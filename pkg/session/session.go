// Package session provides storage for in-flight editing sessions.
//
// A session holds the working state of one canvas: the document being
// edited plus bookkeeping timestamps. Sessions expire after a TTL so
// abandoned canvases don't accumulate. Three backends implement the
// Store interface:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for single-machine CLI use
//   - redis: Redis-backed storage for multi-instance deployments
//
// # Usage
//
// Create a store and a session:
//
//	store := session.NewMemoryStore()
//
//	sess := session.New(canvas.Document{Name: "landing"}, session.DefaultTTL)
//	store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, sess.ID)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // Session not found or expired
//	}
//
// Expired sessions read as absent: Get returns nil, nil and the backend
// may lazily remove the entry.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pagesmith/pagesmith/pkg/canvas"
)

// Session stores the working state of one canvas.
type Session struct {
	ID        string          `json:"id"`
	Document  canvas.Document `json:"document"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch refreshes the session's expiry and update timestamp.
// Call after every mutation so active sessions stay alive.
func (s *Session) Touch(ttl time.Duration) {
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// TTL returns the remaining lifetime of the session, or zero if expired.
func (s *Session) TTL() time.Duration {
	return max(time.Until(s.ExpiresAt), 0)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op for backends
	// with native expiry, like Redis).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// NewID creates a random session ID.
func NewID() string {
	return uuid.NewString()
}

// New creates a session wrapping the given document.
func New(doc canvas.Document, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        NewID(),
		Document:  doc,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
