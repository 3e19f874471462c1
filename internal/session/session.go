// Package session keeps the analyzed resume profile for the duration of a browsing session.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-jobmatch/internal/types"
)

// DefaultTTL is how long a session lives after the resume upload
const DefaultTTL = 2 * time.Hour

// ErrNotFound is returned for unknown or expired sessions
var ErrNotFound = errors.New("session not found")

// Session is one uploaded resume and the profile derived from it
type Session struct {
	ID           uuid.UUID            `json:"id"`
	Profile      *types.ResumeProfile `json:"profile"`
	UsedFallback bool                 `json:"used_fallback"`
	CreatedAt    time.Time            `json:"created_at"`
}

// New creates a session with a fresh ID
func New(profile *types.ResumeProfile, usedFallback bool) *Session {
	return &Session{
		ID:           uuid.New(),
		Profile:      profile.Clone(),
		UsedFallback: usedFallback,
		CreatedAt:    time.Now().UTC(),
	}
}

// Store persists sessions until they expire
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}
