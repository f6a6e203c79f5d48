package session

import (
	"context"
	"time"

	"github.com/UnatyNomsa/pitchpal/internal/domain/analysis"
)

// Repository defines the interface for session data access
type Repository interface {
	// Create inserts a session and fills in its generated id and timestamp
	Create(ctx context.Context, s *Session) error

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id int64) (*Session, error)

	// ListByUser retrieves a user's sessions, newest first
	ListByUser(ctx context.Context, userID string) ([]*Session, error)

	// UpdateAnalysis writes all analysis fields plus the derived duration in
	// one statement and returns the post-update row
	UpdateAnalysis(ctx context.Context, id int64, a *analysis.Analysis, duration int) (*Session, error)

	// Delete deletes a session
	Delete(ctx context.Context, id int64) error

	// CountSince counts a user's sessions created at or after the given time
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)

	// DeleteOlderThan removes a user's sessions created before the cutoff and
	// returns how many were deleted
	DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) (int64, error)
}
