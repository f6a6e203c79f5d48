package session

import (
	"context"

	"github.com/UnatyNomsa/pitchpal/internal/domain/analysis"
)

// Service defines the interface for session business logic
type Service interface {
	// Create creates a pending session. An empty title defaults to a
	// timestamped label.
	Create(ctx context.Context, userID, title string) (*Session, error)

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id int64) (*Session, error)

	// ListByUser retrieves a user's sessions, newest first
	ListByUser(ctx context.Context, userID string) ([]*Session, error)

	// MergeAnalysis moves the session from pending to analyzed, writing the
	// transcript, scores, feedback, suggestions, and estimated duration
	MergeAnalysis(ctx context.Context, id int64, a *analysis.Analysis) (*Session, error)

	// Delete deletes a session
	Delete(ctx context.Context, id int64) error

	// CountSince counts a user's sessions in a trailing window
	CountSince(ctx context.Context, userID string, days int) (int, error)
}
