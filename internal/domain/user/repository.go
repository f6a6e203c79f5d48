package user

import (
	"context"
	"time"
)

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, user *User) error

	// IncrementSessionCount adds one to the user's daily counter and refreshes
	// last_active_at in a single storage-level statement, so concurrent
	// analysis completions for one user cannot lose increments.
	IncrementSessionCount(ctx context.Context, id string, now time.Time) error

	// ResetDailySessionCount zeroes the daily counter and refreshes
	// last_active_at
	ResetDailySessionCount(ctx context.Context, id string, now time.Time) error

	// List retrieves users with pagination
	List(ctx context.Context, limit, offset int) ([]*User, error)
}
