package user

import "context"

// Service defines the interface for user account and quota business logic.
//
// The quota check is split in two phases so its writes are visible in the
// interface: EnsureProvisioned may insert a user, and CanCreateSession may
// reset the daily counter on a UTC day rollover.
type Service interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*User, error)

	// EnsureProvisioned returns the user, creating a free-tier account with a
	// zero counter if none exists. An absent user is a provisioning trigger,
	// not an error.
	EnsureProvisioned(ctx context.Context, id string) (*User, error)

	// CanCreateSession reports whether the user may start a session today.
	// A UTC day rollover resets the counter (persisted) and always grants.
	CanCreateSession(ctx context.Context, u *User) (bool, error)

	// IncrementSessionCount consumes one quota slot for the user
	IncrementSessionCount(ctx context.Context, id string) error

	// ResetDailySessionCount zeroes the user's daily counter
	ResetDailySessionCount(ctx context.Context, id string) error

	// UpgradeSubscription changes the user's tier. The daily counter is
	// untouched.
	UpgradeSubscription(ctx context.Context, id string, tier SubscriptionTier) (*User, error)

	// GetSubscriptionInfo returns the user, their tier limits, and today's
	// plus trailing-30-day usage
	GetSubscriptionInfo(ctx context.Context, id string) (*SubscriptionInfo, error)
}
