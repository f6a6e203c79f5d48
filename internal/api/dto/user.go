package dto

import "time"

// UserDTO represents a user in API responses
// Uses camelCase for frontend compatibility
type UserDTO struct {
	ID               string    `json:"id"`
	Email            *string   `json:"email,omitempty"`
	SubscriptionTier string    `json:"subscriptionTier"`
	SessionsToday    int       `json:"sessionsToday"`
	CreatedAt        time.Time `json:"createdAt"`
	LastActiveAt     time.Time `json:"lastActiveAt"`
}

// LimitsDTO represents tier entitlements in API responses
type LimitsDTO struct {
	DailySessions int      `json:"dailySessions"`
	HistoryDays   int      `json:"historyDays"`
	Features      []string `json:"features"`
	MaxUsers      int      `json:"maxUsers,omitempty"`
}

// UsageDTO represents recent session consumption
type UsageDTO struct {
	SessionsToday     int `json:"sessionsToday"`
	SessionsThisMonth int `json:"sessionsThisMonth"`
}

// SubscriptionDTO is the composite subscription summary
type SubscriptionDTO struct {
	User   UserDTO   `json:"user"`
	Limits LimitsDTO `json:"limits"`
	Usage  UsageDTO  `json:"usage"`
}

// UpgradeSubscriptionRequest represents a tier change request
type UpgradeSubscriptionRequest struct {
	Tier string `json:"tier" validate:"required,oneof=free pro team"`
}
