package user

import "time"

// SubscriptionTier is a user's subscription level
type SubscriptionTier string

// Subscription tiers
const (
	TierFree SubscriptionTier = "free"
	TierPro  SubscriptionTier = "pro"
	TierTeam SubscriptionTier = "team"
)

// Unlimited is the sentinel for limits with no ceiling
const Unlimited = -1

// User represents a practicing user. IDs are opaque and externally supplied;
// users are provisioned lazily on their first quota check.
type User struct {
	ID               string           `json:"id"`
	Email            *string          `json:"email,omitempty"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
	SessionsToday    int              `json:"sessions_today"`
	CreatedAt        time.Time        `json:"created_at"`
	LastActiveAt     time.Time        `json:"last_active_at"`
}

// Limits describes the entitlements of a subscription tier
type Limits struct {
	DailySessions int      `json:"daily_sessions"`
	HistoryDays   int      `json:"history_days"`
	Features      []string `json:"features"`
	MaxUsers      int      `json:"max_users,omitempty"`
}

// SubscriptionLimits is the static entitlement table. It is immutable at
// runtime; every tier has an entry.
var SubscriptionLimits = map[SubscriptionTier]Limits{
	TierFree: {
		DailySessions: 3,
		HistoryDays:   7,
		Features:      []string{"basic_feedback"},
	},
	TierPro: {
		DailySessions: Unlimited,
		HistoryDays:   Unlimited,
		Features:      []string{"advanced_feedback", "progress_tracking", "custom_templates"},
	},
	TierTeam: {
		DailySessions: Unlimited,
		HistoryDays:   Unlimited,
		Features:      []string{"advanced_feedback", "progress_tracking", "custom_templates", "team_dashboard", "admin_analytics"},
		MaxUsers:      10,
	},
}

// Valid reports whether the tier has an entry in the entitlement table.
func (t SubscriptionTier) Valid() bool {
	_, ok := SubscriptionLimits[t]
	return ok
}

// LimitsFor returns the entitlements for a tier. Unknown tiers fall back to
// the free entitlements so a bad row can never grant unlimited use.
func LimitsFor(tier SubscriptionTier) Limits {
	if l, ok := SubscriptionLimits[tier]; ok {
		return l
	}
	return SubscriptionLimits[TierFree]
}

// Usage summarizes a user's recent session consumption
type Usage struct {
	SessionsToday     int `json:"sessions_today"`
	SessionsThisMonth int `json:"sessions_this_month"`
}

// SubscriptionInfo is the composite subscription summary returned to callers
type SubscriptionInfo struct {
	User   *User  `json:"user"`
	Limits Limits `json:"limits"`
	Usage  Usage  `json:"usage"`
}
