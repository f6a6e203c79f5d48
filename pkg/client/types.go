package client

import "time"

// Session represents a practice pitch session
type Session struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"userId"`
	Title          string    `json:"title"`
	Transcript     *string   `json:"transcript"`
	Duration       *int      `json:"duration"`
	OverallScore   *int      `json:"overallScore"`
	ToneScore      *int      `json:"toneScore"`
	ClarityScore   *int      `json:"clarityScore"`
	StructureScore *int      `json:"structureScore"`
	Feedback       *string   `json:"feedback"`
	Suggestions    []string  `json:"suggestions"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Analyzed reports whether the session has completed analysis
func (s *Session) Analyzed() bool {
	return s.Transcript != nil
}

// Analysis represents a scored pitch
type Analysis struct {
	Transcript     string   `json:"transcript"`
	OverallScore   int      `json:"overallScore"`
	ToneScore      int      `json:"toneScore"`
	ClarityScore   int      `json:"clarityScore"`
	StructureScore int      `json:"structureScore"`
	Feedback       string   `json:"feedback"`
	Suggestions    []string `json:"suggestions"`
}

// User represents a practicing user
type User struct {
	ID               string    `json:"id"`
	Email            *string   `json:"email,omitempty"`
	SubscriptionTier string    `json:"subscriptionTier"`
	SessionsToday    int       `json:"sessionsToday"`
	CreatedAt        time.Time `json:"createdAt"`
	LastActiveAt     time.Time `json:"lastActiveAt"`
}

// Limits describes tier entitlements
type Limits struct {
	DailySessions int      `json:"dailySessions"`
	HistoryDays   int      `json:"historyDays"`
	Features      []string `json:"features"`
	MaxUsers      int      `json:"maxUsers,omitempty"`
}

// Usage summarizes recent session consumption
type Usage struct {
	SessionsToday     int `json:"sessionsToday"`
	SessionsThisMonth int `json:"sessionsThisMonth"`
}

// Subscription is the composite subscription summary
type Subscription struct {
	User   User   `json:"user"`
	Limits Limits `json:"limits"`
	Usage  Usage  `json:"usage"`
}

// Token carries a minted access token
type Token struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}
