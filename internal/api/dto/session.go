package dto

import "time"

// SessionDTO represents a practice session in API responses
// Uses camelCase for frontend compatibility
type SessionDTO struct {
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

// CreateSessionRequest represents a session creation request. The title is
// optional; a timestamped default is generated when it is blank.
type CreateSessionRequest struct {
	UserID string `json:"userId,omitempty"`
	Title  string `json:"title,omitempty" validate:"omitempty,max=255"`
}
