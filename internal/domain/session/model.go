package session

import (
	"math"
	"strings"
	"time"
)

// Session represents one practice pitch. Analysis fields are all-or-nothing:
// a pending session has none of them, an analyzed session has them all.
type Session struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Transcript     *string   `json:"transcript"`
	Duration       *int      `json:"duration"` // seconds, estimated
	OverallScore   *int      `json:"overall_score"`
	ToneScore      *int      `json:"tone_score"`
	ClarityScore   *int      `json:"clarity_score"`
	StructureScore *int      `json:"structure_score"`
	Feedback       *string   `json:"feedback"`
	Suggestions    []string  `json:"suggestions"`
	CreatedAt      time.Time `json:"created_at"`
}

// Analyzed reports whether the session has completed analysis
func (s *Session) Analyzed() bool {
	return s.Transcript != nil
}

// speechWordsPerMinute is the average speaking rate the duration estimate
// assumes.
const speechWordsPerMinute = 150

// EstimateDuration derives a speaking duration in seconds from a transcript's
// whitespace-delimited word count at 150 words per minute. It is an estimate,
// not measured audio length, and will not match the actual clip.
func EstimateDuration(transcript string) int {
	words := len(strings.Fields(transcript))
	minutes := float64(words) / speechWordsPerMinute
	return int(math.Round(minutes * 60))
}
