package services

import (
	"context"
	"fmt"
	"time"

	"github.com/UnatyNomsa/pitchpal/internal/domain/analysis"
	"github.com/UnatyNomsa/pitchpal/internal/domain/session"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
)

// SessionService implements session.Service
type SessionService struct {
	repo   session.Repository
	logger *logger.Logger
	now    func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(repo session.Repository, log *logger.Logger) session.Service {
	return &SessionService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// Create creates a pending session: title and owner only, no analysis fields
func (s *SessionService) Create(ctx context.Context, userID, title string) (*session.Session, error) {
	if title == "" {
		title = fmt.Sprintf("Pitch Session %s", s.now().UTC().Format("Jan 2, 2006 3:04 PM"))
	}

	sess := &session.Session{
		UserID:      userID,
		Title:       title,
		Suggestions: []string{},
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create session")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"session_id": sess.ID,
		"user_id":    userID,
	}).Info("Session created")

	return sess, nil
}

// GetByID retrieves a session by ID
func (s *SessionService) GetByID(ctx context.Context, id int64) (*session.Session, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser retrieves a user's sessions, newest first
func (s *SessionService) ListByUser(ctx context.Context, userID string) ([]*session.Session, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MergeAnalysis writes the transcript, four scores, feedback, suggestions,
// and the estimated duration in one update, moving the session to analyzed.
// Calling it again overwrites the previous analysis; there is no terminal
// guard.
func (s *SessionService) MergeAnalysis(ctx context.Context, id int64, a *analysis.Analysis) (*session.Session, error) {
	duration := session.EstimateDuration(a.Transcript)

	updated, err := s.repo.UpdateAnalysis(ctx, id, a, duration)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to merge analysis into session")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"session_id":    id,
		"overall_score": a.OverallScore,
		"duration":      duration,
	}).Info("Session analyzed")

	return updated, nil
}

// Delete deletes a session
func (s *SessionService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// CountSince counts a user's sessions created in the trailing window of days
func (s *SessionService) CountSince(ctx context.Context, userID string, days int) (int, error) {
	since := s.now().UTC().AddDate(0, 0, -days)
	return s.repo.CountSince(ctx, userID, since)
}
