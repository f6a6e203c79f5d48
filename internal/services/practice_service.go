package services

import (
	"context"
	"strings"

	"github.com/UnatyNomsa/pitchpal/internal/domain/analysis"
	"github.com/UnatyNomsa/pitchpal/internal/domain/session"
	"github.com/UnatyNomsa/pitchpal/internal/domain/user"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/metrics"
)

// quotaExceededMessage tells the caller to upgrade, not to retry
const quotaExceededMessage = "Daily session limit reached. Upgrade to Pro for unlimited sessions."

// PracticeService composes the quota policy, session aggregate, and analysis
// pipeline into the caller-facing workflows.
type PracticeService struct {
	users    user.Service
	sessions session.Service
	analysis analysis.Service
	logger   *logger.Logger
}

// NewPracticeService creates a new practice service
func NewPracticeService(users user.Service, sessions session.Service, an analysis.Service, log *logger.Logger) *PracticeService {
	return &PracticeService{
		users:    users,
		sessions: sessions,
		analysis: an,
		logger:   log,
	}
}

// CreateSession checks the owner's quota and inserts a pending session.
// Creating a session does not consume quota; only analysis completion does.
func (p *PracticeService) CreateSession(ctx context.Context, userID, title string) (*session.Session, error) {
	u, err := p.users.EnsureProvisioned(ctx, userID)
	if err != nil {
		return nil, err
	}

	allowed, err := p.users.CanCreateSession(ctx, u)
	if err != nil {
		return nil, err
	}
	if !allowed {
		metrics.RecordQuotaDenial(string(u.SubscriptionTier))
		return nil, errors.QuotaExceeded(quotaExceededMessage)
	}

	sess, err := p.sessions.Create(ctx, userID, title)
	if err != nil {
		return nil, err
	}

	metrics.RecordSessionCreated(string(u.SubscriptionTier))
	return sess, nil
}

// AnalyzeSession runs the full audio pipeline for a session, merges the
// result, and consumes a quota slot for the session's stored owner rather
// than the caller-supplied user.
func (p *PracticeService) AnalyzeSession(ctx context.Context, sessionID int64, audio []byte) (*session.Session, error) {
	if len(audio) == 0 {
		return nil, errors.BadRequest("No audio file provided")
	}

	a, err := p.analysis.AnalyzeAudio(ctx, audio)
	if err != nil {
		return nil, err
	}

	updated, err := p.sessions.MergeAnalysis(ctx, sessionID, a)
	if err != nil {
		return nil, err
	}

	// Merge and increment are two independent writes. If the increment fails
	// the session stays analyzed and the quota under-counts, which favors the
	// user over double-charging.
	if err := p.users.IncrementSessionCount(ctx, updated.UserID); err != nil {
		p.logger.WithFields(map[string]interface{}{
			"session_id": sessionID,
			"user_id":    updated.UserID,
		}).ErrorWithErr(err, "Failed to increment session count after analysis")
	}

	return updated, nil
}

// AnalyzeText scores raw text without a session and without touching quota.
// Used for ungated inspection.
func (p *PracticeService) AnalyzeText(ctx context.Context, text string) (*analysis.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.BadRequest("No text provided")
	}
	return p.analysis.AnalyzeText(ctx, text)
}
