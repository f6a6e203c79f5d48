package services

import (
	"context"
	"time"

	"github.com/UnatyNomsa/pitchpal/internal/domain/session"
	"github.com/UnatyNomsa/pitchpal/internal/domain/user"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo     user.Repository
	sessions session.Repository
	logger   *logger.Logger
	now      func() time.Time
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, sessions session.Repository, log *logger.Logger) user.Service {
	return &UserService{
		repo:     repo,
		sessions: sessions,
		logger:   log,
		now:      time.Now,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// EnsureProvisioned returns the user, creating a free-tier account on first
// contact. Absence is a provisioning trigger, never an error.
func (s *UserService) EnsureProvisioned(ctx context.Context, id string) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	u = &user.User{
		ID:               id,
		SubscriptionTier: user.TierFree,
		SessionsToday:    0,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to provision user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"tier":    u.SubscriptionTier,
	}).Info("User provisioned")

	return u, nil
}

// CanCreateSession reports whether the user may start a session today.
// Counters are scoped to last_active_at's UTC calendar day: a day rollover
// resets the counter (persisted write) and always grants at least one session.
func (s *UserService) CanCreateSession(ctx context.Context, u *user.User) (bool, error) {
	limits := user.LimitsFor(u.SubscriptionTier)

	if limits.DailySessions == user.Unlimited {
		return true, nil
	}

	now := s.now().UTC()
	if !sameUTCDay(u.LastActiveAt, now) {
		if err := s.repo.ResetDailySessionCount(ctx, u.ID, now); err != nil {
			return false, err
		}
		u.SessionsToday = 0
		u.LastActiveAt = now
		return true, nil
	}

	return u.SessionsToday < limits.DailySessions, nil
}

// IncrementSessionCount consumes one quota slot. The repository performs the
// increment in a single statement so concurrent completions cannot lose it.
func (s *UserService) IncrementSessionCount(ctx context.Context, id string) error {
	return s.repo.IncrementSessionCount(ctx, id, s.now().UTC())
}

// ResetDailySessionCount zeroes the user's daily counter
func (s *UserService) ResetDailySessionCount(ctx context.Context, id string) error {
	return s.repo.ResetDailySessionCount(ctx, id, s.now().UTC())
}

// UpgradeSubscription changes the user's tier, leaving the daily counter alone
func (s *UserService) UpgradeSubscription(ctx context.Context, id string, tier user.SubscriptionTier) (*user.User, error) {
	if !tier.Valid() {
		return nil, errors.BadRequest("Unknown subscription tier: " + string(tier))
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.SubscriptionTier = tier
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to upgrade subscription")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": id,
		"tier":    tier,
	}).Info("Subscription upgraded")

	return u, nil
}

// GetSubscriptionInfo returns the user, their tier limits, and today's plus
// trailing-30-day usage
func (s *UserService) GetSubscriptionInfo(ctx context.Context, id string) (*user.SubscriptionInfo, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	monthStart := s.now().UTC().AddDate(0, 0, -30)
	monthCount, err := s.sessions.CountSince(ctx, id, monthStart)
	if err != nil {
		return nil, err
	}

	return &user.SubscriptionInfo{
		User:   u,
		Limits: user.LimitsFor(u.SubscriptionTier),
		Usage: user.Usage{
			SessionsToday:     u.SessionsToday,
			SessionsThisMonth: monthCount,
		},
	}, nil
}

// sameUTCDay reports whether two instants fall on the same UTC calendar day
func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
