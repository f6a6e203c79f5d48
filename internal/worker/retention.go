package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/UnatyNomsa/pitchpal/internal/domain/session"
	"github.com/UnatyNomsa/pitchpal/internal/domain/user"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/metrics"
)

// retentionUserBatch bounds how many users one sweep considers
const retentionUserBatch = 1000

// RetentionSweeper deletes sessions that have aged past their owner's
// history window. Pro and team tiers keep history forever; only limited
// tiers are swept.
type RetentionSweeper struct {
	users    user.Repository
	sessions session.Repository
	cron     *cron.Cron
	logger   *logger.Logger
	now      func() time.Time
}

// NewRetentionSweeper creates a new retention sweeper
func NewRetentionSweeper(users user.Repository, sessions session.Repository, log *logger.Logger) *RetentionSweeper {
	return &RetentionSweeper{
		users:    users,
		sessions: sessions,
		cron:     cron.New(),
		logger:   log,
		now:      time.Now,
	}
}

// Start schedules the sweep and begins the cron loop
func (s *RetentionSweeper) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.Sweep(context.Background())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Infof("Retention sweeper started with schedule %q", schedule)
	return nil
}

// Stop stops the cron loop and waits for a running sweep to finish
func (s *RetentionSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Retention sweeper stopped")
}

// Sweep walks all users and prunes sessions older than each user's history
// window. Errors on one user do not stop the sweep.
func (s *RetentionSweeper) Sweep(ctx context.Context) {
	now := s.now().UTC()

	users, err := s.users.List(ctx, retentionUserBatch, 0)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list users for retention sweep")
		return
	}

	var total int64
	for _, u := range users {
		deleted, err := s.sweepUser(ctx, u, now)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"user_id": u.ID,
			}).ErrorWithErr(err, "Failed to sweep user history")
			continue
		}
		total += deleted
	}

	if total > 0 {
		metrics.RecordRetentionDeleted(total)
	}
	s.logger.WithFields(map[string]interface{}{
		"users":   len(users),
		"deleted": total,
	}).Info("Retention sweep completed")
}

func (s *RetentionSweeper) sweepUser(ctx context.Context, u *user.User, now time.Time) (int64, error) {
	limits := user.LimitsFor(u.SubscriptionTier)
	if limits.HistoryDays == user.Unlimited {
		return 0, nil
	}

	cutoff := now.AddDate(0, 0, -limits.HistoryDays)
	return s.sessions.DeleteOlderThan(ctx, u.ID, cutoff)
}
