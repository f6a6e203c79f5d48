package worker

import (
	"context"
	"testing"
	"time"

	"github.com/UnatyNomsa/pitchpal/internal/domain/session"
	"github.com/UnatyNomsa/pitchpal/internal/domain/user"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/testutil"
)

func TestRetentionSweeper_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC)

	users := testutil.NewMockUserRepository()
	sessions := testutil.NewMockSessionRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	sweeper := NewRetentionSweeper(users, sessions, log)
	sweeper.now = func() time.Time { return now }

	if err := users.Create(ctx, &user.User{ID: "free-user", SubscriptionTier: user.TierFree}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := users.Create(ctx, &user.User{ID: "pro-user", SubscriptionTier: user.TierPro}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	addSession := func(userID string, age int) {
		s := &session.Session{
			UserID:      userID,
			Title:       "Pitch",
			Suggestions: []string{},
			CreatedAt:   now.AddDate(0, 0, -age),
		}
		if err := sessions.Create(ctx, s); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	// Free tier keeps seven days of history
	addSession("free-user", 1)
	addSession("free-user", 6)
	addSession("free-user", 8)
	addSession("free-user", 30)
	// Pro history is never swept
	addSession("pro-user", 365)

	sweeper.Sweep(ctx)

	freeSessions, err := sessions.ListByUser(ctx, "free-user")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(freeSessions) != 2 {
		t.Errorf("free user has %d sessions after sweep, want 2", len(freeSessions))
	}
	for _, s := range freeSessions {
		if now.Sub(s.CreatedAt) > 7*24*time.Hour {
			t.Errorf("session created %v survived the sweep", s.CreatedAt)
		}
	}

	proSessions, err := sessions.ListByUser(ctx, "pro-user")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(proSessions) != 1 {
		t.Errorf("pro user has %d sessions after sweep, want 1", len(proSessions))
	}
}
