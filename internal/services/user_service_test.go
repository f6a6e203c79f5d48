package services

import (
	"context"
	"testing"
	"time"

	"github.com/UnatyNomsa/pitchpal/internal/domain/user"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/testutil"
)

func newTestUserService(repo *testutil.MockUserRepository, sessions *testutil.MockSessionRepository, now time.Time) *UserService {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	svc := NewUserService(repo, sessions, log).(*UserService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestUserService_EnsureProvisioned(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewMockUserRepository()
	svc := newTestUserService(repo, testutil.NewMockSessionRepository(), time.Now())

	u, err := svc.EnsureProvisioned(ctx, "user-1")
	if err != nil {
		t.Fatalf("EnsureProvisioned() error = %v", err)
	}
	if u.SubscriptionTier != user.TierFree {
		t.Errorf("tier = %v, want %v", u.SubscriptionTier, user.TierFree)
	}
	if u.SessionsToday != 0 {
		t.Errorf("sessions_today = %d, want 0", u.SessionsToday)
	}

	// Second call must return the same account, not re-provision
	stored := repo.Users["user-1"]
	stored.SessionsToday = 2
	again, err := svc.EnsureProvisioned(ctx, "user-1")
	if err != nil {
		t.Fatalf("EnsureProvisioned() second call error = %v", err)
	}
	if again.SessionsToday != 2 {
		t.Errorf("second call sessions_today = %d, want 2", again.SessionsToday)
	}
}

func TestUserService_CanCreateSession(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		tier          user.SubscriptionTier
		sessionsToday int
		lastActiveAt  time.Time
		want          bool
	}{
		{
			name:          "free user below limit",
			tier:          user.TierFree,
			sessionsToday: 2,
			lastActiveAt:  now,
			want:          true,
		},
		{
			name:          "free user at limit",
			tier:          user.TierFree,
			sessionsToday: 3,
			lastActiveAt:  now,
			want:          false,
		},
		{
			name:          "free user over limit",
			tier:          user.TierFree,
			sessionsToday: 5,
			lastActiveAt:  now,
			want:          false,
		},
		{
			name:          "pro user ignores counter",
			tier:          user.TierPro,
			sessionsToday: 999,
			lastActiveAt:  now,
			want:          true,
		},
		{
			name:          "team user ignores counter",
			tier:          user.TierTeam,
			sessionsToday: 999,
			lastActiveAt:  now,
			want:          true,
		},
		{
			name:          "exhausted counter resets on day rollover",
			tier:          user.TierFree,
			sessionsToday: 3,
			lastActiveAt:  now.AddDate(0, 0, -1),
			want:          true,
		},
		{
			name:          "rollover just before midnight UTC",
			tier:          user.TierFree,
			sessionsToday: 3,
			lastActiveAt:  time.Date(2025, 6, 14, 23, 59, 59, 0, time.UTC),
			want:          true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := testutil.NewMockUserRepository()
			svc := newTestUserService(repo, testutil.NewMockSessionRepository(), now)

			u := &user.User{
				ID:               "u1",
				SubscriptionTier: tt.tier,
				SessionsToday:    tt.sessionsToday,
				LastActiveAt:     tt.lastActiveAt,
			}
			if err := repo.Create(ctx, u); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			repo.Users["u1"].SessionsToday = tt.sessionsToday
			repo.Users["u1"].LastActiveAt = tt.lastActiveAt

			got, err := svc.CanCreateSession(ctx, u)
			if err != nil {
				t.Fatalf("CanCreateSession() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CanCreateSession() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserService_CanCreateSession_RolloverPersistsReset(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	repo := testutil.NewMockUserRepository()
	svc := newTestUserService(repo, testutil.NewMockSessionRepository(), now)

	u := &user.User{ID: "u1", SubscriptionTier: user.TierFree}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	repo.Users["u1"].SessionsToday = 3
	repo.Users["u1"].LastActiveAt = now.AddDate(0, 0, -1)
	u.SessionsToday = 3
	u.LastActiveAt = now.AddDate(0, 0, -1)

	allowed, err := svc.CanCreateSession(ctx, u)
	if err != nil {
		t.Fatalf("CanCreateSession() error = %v", err)
	}
	if !allowed {
		t.Fatal("CanCreateSession() = false after rollover, want true")
	}

	// The reset must reach storage, not just the in-memory copy
	if repo.Users["u1"].SessionsToday != 0 {
		t.Errorf("stored sessions_today = %d after rollover, want 0", repo.Users["u1"].SessionsToday)
	}
	if u.SessionsToday != 0 {
		t.Errorf("in-memory sessions_today = %d after rollover, want 0", u.SessionsToday)
	}
}

func TestUserService_UpgradeSubscription(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewMockUserRepository()
	svc := newTestUserService(repo, testutil.NewMockSessionRepository(), time.Now())

	if err := repo.Create(ctx, &user.User{ID: "u1", SubscriptionTier: user.TierFree}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	repo.Users["u1"].SessionsToday = 2

	u, err := svc.UpgradeSubscription(ctx, "u1", user.TierPro)
	if err != nil {
		t.Fatalf("UpgradeSubscription() error = %v", err)
	}
	if u.SubscriptionTier != user.TierPro {
		t.Errorf("tier = %v, want %v", u.SubscriptionTier, user.TierPro)
	}
	// Upgrading must not touch the counter
	if u.SessionsToday != 2 {
		t.Errorf("sessions_today = %d after upgrade, want 2", u.SessionsToday)
	}
}

func TestUserService_UpgradeSubscription_UnknownTier(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewMockUserRepository()
	svc := newTestUserService(repo, testutil.NewMockSessionRepository(), time.Now())

	if err := repo.Create(ctx, &user.User{ID: "u1", SubscriptionTier: user.TierFree}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := svc.UpgradeSubscription(ctx, "u1", user.SubscriptionTier("platinum"))
	if err == nil {
		t.Fatal("UpgradeSubscription() accepted unknown tier")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeBadRequest {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeBadRequest)
	}
	if repo.Users["u1"].SubscriptionTier != user.TierFree {
		t.Errorf("stored tier = %v after rejected upgrade, want %v", repo.Users["u1"].SubscriptionTier, user.TierFree)
	}
}

func TestUserService_GetSubscriptionInfo(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := testutil.NewMockUserRepository()
	sessions := testutil.NewMockSessionRepository()
	svc := newTestUserService(repo, sessions, now)

	if err := repo.Create(ctx, &user.User{ID: "u1", SubscriptionTier: user.TierFree}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	repo.Users["u1"].SessionsToday = 1

	// Two recent sessions, one outside the 30-day window, one for someone else
	for _, created := range []time.Time{now.AddDate(0, 0, -1), now.AddDate(0, 0, -10)} {
		sessions.Sessions[sessions.NextID] = sessionFixture(sessions.NextID, "u1", created)
		sessions.NextID++
	}
	sessions.Sessions[sessions.NextID] = sessionFixture(sessions.NextID, "u1", now.AddDate(0, 0, -45))
	sessions.NextID++
	sessions.Sessions[sessions.NextID] = sessionFixture(sessions.NextID, "u2", now)
	sessions.NextID++

	info, err := svc.GetSubscriptionInfo(ctx, "u1")
	if err != nil {
		t.Fatalf("GetSubscriptionInfo() error = %v", err)
	}
	if info.Limits.DailySessions != 3 {
		t.Errorf("daily limit = %d, want 3", info.Limits.DailySessions)
	}
	if info.Limits.HistoryDays != 7 {
		t.Errorf("history days = %d, want 7", info.Limits.HistoryDays)
	}
	if info.Usage.SessionsToday != 1 {
		t.Errorf("sessions_today = %d, want 1", info.Usage.SessionsToday)
	}
	if info.Usage.SessionsThisMonth != 2 {
		t.Errorf("sessions_this_month = %d, want 2", info.Usage.SessionsThisMonth)
	}
}
