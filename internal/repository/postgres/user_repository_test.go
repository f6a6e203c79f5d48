package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/UnatyNomsa/pitchpal/internal/domain/user"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
	"github.com/UnatyNomsa/pitchpal/internal/testutil"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	email := "seller@example.com"
	u := &user.User{
		ID:               "u1",
		Email:            &email,
		SubscriptionTier: user.TierFree,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("id = %q, want %q", got.ID, "u1")
	}
	if got.Email == nil || *got.Email != email {
		t.Errorf("email = %v, want %q", got.Email, email)
	}
	if got.SubscriptionTier != user.TierFree {
		t.Errorf("tier = %v, want %v", got.SubscriptionTier, user.TierFree)
	}
	if got.SessionsToday != 0 {
		t.Errorf("sessions_today = %d, want 0", got.SessionsToday)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.IsNotFound(err) {
		t.Errorf("GetByID() error = %v, want not found", err)
	}
}

func TestUserRepository_IncrementSessionCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{ID: "u1", SubscriptionTier: user.TierFree}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := repo.IncrementSessionCount(ctx, "u1", now); err != nil {
			t.Fatalf("IncrementSessionCount() error = %v", err)
		}
	}

	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.SessionsToday != 3 {
		t.Errorf("sessions_today = %d, want 3", got.SessionsToday)
	}
	if got.LastActiveAt.Unix() != now.Unix() {
		t.Errorf("last_active_at = %v, want %v", got.LastActiveAt, now)
	}

	if err := repo.IncrementSessionCount(ctx, "missing", now); !errors.IsNotFound(err) {
		t.Errorf("IncrementSessionCount() on missing user error = %v, want not found", err)
	}
}

func TestUserRepository_ResetDailySessionCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{ID: "u1", SubscriptionTier: user.TierFree}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	now := time.Now()
	for i := 0; i < 2; i++ {
		if err := repo.IncrementSessionCount(ctx, "u1", now); err != nil {
			t.Fatalf("IncrementSessionCount() error = %v", err)
		}
	}

	if err := repo.ResetDailySessionCount(ctx, "u1", now); err != nil {
		t.Fatalf("ResetDailySessionCount() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.SessionsToday != 0 {
		t.Errorf("sessions_today = %d after reset, want 0", got.SessionsToday)
	}
}

func TestUserRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{ID: "u1", SubscriptionTier: user.TierFree}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	u.SubscriptionTier = user.TierPro
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.SubscriptionTier != user.TierPro {
		t.Errorf("tier = %v, want %v", got.SubscriptionTier, user.TierPro)
	}

	if err := repo.Update(ctx, &user.User{ID: "missing"}); !errors.IsNotFound(err) {
		t.Errorf("Update() on missing user error = %v, want not found", err)
	}
}
