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

type practiceFixture struct {
	svc      *PracticeService
	users    *testutil.MockUserRepository
	sessions *testutil.MockSessionRepository
	ai       *testutil.MockAIClient
}

func newPracticeFixture(now time.Time) *practiceFixture {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	users := testutil.NewMockUserRepository()
	sessions := testutil.NewMockSessionRepository()
	ai := &testutil.MockAIClient{}

	userSvc := NewUserService(users, sessions, log).(*UserService)
	userSvc.now = func() time.Time { return now }
	sessionSvc := NewSessionService(sessions, log).(*SessionService)
	sessionSvc.now = func() time.Time { return now }
	analysisSvc := NewAnalysisService(ai, log)

	return &practiceFixture{
		svc:      NewPracticeService(userSvc, sessionSvc, analysisSvc, log),
		users:    users,
		sessions: sessions,
		ai:       ai,
	}
}

func TestPracticeService_CreateSession_ProvisionsUser(t *testing.T) {
	ctx := context.Background()
	f := newPracticeFixture(time.Now())

	s, err := f.svc.CreateSession(ctx, "new-user", "First pitch")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if s.UserID != "new-user" {
		t.Errorf("session owner = %q, want %q", s.UserID, "new-user")
	}

	u, ok := f.users.Users["new-user"]
	if !ok {
		t.Fatal("user was not provisioned on first session")
	}
	if u.SubscriptionTier != user.TierFree {
		t.Errorf("provisioned tier = %v, want %v", u.SubscriptionTier, user.TierFree)
	}
	// Creation alone does not consume quota
	if u.SessionsToday != 0 {
		t.Errorf("sessions_today = %d after create, want 0", u.SessionsToday)
	}
}

func TestPracticeService_CreateSession_QuotaExhausted(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	f := newPracticeFixture(now)

	if err := f.users.Create(ctx, &user.User{ID: "u1", SubscriptionTier: user.TierFree}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	f.users.Users["u1"].SessionsToday = 3
	f.users.Users["u1"].LastActiveAt = now

	_, err := f.svc.CreateSession(ctx, "u1", "Fourth")
	if err == nil {
		t.Fatal("CreateSession() returned nil error with quota exhausted")
	}
	if !errors.IsQuotaExceeded(err) {
		t.Errorf("error = %v, want quota exceeded", err)
	}
	if len(f.sessions.Sessions) != 0 {
		t.Errorf("%d sessions inserted despite denial, want 0", len(f.sessions.Sessions))
	}
}

func TestPracticeService_CreateSession_DayRolloverGrants(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 0, 5, 0, 0, time.UTC)
	f := newPracticeFixture(now)

	if err := f.users.Create(ctx, &user.User{ID: "u1", SubscriptionTier: user.TierFree}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	f.users.Users["u1"].SessionsToday = 3
	f.users.Users["u1"].LastActiveAt = now.AddDate(0, 0, -1)

	s, err := f.svc.CreateSession(ctx, "u1", "Morning pitch")
	if err != nil {
		t.Fatalf("CreateSession() error = %v, want rollover to grant", err)
	}
	if s == nil {
		t.Fatal("CreateSession() returned nil session")
	}
	if f.users.Users["u1"].SessionsToday != 0 {
		t.Errorf("stored counter = %d after rollover, want 0", f.users.Users["u1"].SessionsToday)
	}
}

func TestPracticeService_CreateSession_ProUnlimited(t *testing.T) {
	ctx := context.Background()
	f := newPracticeFixture(time.Now())

	if err := f.users.Create(ctx, &user.User{ID: "u1", SubscriptionTier: user.TierPro}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	f.users.Users["u1"].SessionsToday = 999
	f.users.Users["u1"].LastActiveAt = time.Now()

	if _, err := f.svc.CreateSession(ctx, "u1", "One more"); err != nil {
		t.Errorf("CreateSession() error = %v for pro user, want nil", err)
	}
}

func TestPracticeService_AnalyzeSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	f := newPracticeFixture(now)
	f.ai.TranscribeText = "one two three four five"
	f.ai.ScoreResponse = validScorerResponse

	s, err := f.svc.CreateSession(ctx, "u1", "Pitch")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	updated, err := f.svc.AnalyzeSession(ctx, s.ID, []byte("webm-bytes"))
	if err != nil {
		t.Fatalf("AnalyzeSession() error = %v", err)
	}
	if !updated.Analyzed() {
		t.Fatal("session not analyzed")
	}
	if *updated.OverallScore != 85 {
		t.Errorf("overall score = %d, want 85", *updated.OverallScore)
	}

	// Quota is consumed at analysis time, charged to the session's owner
	if got := f.users.Users["u1"].SessionsToday; got != 1 {
		t.Errorf("sessions_today = %d after analysis, want 1", got)
	}
}

func TestPracticeService_AnalyzeSession_ChargesStoredOwner(t *testing.T) {
	ctx := context.Background()
	f := newPracticeFixture(time.Now())
	f.ai.TranscribeText = "pitch"
	f.ai.ScoreResponse = validScorerResponse

	s, err := f.svc.CreateSession(ctx, "owner", "Pitch")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if _, err := f.svc.CreateSession(ctx, "bystander", "Other"); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if _, err := f.svc.AnalyzeSession(ctx, s.ID, []byte("webm-bytes")); err != nil {
		t.Fatalf("AnalyzeSession() error = %v", err)
	}

	if got := f.users.Users["owner"].SessionsToday; got != 1 {
		t.Errorf("owner sessions_today = %d, want 1", got)
	}
	if got := f.users.Users["bystander"].SessionsToday; got != 0 {
		t.Errorf("bystander sessions_today = %d, want 0", got)
	}
}

func TestPracticeService_AnalyzeSession_EmptyAudio(t *testing.T) {
	ctx := context.Background()
	f := newPracticeFixture(time.Now())

	_, err := f.svc.AnalyzeSession(ctx, 1, nil)
	if err == nil {
		t.Fatal("AnalyzeSession() returned nil error for empty audio")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeBadRequest {
		t.Errorf("error = %v, want bad request", err)
	}
	if f.ai.TranscribeCalls != 0 {
		t.Errorf("transcriber called %d times for empty audio, want 0", f.ai.TranscribeCalls)
	}
}

func TestPracticeService_AnalyzeSession_MissingSession(t *testing.T) {
	ctx := context.Background()
	f := newPracticeFixture(time.Now())
	f.ai.TranscribeText = "pitch"
	f.ai.ScoreResponse = validScorerResponse

	_, err := f.svc.AnalyzeSession(ctx, 42, []byte("webm-bytes"))
	if !errors.IsNotFound(err) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestPracticeService_AnalyzeSession_IncrementFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	f := newPracticeFixture(time.Now())
	f.ai.TranscribeText = "pitch"
	f.ai.ScoreResponse = validScorerResponse

	s, err := f.svc.CreateSession(ctx, "u1", "Pitch")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	f.users.IncrError = errors.DatabaseError("write failed", nil)

	updated, err := f.svc.AnalyzeSession(ctx, s.ID, []byte("webm-bytes"))
	if err != nil {
		t.Fatalf("AnalyzeSession() error = %v, counter failure must not surface", err)
	}
	if !updated.Analyzed() {
		t.Error("session lost its analysis when the counter write failed")
	}
}

func TestPracticeService_AnalyzeText(t *testing.T) {
	ctx := context.Background()
	f := newPracticeFixture(time.Now())
	f.ai.ScoreResponse = validScorerResponse

	if err := f.users.Create(ctx, &user.User{ID: "u1", SubscriptionTier: user.TierFree}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	a, err := f.svc.AnalyzeText(ctx, "our product saves you time")
	if err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	if a.OverallScore != 85 {
		t.Errorf("overall score = %d, want 85", a.OverallScore)
	}

	// Text analysis is ungated and consumes no quota
	if got := f.users.Users["u1"].SessionsToday; got != 0 {
		t.Errorf("sessions_today = %d after text analysis, want 0", got)
	}

	if _, err := f.svc.AnalyzeText(ctx, "   "); err == nil {
		t.Error("AnalyzeText() returned nil error for blank text")
	}
}
