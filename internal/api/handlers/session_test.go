package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/UnatyNomsa/pitchpal/internal/api/middleware"
	"github.com/UnatyNomsa/pitchpal/internal/domain/user"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/validator"
	"github.com/UnatyNomsa/pitchpal/internal/services"
	"github.com/UnatyNomsa/pitchpal/internal/testutil"
)

type handlerFixture struct {
	handler  *SessionHandler
	users    *testutil.MockUserRepository
	sessions *testutil.MockSessionRepository
	ai       *testutil.MockAIClient
}

func newHandlerFixture() *handlerFixture {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	val := validator.New()
	users := testutil.NewMockUserRepository()
	sessions := testutil.NewMockSessionRepository()
	ai := &testutil.MockAIClient{
		TranscribeText: "one two three four five",
		ScoreResponse: `{
			"transcript": "one two three four five",
			"overallScore": 85, "toneScore": 80, "clarityScore": 90, "structureScore": 75,
			"feedback": "Good pitch.", "suggestions": ["Add a call to action"]
		}`,
	}

	userSvc := services.NewUserService(users, sessions, log)
	sessionSvc := services.NewSessionService(sessions, log)
	analysisSvc := services.NewAnalysisService(ai, log)
	practice := services.NewPracticeService(userSvc, sessionSvc, analysisSvc, log)

	return &handlerFixture{
		handler:  NewSessionHandler(practice, sessionSvc, log, val),
		users:    users,
		sessions: sessions,
		ai:       ai,
	}
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}

func TestSessionHandler_Create(t *testing.T) {
	f := newHandlerFixture()

	body := bytes.NewBufferString(`{"title": "Demo pitch"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", body)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, "u1"))
	rr := httptest.NewRecorder()

	f.handler.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	response := decodeResponse(t, rr)
	if response["success"] != true {
		t.Error("success = false")
	}
	data := response["data"].(map[string]interface{})
	if data["title"] != "Demo pitch" {
		t.Errorf("title = %v, want %q", data["title"], "Demo pitch")
	}
	if data["userId"] != "u1" {
		t.Errorf("userId = %v, want %q", data["userId"], "u1")
	}

	if _, ok := f.users.Users["u1"]; !ok {
		t.Error("user was not provisioned")
	}
}

func TestSessionHandler_Create_DefaultsToDemoUser(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()

	f.handler.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	response := decodeResponse(t, rr)
	data := response["data"].(map[string]interface{})
	if data["userId"] != "demo-user" {
		t.Errorf("userId = %v, want %q", data["userId"], "demo-user")
	}
}

func TestSessionHandler_Create_QuotaExceeded(t *testing.T) {
	f := newHandlerFixture()

	ctx := context.Background()
	if err := f.users.Create(ctx, &user.User{ID: "u1", SubscriptionTier: user.TierFree}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	f.users.Users["u1"].SessionsToday = 3
	f.users.Users["u1"].LastActiveAt = time.Now()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", bytes.NewBufferString(`{"userId": "u1"}`))
	rr := httptest.NewRecorder()

	f.handler.Create(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d; body %s", rr.Code, http.StatusTooManyRequests, rr.Body.String())
	}
	response := decodeResponse(t, rr)
	errDetail := response["error"].(map[string]interface{})
	if errDetail["code"] != "QUOTA_EXCEEDED" {
		t.Errorf("error code = %v, want QUOTA_EXCEEDED", errDetail["code"])
	}
}

func TestSessionHandler_List(t *testing.T) {
	f := newHandlerFixture()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := f.handlerCreateSession(ctx, "u1"); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions?userId=u1", nil)
	rr := httptest.NewRecorder()

	f.handler.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	response := decodeResponse(t, rr)
	data := response["data"].([]interface{})
	if len(data) != 2 {
		t.Errorf("returned %d sessions, want 2", len(data))
	}
}

func (f *handlerFixture) handlerCreateSession(ctx context.Context, userID string) (int64, error) {
	body := bytes.NewBufferString(fmt.Sprintf(`{"userId": %q}`, userID))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", body)
	rr := httptest.NewRecorder()
	f.handler.Create(rr, req)
	if rr.Code != http.StatusCreated {
		return 0, fmt.Errorf("create returned %d: %s", rr.Code, rr.Body.String())
	}
	var response struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		return 0, err
	}
	return response.Data.ID, nil
}

func newAnalyzeRequest(t *testing.T, sessionID int64, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if withFile {
		part, err := mw.CreateFormFile("audio", "pitch.webm")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("webm-bytes")); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/sessions/%d/analyze", sessionID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", fmt.Sprintf("%d", sessionID))
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestSessionHandler_Analyze(t *testing.T) {
	f := newHandlerFixture()

	id, err := f.handlerCreateSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	rr := httptest.NewRecorder()
	f.handler.Analyze(rr, newAnalyzeRequest(t, id, true))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	response := decodeResponse(t, rr)
	data := response["data"].(map[string]interface{})
	if data["transcript"] != "one two three four five" {
		t.Errorf("transcript = %v", data["transcript"])
	}
	if data["overallScore"].(float64) != 85 {
		t.Errorf("overallScore = %v, want 85", data["overallScore"])
	}

	if got := f.users.Users["u1"].SessionsToday; got != 1 {
		t.Errorf("sessions_today = %d after analysis, want 1", got)
	}
}

func TestSessionHandler_Analyze_NoFile(t *testing.T) {
	f := newHandlerFixture()

	rr := httptest.NewRecorder()
	f.handler.Analyze(rr, newAnalyzeRequest(t, 1, false))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), "No audio file provided") {
		t.Errorf("body = %s, want no-audio message", rr.Body.String())
	}
}

func TestSessionHandler_Analyze_SessionNotFound(t *testing.T) {
	f := newHandlerFixture()

	rr := httptest.NewRecorder()
	f.handler.Analyze(rr, newAnalyzeRequest(t, 42, true))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d; body %s", rr.Code, http.StatusNotFound, rr.Body.String())
	}
}

func TestSessionHandler_Get_NotFound(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/42", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "42")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()

	f.handler.Get(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
