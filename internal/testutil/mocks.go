package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/UnatyNomsa/pitchpal/internal/domain/analysis"
	"github.com/UnatyNomsa/pitchpal/internal/domain/session"
	"github.com/UnatyNomsa/pitchpal/internal/domain/user"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[string]*user.User
	CreateError error
	GetError    error
	UpdateError error
	IncrError   error
	ResetError  error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*user.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// Preserve timestamps set by the caller so fixtures with a fixed clock
	// survive insertion, as the SQL repository does.
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.LastActiveAt.IsZero() {
		u.LastActiveAt = now
	}
	cp := *u
	m.Users[u.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[u.ID]; !ok {
		return errors.NotFound("User")
	}
	cp := *u
	m.Users[u.ID] = &cp
	return nil
}

func (m *MockUserRepository) IncrementSessionCount(ctx context.Context, id string, now time.Time) error {
	if m.IncrError != nil {
		return m.IncrError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	u.SessionsToday++
	u.LastActiveAt = now
	return nil
}

func (m *MockUserRepository) ResetDailySessionCount(ctx context.Context, id string, now time.Time) error {
	if m.ResetError != nil {
		return m.ResetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	u.SessionsToday = 0
	u.LastActiveAt = now
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*user.User
	for _, u := range m.Users {
		cp := *u
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if offset > len(result) {
		offset = len(result)
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// MockSessionRepository is a mock implementation of session.Repository
type MockSessionRepository struct {
	mu          sync.Mutex
	Sessions    map[int64]*session.Session
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
	DeleteError error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		Sessions: make(map[int64]*session.Session),
		NextID:   1,
	}
}

func (m *MockSessionRepository) Create(ctx context.Context, s *session.Session) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.NextID
	m.NextID++
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	cp := *s
	m.Sessions[s.ID] = &cp
	return nil
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id int64) (*session.Session, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Sessions[id]
	if !ok {
		return nil, errors.NotFound("Session")
	}
	cp := *s
	return &cp, nil
}

func (m *MockSessionRepository) ListByUser(ctx context.Context, userID string) ([]*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*session.Session
	for _, s := range m.Sessions {
		if s.UserID == userID {
			cp := *s
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockSessionRepository) UpdateAnalysis(ctx context.Context, id int64, a *analysis.Analysis, duration int) (*session.Session, error) {
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Sessions[id]
	if !ok {
		return nil, errors.NotFound("Session")
	}
	transcript := a.Transcript
	feedback := a.Feedback
	overall := a.OverallScore
	tone := a.ToneScore
	clarity := a.ClarityScore
	structure := a.StructureScore
	d := duration
	s.Transcript = &transcript
	s.Feedback = &feedback
	s.OverallScore = &overall
	s.ToneScore = &tone
	s.ClarityScore = &clarity
	s.StructureScore = &structure
	s.Duration = &d
	s.Suggestions = append([]string{}, a.Suggestions...)
	cp := *s
	return &cp, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Sessions[id]; !ok {
		return errors.NotFound("Session")
	}
	delete(m.Sessions, id)
	return nil
}

func (m *MockSessionRepository) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, s := range m.Sessions {
		if s.UserID == userID && !s.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *MockSessionRepository) DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, s := range m.Sessions {
		if s.UserID == userID && s.CreatedAt.Before(cutoff) {
			delete(m.Sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

// MockAIClient is a mock implementation of analysis.Client
type MockAIClient struct {
	TranscribeText  string
	TranscribeError error
	ScoreResponse   string
	ScoreError      error

	TranscribeCalls int
	ScoreCalls      int
	LastPrompt      string
}

func (m *MockAIClient) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	m.TranscribeCalls++
	if m.TranscribeError != nil {
		return "", m.TranscribeError
	}
	return m.TranscribeText, nil
}

func (m *MockAIClient) Score(ctx context.Context, prompt string) (string, error) {
	m.ScoreCalls++
	m.LastPrompt = prompt
	if m.ScoreError != nil {
		return "", m.ScoreError
	}
	return m.ScoreResponse, nil
}
