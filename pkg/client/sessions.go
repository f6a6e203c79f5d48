package client

import (
	"context"
	"fmt"
	"io"
	"net/url"
)

// SessionService handles practice session API calls
type SessionService struct {
	client *Client
}

// CreateSessionRequest represents a session creation request
type CreateSessionRequest struct {
	UserID string `json:"userId,omitempty"`
	Title  string `json:"title,omitempty"`
}

// Create creates a new practice session
func (s *SessionService) Create(ctx context.Context, req *CreateSessionRequest) (*Session, error) {
	if req == nil {
		req = &CreateSessionRequest{}
	}

	var session Session
	if err := s.client.doRequest(ctx, "POST", "/api/v1/sessions", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// List retrieves the acting user's sessions, newest first
func (s *SessionService) List(ctx context.Context, userID string) ([]Session, error) {
	path := "/api/v1/sessions"
	if userID != "" {
		path += "?" + url.Values{"userId": {userID}}.Encode()
	}

	var sessions []Session
	if err := s.client.doRequest(ctx, "GET", path, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Get retrieves a session by ID
func (s *SessionService) Get(ctx context.Context, id int64) (*Session, error) {
	var session Session
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/sessions/%d", id), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session
func (s *SessionService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/v1/sessions/%d", id), nil, nil)
}

// Analyze uploads a pitch recording for a session and returns the analyzed
// session. One quota slot is consumed on success.
func (s *SessionService) Analyze(ctx context.Context, id int64, audio io.Reader, filename string) (*Session, error) {
	if filename == "" {
		filename = "pitch.webm"
	}

	var session Session
	path := fmt.Sprintf("/api/v1/sessions/%d/analyze", id)
	if err := s.client.doUpload(ctx, path, "audio", filename, audio, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
