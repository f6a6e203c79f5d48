package client

import "context"

// AuthService handles authentication API calls
type AuthService struct {
	client *Client
}

// TokenRequest represents a token mint request
type TokenRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
}

// Token mints an access token for the given user ID and stores it on the
// client for subsequent requests.
func (s *AuthService) Token(ctx context.Context, userID, email string) (*Token, error) {
	var token Token
	err := s.client.doRequest(ctx, "POST", "/api/v1/auth/token", &TokenRequest{UserID: userID, Email: email}, &token)
	if err != nil {
		return nil, err
	}

	s.client.SetToken(token.AccessToken)
	return &token, nil
}
