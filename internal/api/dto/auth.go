package dto

// TokenRequest represents a demo token mint request
type TokenRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
}

// TokenResponse carries a freshly minted access token
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}
