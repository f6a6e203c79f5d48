package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/UnatyNomsa/pitchpal/internal/api/dto"
	"github.com/UnatyNomsa/pitchpal/internal/auth"
	"github.com/UnatyNomsa/pitchpal/internal/config"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/utils"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/validator"
)

type AuthHandler struct {
	cfg       config.AuthConfig
	logger    *logger.Logger
	validator *validator.Validator
}

func NewAuthHandler(cfg config.AuthConfig, log *logger.Logger, val *validator.Validator) *AuthHandler {
	return &AuthHandler{cfg: cfg, logger: log, validator: val}
}

// Token mints an access token for the given user ID. There is no password
// step; identity is externally supplied and accounts are provisioned lazily.
// @Summary Mint access token
// @Description Mint a JWT for a user ID
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "User identity"
// @Success 200 {object} utils.SuccessResponse{data=dto.TokenResponse} "Access token"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Router /auth/token [post]
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrors := h.validator.Validate(&req); len(validationErrors) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrors))
		return
	}

	token, err := auth.MintToken(req.UserID, req.Email, h.cfg.JWTSecret, h.cfg.AccessTokenExpiry)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to mint token")
		utils.WriteError(w, errors.Internal("Failed to mint token", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.cfg.AccessTokenExpiry),
	})

	utils.WriteSuccess(w, http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.cfg.AccessTokenExpiry.Seconds()),
	})
}
