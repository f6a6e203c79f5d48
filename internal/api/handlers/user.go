package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/UnatyNomsa/pitchpal/internal/api/dto"
	"github.com/UnatyNomsa/pitchpal/internal/domain/user"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/utils"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/validator"
)

type UserHandler struct {
	users     user.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewUserHandler(users user.Service, log *logger.Logger, val *validator.Validator) *UserHandler {
	return &UserHandler{users: users, logger: log, validator: val}
}

// GetSubscription returns a user's subscription summary
// @Summary Get subscription info
// @Description Get a user's tier, entitlements, and recent usage. Unknown users are provisioned on the free tier.
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.SubscriptionDTO} "Subscription summary"
// @Router /users/{id}/subscription [get]
func (h *UserHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Provision on first contact so the endpoint works for brand-new IDs
	if _, err := h.users.EnsureProvisioned(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to get subscription")
		return
	}

	info, err := h.users.GetSubscriptionInfo(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get subscription")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.SubscriptionDTO{
		User: toUserDTO(info.User),
		Limits: dto.LimitsDTO{
			DailySessions: info.Limits.DailySessions,
			HistoryDays:   info.Limits.HistoryDays,
			Features:      info.Limits.Features,
			MaxUsers:      info.Limits.MaxUsers,
		},
		Usage: dto.UsageDTO{
			SessionsToday:     info.Usage.SessionsToday,
			SessionsThisMonth: info.Usage.SessionsThisMonth,
		},
	})
}

// UpgradeSubscription changes a user's tier
// @Summary Upgrade subscription
// @Description Change a user's subscription tier
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpgradeSubscriptionRequest true "Target tier"
// @Success 200 {object} utils.SuccessResponse{data=dto.UserDTO} "Updated user"
// @Failure 404 {object} utils.ErrorResponse "User not found"
// @Router /users/{id}/subscription [put]
func (h *UserHandler) UpgradeSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpgradeSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrors := h.validator.Validate(&req); len(validationErrors) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrors))
		return
	}

	u, err := h.users.UpgradeSubscription(r.Context(), id, user.SubscriptionTier(req.Tier))
	if err != nil {
		writeServiceError(w, err, "Failed to upgrade subscription")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toUserDTO(u))
}
