package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/UnatyNomsa/pitchpal/internal/api/dto"
	"github.com/UnatyNomsa/pitchpal/internal/domain/analysis"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/utils"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/validator"
	"github.com/UnatyNomsa/pitchpal/internal/services"
)

type AnalysisHandler struct {
	practice  *services.PracticeService
	analysis  analysis.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewAnalysisHandler(practice *services.PracticeService, an analysis.Service, log *logger.Logger, val *validator.Validator) *AnalysisHandler {
	return &AnalysisHandler{practice: practice, analysis: an, logger: log, validator: val}
}

// AnalyzeText scores raw pitch text without a session
// @Summary Analyze pitch text
// @Description Score pitch text directly. No session is created and no quota is consumed.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeTextRequest true "Pitch text"
// @Success 200 {object} utils.SuccessResponse{data=dto.AnalysisDTO} "Analysis result"
// @Failure 400 {object} utils.ErrorResponse "No text provided"
// @Router /analyze-text [post]
func (h *AnalysisHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrors := h.validator.Validate(&req); len(validationErrors) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrors))
		return
	}

	a, err := h.practice.AnalyzeText(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, err, "Failed to analyze text")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toAnalysisDTO(a))
}

// Tips returns the daily coaching tips
// @Summary Daily coaching tips
// @Description Get a random selection of coaching tips
// @Tags Analysis
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.TipsDTO} "Coaching tips"
// @Router /tips [get]
func (h *AnalysisHandler) Tips(w http.ResponseWriter, r *http.Request) {
	tips := h.analysis.DailyTips(r.Context())
	utils.WriteSuccess(w, http.StatusOK, dto.TipsDTO{Tips: tips})
}
