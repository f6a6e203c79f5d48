package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/UnatyNomsa/pitchpal/internal/api/dto"
	"github.com/UnatyNomsa/pitchpal/internal/domain/session"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/logger"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/utils"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/validator"
	"github.com/UnatyNomsa/pitchpal/internal/services"
)

// maxAudioBytes caps uploaded pitch recordings at 25MB, matching the
// transcription provider's own limit.
const maxAudioBytes = 25 << 20

type SessionHandler struct {
	practice  *services.PracticeService
	sessions  session.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewSessionHandler(practice *services.PracticeService, sessions session.Service, log *logger.Logger, val *validator.Validator) *SessionHandler {
	return &SessionHandler{practice: practice, sessions: sessions, logger: log, validator: val}
}

// Create creates a new practice session
// @Summary Create practice session
// @Description Create a pending practice session, enforcing the owner's daily quota
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest false "Session details"
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionDTO} "Session created"
// @Failure 429 {object} utils.ErrorResponse "Daily session limit reached"
// @Router /sessions [post]
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSessionRequest
	if r.Body != nil {
		// An empty body is fine; every field has a default
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			utils.WriteError(w, errors.BadRequest("Invalid request body"))
			return
		}
	}

	if validationErrors := h.validator.Validate(&req); len(validationErrors) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrors))
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = resolveUserID(r)
	}

	s, err := h.practice.CreateSession(r.Context(), userID, req.Title)
	if err != nil {
		writeServiceError(w, err, "Failed to create session")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, toSessionDTO(s))
}

// List returns the acting user's sessions
// @Summary List practice sessions
// @Description Get the acting user's sessions, newest first
// @Tags Sessions
// @Produce json
// @Param userId query string false "Acting user ID (defaults to demo-user)"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.SessionDTO} "List of sessions"
// @Router /sessions [get]
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r)

	list, err := h.sessions.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to list sessions")
		return
	}

	dtos := make([]dto.SessionDTO, len(list))
	for i, s := range list {
		dtos[i] = toSessionDTO(s)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Get returns a single session by ID
// @Summary Get session by ID
// @Tags Sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionDTO} "Session details"
// @Failure 404 {object} utils.ErrorResponse "Session not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid session ID"))
		return
	}

	s, err := h.sessions.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get session")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toSessionDTO(s))
}

// Delete removes a session
// @Summary Delete session
// @Tags Sessions
// @Param id path int true "Session ID"
// @Success 200 {object} utils.SuccessResponse "Session deleted"
// @Failure 404 {object} utils.ErrorResponse "Session not found"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid session ID"))
		return
	}

	if err := h.sessions.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete session")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Session deleted", nil)
}

// Analyze runs the audio analysis pipeline for a session
// @Summary Analyze session audio
// @Description Transcribe and score an uploaded recording, merging the result into the session and consuming one quota slot
// @Tags Sessions
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Session ID"
// @Param audio formData file true "Pitch recording"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionDTO} "Analyzed session"
// @Failure 400 {object} utils.ErrorResponse "No audio file provided"
// @Failure 404 {object} utils.ErrorResponse "Session not found"
// @Failure 502 {object} utils.ErrorResponse "Transcription service unavailable"
// @Router /sessions/{id}/analyze [post]
func (h *SessionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid session ID"))
		return
	}

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		utils.WriteError(w, errors.BadRequest("No audio file provided"))
		return
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("No audio file provided"))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Failed to read audio file"))
		return
	}

	s, err := h.practice.AnalyzeSession(r.Context(), id, audio)
	if err != nil {
		writeServiceError(w, err, "Failed to analyze session")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toSessionDTO(s))
}
