package handlers

import (
	"net/http"

	"github.com/UnatyNomsa/pitchpal/internal/api/dto"
	"github.com/UnatyNomsa/pitchpal/internal/api/middleware"
	"github.com/UnatyNomsa/pitchpal/internal/domain/analysis"
	"github.com/UnatyNomsa/pitchpal/internal/domain/session"
	"github.com/UnatyNomsa/pitchpal/internal/domain/user"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/utils"
)

// demoUserID is the identity used when a request carries neither a token nor
// an explicit userId. Users are provisioned lazily, so the demo account works
// out of the box.
const demoUserID = "demo-user"

// resolveUserID picks the acting user: authenticated identity first, then the
// userId query parameter, then the demo account.
func resolveUserID(r *http.Request) string {
	if userID, ok := middleware.GetUserID(r); ok && userID != "" {
		return userID
	}
	if userID := r.URL.Query().Get("userId"); userID != "" {
		return userID
	}
	return demoUserID
}

// writeServiceError maps a service error to an HTTP response, preserving
// AppError status codes and falling back to a 500 otherwise.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal(fallback, err))
}

func toSessionDTO(s *session.Session) dto.SessionDTO {
	return dto.SessionDTO{
		ID:             s.ID,
		UserID:         s.UserID,
		Title:          s.Title,
		Transcript:     s.Transcript,
		Duration:       s.Duration,
		OverallScore:   s.OverallScore,
		ToneScore:      s.ToneScore,
		ClarityScore:   s.ClarityScore,
		StructureScore: s.StructureScore,
		Feedback:       s.Feedback,
		Suggestions:    s.Suggestions,
		CreatedAt:      s.CreatedAt,
	}
}

func toAnalysisDTO(a *analysis.Analysis) dto.AnalysisDTO {
	return dto.AnalysisDTO{
		Transcript:     a.Transcript,
		OverallScore:   a.OverallScore,
		ToneScore:      a.ToneScore,
		ClarityScore:   a.ClarityScore,
		StructureScore: a.StructureScore,
		Feedback:       a.Feedback,
		Suggestions:    a.Suggestions,
	}
}

func toUserDTO(u *user.User) dto.UserDTO {
	return dto.UserDTO{
		ID:               u.ID,
		Email:            u.Email,
		SubscriptionTier: string(u.SubscriptionTier),
		SessionsToday:    u.SessionsToday,
		CreatedAt:        u.CreatedAt,
		LastActiveAt:     u.LastActiveAt,
	}
}
