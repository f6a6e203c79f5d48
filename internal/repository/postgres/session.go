package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/UnatyNomsa/pitchpal/internal/domain/analysis"
	"github.com/UnatyNomsa/pitchpal/internal/domain/session"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
)

// SessionRepository implements session.Repository
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) session.Repository {
	return &SessionRepository{db: db}
}

// Create inserts a session and fills in its generated id and timestamp
func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	now := time.Now()
	s.CreatedAt = now

	suggestions, err := marshalSuggestions(s.Suggestions)
	if err != nil {
		return errors.DatabaseError("Failed to encode suggestions", err)
	}

	query := `
		INSERT INTO sessions (user_id, title, transcript, duration, overall_score, tone_score, clarity_score, structure_score, feedback, suggestions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		s.UserID, s.Title, s.Transcript, s.Duration,
		s.OverallScore, s.ToneScore, s.ClarityScore, s.StructureScore,
		s.Feedback, suggestions, now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create session", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get session ID", err)
	}

	s.ID = id
	return nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*session.Session, error) {
	query := `
		SELECT id, user_id, title, transcript, duration, overall_score, tone_score, clarity_score, structure_score, feedback, suggestions, created_at
		FROM sessions WHERE id = ?
	`

	s, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Session")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get session", err)
	}

	return s, nil
}

// ListByUser retrieves a user's sessions, newest first
func (r *SessionRepository) ListByUser(ctx context.Context, userID string) ([]*session.Session, error) {
	query := `
		SELECT id, user_id, title, transcript, duration, overall_score, tone_score, clarity_score, structure_score, feedback, suggestions, created_at
		FROM sessions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list sessions", err)
	}
	defer rows.Close()

	var sessions []*session.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan session", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate sessions", err)
	}

	return sessions, nil
}

// UpdateAnalysis writes all analysis fields plus the derived duration in one
// statement, then re-reads the row so the caller sees exactly what persisted.
func (r *SessionRepository) UpdateAnalysis(ctx context.Context, id int64, a *analysis.Analysis, duration int) (*session.Session, error) {
	suggestions, err := marshalSuggestions(a.Suggestions)
	if err != nil {
		return nil, errors.DatabaseError("Failed to encode suggestions", err)
	}

	query := `
		UPDATE sessions
		SET transcript = ?, duration = ?, overall_score = ?, tone_score = ?, clarity_score = ?, structure_score = ?, feedback = ?, suggestions = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		a.Transcript, duration,
		a.OverallScore, a.ToneScore, a.ClarityScore, a.StructureScore,
		a.Feedback, suggestions, id,
	)
	if err != nil {
		return nil, errors.DatabaseError("Failed to update session analysis", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return nil, errors.NotFound("Session")
	}

	return r.GetByID(ctx, id)
}

// Delete deletes a session
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return errors.DatabaseError("Failed to delete session", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("Session")
	}

	return nil
}

// CountSince counts a user's sessions created at or after the given time
func (r *SessionRepository) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM sessions
		WHERE user_id = ? AND created_at >= ?
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, since.Unix()).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count sessions", err)
	}

	return count, nil
}

// DeleteOlderThan removes a user's sessions created before the cutoff
func (r *SessionRepository) DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE user_id = ? AND created_at < ?
	`

	result, err := r.db.ExecContext(ctx, query, userID, cutoff.Unix())
	if err != nil {
		return 0, errors.DatabaseError("Failed to delete expired sessions", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows, nil
}

func marshalSuggestions(suggestions []string) (string, error) {
	if suggestions == nil {
		suggestions = []string{}
	}
	data, err := json.Marshal(suggestions)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func scanSession(row rowScanner) (*session.Session, error) {
	var s session.Session
	var transcript, feedback sql.NullString
	var duration, overall, tone, clarity, structure sql.NullInt64
	var suggestions string
	var createdAt int64

	err := row.Scan(
		&s.ID, &s.UserID, &s.Title, &transcript, &duration,
		&overall, &tone, &clarity, &structure,
		&feedback, &suggestions, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if transcript.Valid {
		s.Transcript = &transcript.String
	}
	if feedback.Valid {
		s.Feedback = &feedback.String
	}
	if duration.Valid {
		d := int(duration.Int64)
		s.Duration = &d
	}
	if overall.Valid {
		v := int(overall.Int64)
		s.OverallScore = &v
	}
	if tone.Valid {
		v := int(tone.Int64)
		s.ToneScore = &v
	}
	if clarity.Valid {
		v := int(clarity.Int64)
		s.ClarityScore = &v
	}
	if structure.Valid {
		v := int(structure.Int64)
		s.StructureScore = &v
	}

	s.Suggestions = []string{}
	if suggestions != "" {
		if err := json.Unmarshal([]byte(suggestions), &s.Suggestions); err != nil {
			return nil, err
		}
	}
	s.CreatedAt = time.Unix(createdAt, 0)

	return &s, nil
}
