package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/UnatyNomsa/pitchpal/internal/domain/user"
	"github.com/UnatyNomsa/pitchpal/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.LastActiveAt = now

	query := `
		INSERT INTO users (id, email, subscription_tier, sessions_today, created_at, last_active_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.SubscriptionTier, u.SessionsToday, now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `
		SELECT id, email, subscription_tier, sessions_today, created_at, last_active_at
		FROM users WHERE id = ?
	`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	return u, nil
}

// Update updates a user's email and subscription tier
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET email = ?, subscription_tier = ?, sessions_today = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		u.Email, u.SubscriptionTier, u.SessionsToday, u.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// IncrementSessionCount bumps the daily counter in a single statement so two
// concurrent analysis completions cannot lose an increment.
func (r *UserRepository) IncrementSessionCount(ctx context.Context, id string, now time.Time) error {
	query := `
		UPDATE users
		SET sessions_today = sessions_today + 1, last_active_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, now.Unix(), id)
	if err != nil {
		return errors.DatabaseError("Failed to increment session count", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// ResetDailySessionCount zeroes the daily counter and refreshes last_active_at
func (r *UserRepository) ResetDailySessionCount(ctx context.Context, id string, now time.Time) error {
	query := `
		UPDATE users
		SET sessions_today = 0, last_active_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, now.Unix(), id)
	if err != nil {
		return errors.DatabaseError("Failed to reset session count", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// List retrieves users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	query := `
		SELECT id, email, subscription_tier, sessions_today, created_at, last_active_at
		FROM users
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan user", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate users", err)
	}

	return users, nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var email sql.NullString
	var createdAt, lastActiveAt int64

	err := row.Scan(
		&u.ID, &email, &u.SubscriptionTier, &u.SessionsToday, &createdAt, &lastActiveAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		u.Email = &email.String
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	u.LastActiveAt = time.Unix(lastActiveAt, 0)

	return &u, nil
}
