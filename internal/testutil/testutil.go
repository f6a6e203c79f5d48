package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// NewTestDB creates an in-memory SQLite database for testing
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(64) PRIMARY KEY,
		email VARCHAR(255),
		subscription_tier VARCHAR(16) NOT NULL DEFAULT 'free',
		sessions_today INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		last_active_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id VARCHAR(64) NOT NULL,
		title VARCHAR(255) NOT NULL,
		transcript TEXT,
		duration INTEGER,
		overall_score INTEGER,
		tone_score INTEGER,
		clarity_score INTEGER,
		structure_score INTEGER,
		feedback TEXT,
		suggestions TEXT NOT NULL DEFAULT '[]',
		created_at INTEGER NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
