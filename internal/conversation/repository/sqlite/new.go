package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"intent-pipeline/internal/conversation/repository"
	"intent-pipeline/pkg/log"
)

const driverName = "sqlite"

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// Open creates or opens the archive database at path and ensures the schema.
func Open(path string, l log.Logger) (repository.Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	r := &implRepository{db: db, l: l}
	if err := r.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return r, nil
}

func (r *implRepository) Close() error {
	return r.db.Close()
}

// dsn returns a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("conversation/repository/sqlite.%s", method)
}

func (r *implRepository) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		user_input TEXT NOT NULL,
		intent TEXT NOT NULL,
		confidence REAL NOT NULL,
		target TEXT NOT NULL DEFAULT '',
		details_json TEXT,
		original_text TEXT NOT NULL DEFAULT '',
		response TEXT NOT NULL,
		execution_time REAL NOT NULL,
		success INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, id);

	CREATE TABLE IF NOT EXISTS contexts (
		session_id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		current_task TEXT NOT NULL DEFAULT '',
		current_target TEXT NOT NULL DEFAULT '',
		preferences_json TEXT,
		recent_actions_json TEXT,
		updated_at TEXT NOT NULL
	);`
	_, err := r.db.Exec(schema)
	return err
}
