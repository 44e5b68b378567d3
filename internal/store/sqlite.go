package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
)

// SQLiteStore keeps the state blob in a single-row table, alongside a short
// history of previous payloads.
type SQLiteStore struct {
	db      *sql.DB
	history int
}

// OpenSQLite creates or opens the database at dbPath and initializes the schema.
// history is how many superseded payloads to retain; zero disables history.
func OpenSQLite(dbPath string, history int) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite handles one writer at a time

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteStore{db: db, history: history}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS schedule_state (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  payload TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schedule_history (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  payload TEXT NOT NULL,
  replaced_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_schedule_history_replaced_at ON schedule_history(replaced_at);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Load(ctx context.Context) (*models.State, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM schedule_state WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return decodeState([]byte(payload))
}

func (s *SQLiteStore) Save(ctx context.Context, st *models.State) error {
	data, err := encodeState(st)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().Unix()
	if s.history > 0 {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO schedule_history (payload, replaced_at)
			SELECT payload, ? FROM schedule_state WHERE id = 1
		`, now); err != nil {
			return fmt.Errorf("archive state: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM schedule_history
			WHERE id NOT IN (SELECT id FROM schedule_history ORDER BY id DESC LIMIT ?)
		`, s.history); err != nil {
			return fmt.Errorf("trim history: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO schedule_state (id, payload, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, string(data), now); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// HistoryCount returns the number of retained superseded payloads.
func (s *SQLiteStore) HistoryCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedule_history`).Scan(&count)
	return count, err
}
