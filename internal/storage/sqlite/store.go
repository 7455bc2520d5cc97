package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jezweb/better-chat-trigger/internal/storage"
)

// Store is a SQLite implementation of InvocationStore.
type Store struct {
	db *sql.DB
}

var _ storage.InvocationStore = (*Store)(nil)

// New opens (or creates) the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS invocations (
			id TEXT PRIMARY KEY,
			trigger_path TEXT NOT NULL,
			session_id TEXT NOT NULL,
			thread_id TEXT NOT NULL,
			message_count INTEGER NOT NULL,
			attachment_count INTEGER NOT NULL,
			status INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invocations_trigger ON invocations(trigger_path)`,
		`CREATE INDEX IF NOT EXISTS idx_invocations_session ON invocations(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_invocations_created ON invocations(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}

func (s *Store) RecordInvocation(ctx context.Context, inv *storage.Invocation) error {
	query := `INSERT INTO invocations
	          (id, trigger_path, session_id, thread_id, message_count, attachment_count, status, duration_ns, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		inv.ID, inv.TriggerPath, inv.SessionID, inv.ThreadID,
		inv.MessageCount, inv.AttachmentCount, inv.Status,
		inv.Duration.Nanoseconds(), inv.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}

	return nil
}

// InvocationCount returns the number of recorded invocations for a trigger
// path, or all triggers when path is empty.
func (s *Store) InvocationCount(ctx context.Context, path string) (int, error) {
	var count int
	var err error
	if path == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invocations`).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM invocations WHERE trigger_path = ?`, path).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count invocations: %w", err)
	}
	return count, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
