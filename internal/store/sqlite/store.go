package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bookbondapp/bookbond-server/internal/store"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store provides SQLite-backed persistence for the BookBond server.
type Store struct {
	db      *sql.DB
	logger  *slog.Logger
	emitter store.EventEmitter
}

// Open creates a new SQLite store at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	// Pragmas go in the DSN. foreign_keys and busy_timeout are
	// per-connection settings, so they must be applied to every
	// connection the pool opens, not just the first one.
	dsn := "file:" + path + "?" + strings.Join([]string{
		"_pragma=journal_mode(WAL)",
		"_pragma=synchronous(NORMAL)",
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
	}, "&")

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	// Run schema migration.
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &Store{
		db:      db,
		logger:  logger,
		emitter: store.NewNoopEmitter(),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetEventEmitter sets the emitter notified after social events commit.
func (s *Store) SetEventEmitter(emitter store.EventEmitter) {
	s.emitter = emitter
}

// mapError converts driver errors into the store error taxonomy. The caller
// supplies the sentinel used for uniqueness violations, since what a UNIQUE
// failure means depends on the table.
func mapError(err error, onUnique *store.Error) error {
	switch {
	case err == nil:
		return nil
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return onUnique
	case strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
		// A referenced row vanished (or never existed) by commit time.
		return store.ErrNotFound.WithCause(err)
	case strings.Contains(err.Error(), "SQLITE_BUSY"),
		strings.Contains(err.Error(), "database is locked"):
		return store.ErrUnavailable.WithCause(err)
	default:
		return err
	}
}

// beginTx starts a write transaction, mapping busy errors to ErrUnavailable.
func (s *Store) beginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapError(err, store.ErrAlreadyExists)
	}
	return tx, nil
}

// formatTime formats a time.Time to RFC3339Nano for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// nullString returns a sql.NullString from a string or empty string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// boolToInt converts a bool to an int for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
