package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/store"
)

const soulmateColumns = `id, created_at, user_lo_id, user_hi_id`

func scanSoulmate(scanner interface{ Scan(dest ...any) error }) (*domain.Soulmate, error) {
	var sm domain.Soulmate

	var createdAt string
	err := scanner.Scan(&sm.ID, &createdAt, &sm.UserLoID, &sm.UserHiID)
	if err != nil {
		return nil, err
	}

	sm.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &sm, nil
}

// insertSoulmate writes a canonical pair row. The caller must have built the
// pair via domain.NewPair; the UNIQUE (lo, hi) constraint maps to
// ErrAlreadySoulmates.
func insertSoulmate(ctx context.Context, db execer, sm *domain.Soulmate) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO soulmates (id, created_at, user_lo_id, user_hi_id)
		VALUES (?, ?, ?, ?)`,
		sm.ID,
		formatTime(sm.CreatedAt),
		sm.UserLoID,
		sm.UserHiID,
	)
	return mapError(err, store.ErrAlreadySoulmates)
}

// CreateSoulmate inserts a soulmate pair for two users, canonicalizing the
// argument order. Returns store.ErrInvalidPair for a self-pair and
// store.ErrAlreadySoulmates if the pair already exists. The reciprocity
// engine is the normal write path; this exists for administrative use.
func (s *Store) CreateSoulmate(ctx context.Context, sm *domain.Soulmate) error {
	pair, err := domain.NewPair(sm.UserLoID, sm.UserHiID)
	if err != nil {
		return store.ErrInvalidPair.WithCause(err)
	}
	sm.UserLoID, sm.UserHiID = pair.Lo, pair.Hi
	return insertSoulmate(ctx, s.db, sm)
}

// GetSoulmate retrieves a soulmate pair by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetSoulmate(ctx context.Context, smID string) (*domain.Soulmate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+soulmateColumns+` FROM soulmates WHERE id = ?`, smID)

	sm, err := scanSoulmate(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sm, nil
}

// GetSoulmateByUsers retrieves the pair for two users regardless of argument
// order. Returns store.ErrInvalidPair for a self-pair and store.ErrNotFound
// if no pair exists.
func (s *Store) GetSoulmateByUsers(ctx context.Context, userA, userB string) (*domain.Soulmate, error) {
	pair, err := domain.NewPair(userA, userB)
	if err != nil {
		return nil, store.ErrInvalidPair.WithCause(err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+soulmateColumns+` FROM soulmates WHERE user_lo_id = ? AND user_hi_id = ?`,
		pair.Lo, pair.Hi)

	sm, err := scanSoulmate(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sm, nil
}

// soulmateByPairTx loads the pair row inside a transaction.
func soulmateByPairTx(ctx context.Context, tx *sql.Tx, pair domain.Pair) (*domain.Soulmate, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+soulmateColumns+` FROM soulmates WHERE user_lo_id = ? AND user_hi_id = ?`,
		pair.Lo, pair.Hi)

	sm, err := scanSoulmate(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sm, nil
}

// ListSoulmatesForUser returns every pair a user belongs to, oldest first.
func (s *Store) ListSoulmatesForUser(ctx context.Context, userID string) ([]*domain.Soulmate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+soulmateColumns+` FROM soulmates
		 WHERE user_lo_id = ? OR user_hi_id = ? ORDER BY created_at ASC`,
		userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var soulmates []*domain.Soulmate
	for rows.Next() {
		sm, err := scanSoulmate(rows)
		if err != nil {
			return nil, err
		}
		soulmates = append(soulmates, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return soulmates, nil
}

// DeleteSoulmate removes a pair (explicit unlink). Historical notifications
// referencing the pair keep their dangling related_soulmate_id.
// Returns store.ErrNotFound if the pair does not exist.
func (s *Store) DeleteSoulmate(ctx context.Context, smID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM soulmates WHERE id = ?`, smID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
