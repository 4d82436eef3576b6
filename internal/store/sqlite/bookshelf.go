package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/store"
)

const shelfColumns = `id, created_at, updated_at, user_id, book_isbn, status`

func scanShelfEntry(scanner interface{ Scan(dest ...any) error }) (*domain.BookshelfEntry, error) {
	var e domain.BookshelfEntry

	var createdAt, updatedAt, status string
	err := scanner.Scan(&e.ID, &createdAt, &updatedAt, &e.UserID, &e.BookISBN, &status)
	if err != nil {
		return nil, err
	}

	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	e.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	e.Status = domain.ShelfStatus(status)
	return &e, nil
}

// CreateShelfEntry adds a book to a user's shelf.
// Returns store.ErrAlreadyExists if the book is already shelved by the user,
// store.ErrNotFound if the user or book does not exist.
func (s *Store) CreateShelfEntry(ctx context.Context, e *domain.BookshelfEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookshelf_entries (id, created_at, updated_at, user_id, book_isbn, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID,
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
		e.UserID,
		e.BookISBN,
		string(e.Status),
	)
	return mapError(err, store.ErrAlreadyExists)
}

// GetShelfEntry retrieves a shelf entry by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetShelfEntry(ctx context.Context, id string) (*domain.BookshelfEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+shelfColumns+` FROM bookshelf_entries WHERE id = ?`, id)

	e, err := scanShelfEntry(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateShelfStatus moves a shelf entry to a new reading status.
// Returns store.ErrNotFound if the entry does not exist.
func (s *Store) UpdateShelfStatus(ctx context.Context, id string, status domain.ShelfStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE bookshelf_entries SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(time.Now()), id)
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

// ListShelfByUser returns a user's shelf, oldest entries first.
func (s *Store) ListShelfByUser(ctx context.Context, userID string) ([]*domain.BookshelfEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+shelfColumns+` FROM bookshelf_entries WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.BookshelfEntry
	for rows.Next() {
		e, err := scanShelfEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteShelfEntry removes a book from a user's shelf.
// Returns store.ErrNotFound if the entry does not exist.
func (s *Store) DeleteShelfEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookshelf_entries WHERE id = ?`, id)
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
