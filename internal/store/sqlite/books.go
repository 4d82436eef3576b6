package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `isbn, created_at, updated_at, title, author, publisher, description, cover_url`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var createdAt, updatedAt string
	err := scanner.Scan(
		&b.ISBN,
		&createdAt,
		&updatedAt,
		&b.Title,
		&b.Author,
		&b.Publisher,
		&b.Description,
		&b.CoverURL,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new book keyed by ISBN.
// Returns store.ErrAlreadyExists if the ISBN is already registered.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (
			isbn, created_at, updated_at, title, author, publisher, description, cover_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ISBN,
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
		book.Title,
		book.Author,
		book.Publisher,
		book.Description,
		book.CoverURL,
	)
	return mapError(err, store.ErrAlreadyExists)
}

// GetBook retrieves a book by ISBN.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, isbn string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE isbn = ?`, isbn)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks returns all books ordered by creation time.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook performs a full row update on an existing book. The ISBN is the
// identity and cannot change.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books SET
			created_at = ?,
			updated_at = ?,
			title = ?,
			author = ?,
			publisher = ?,
			description = ?,
			cover_url = ?
		WHERE isbn = ?`,
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
		book.Title,
		book.Author,
		book.Publisher,
		book.Description,
		book.CoverURL,
		book.ISBN,
	)
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

// DeleteBook performs a hard delete. Questions on the book cascade, which in
// turn cascades their answers and any answer-interest edges.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, isbn string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE isbn = ?`, isbn)
	if err != nil {
		return mapError(err, store.ErrAlreadyExists)
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
