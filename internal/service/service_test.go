package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/store/sqlite"
)

func setupTestStore(t *testing.T) (*sqlite.Store, *slog.Logger) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s, logger
}

func createTestUser(t *testing.T, s *sqlite.Store, id, displayName string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:           id,
		Email:        id + "@test.com",
		PasswordHash: "$2a$10$fakehashfortest",
		DisplayName:  displayName,
	}
	user.InitTimestamps()
	err := s.CreateUser(context.Background(), user)
	require.NoError(t, err)
	return user
}

func createTestBook(t *testing.T, s *sqlite.Store, isbn, title string) *domain.Book {
	t.Helper()
	book := &domain.Book{
		ISBN:  isbn,
		Title: title,
	}
	book.InitTimestamps()
	err := s.CreateBook(context.Background(), book)
	require.NoError(t, err)
	return book
}
