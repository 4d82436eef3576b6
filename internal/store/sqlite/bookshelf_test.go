package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/store"
)

func makeShelfEntry(id, userID, isbn string, status domain.ShelfStatus) *domain.BookshelfEntry {
	now := time.Now()
	return &domain.BookshelfEntry{
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		ID:         id,
		UserID:     userID,
		BookISBN:   isbn,
		Status:     status,
	}
}

func TestShelfEntryLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "reader", "reader@example.com")
	if err := s.CreateBook(ctx, makeTestBook("978-0-06-112008-4", "To Kill a Mockingbird")); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}

	entry := makeShelfEntry("shelf-1", "reader", "978-0-06-112008-4", domain.ShelfStatusWant)
	if err := s.CreateShelfEntry(ctx, entry); err != nil {
		t.Fatalf("CreateShelfEntry: %v", err)
	}

	got, err := s.GetShelfEntry(ctx, "shelf-1")
	if err != nil {
		t.Fatalf("GetShelfEntry: %v", err)
	}
	if got.Status != domain.ShelfStatusWant {
		t.Errorf("Status: got %q, want %q", got.Status, domain.ShelfStatusWant)
	}

	if err := s.UpdateShelfStatus(ctx, "shelf-1", domain.ShelfStatusReading); err != nil {
		t.Fatalf("UpdateShelfStatus: %v", err)
	}
	got, err = s.GetShelfEntry(ctx, "shelf-1")
	if err != nil {
		t.Fatalf("GetShelfEntry after update: %v", err)
	}
	if got.Status != domain.ShelfStatusReading {
		t.Errorf("Status: got %q, want %q", got.Status, domain.ShelfStatusReading)
	}

	shelf, err := s.ListShelfByUser(ctx, "reader")
	if err != nil {
		t.Fatalf("ListShelfByUser: %v", err)
	}
	if len(shelf) != 1 {
		t.Fatalf("ListShelfByUser: got %d entries, want 1", len(shelf))
	}

	if err := s.DeleteShelfEntry(ctx, "shelf-1"); err != nil {
		t.Fatalf("DeleteShelfEntry: %v", err)
	}
	if _, err := s.GetShelfEntry(ctx, "shelf-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCreateShelfEntry_DuplicateBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "reader", "reader@example.com")
	if err := s.CreateBook(ctx, makeTestBook("978-0-06-112008-4", "To Kill a Mockingbird")); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}

	if err := s.CreateShelfEntry(ctx, makeShelfEntry("shelf-1", "reader", "978-0-06-112008-4", domain.ShelfStatusWant)); err != nil {
		t.Fatalf("CreateShelfEntry: %v", err)
	}

	// Same (user, book) under a different entry ID.
	err := s.CreateShelfEntry(ctx, makeShelfEntry("shelf-2", "reader", "978-0-06-112008-4", domain.ShelfStatusReading))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateShelfEntry_MissingParents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "reader", "reader@example.com")

	err := s.CreateShelfEntry(ctx, makeShelfEntry("shelf-1", "reader", "978-0-000-00000-0", domain.ShelfStatusWant))
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing book: expected ErrNotFound, got %v", err)
	}

	if err := s.CreateBook(ctx, makeTestBook("978-0-06-112008-4", "To Kill a Mockingbird")); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	err = s.CreateShelfEntry(ctx, makeShelfEntry("shelf-2", "ghost", "978-0-06-112008-4", domain.ShelfStatusWant))
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing user: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBook_CascadesShelfEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "reader", "reader@example.com")
	if err := s.CreateBook(ctx, makeTestBook("978-0-06-112008-4", "To Kill a Mockingbird")); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	if err := s.CreateShelfEntry(ctx, makeShelfEntry("shelf-1", "reader", "978-0-06-112008-4", domain.ShelfStatusFinished)); err != nil {
		t.Fatalf("CreateShelfEntry: %v", err)
	}

	if err := s.DeleteBook(ctx, "978-0-06-112008-4"); err != nil {
		t.Fatalf("DeleteBook: %v", err)
	}
	if n := countRows(t, s, "bookshelf_entries"); n != 0 {
		t.Errorf("bookshelf_entries: got %d rows, want 0", n)
	}
}
