package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/store"
)

func makeSoulmate(id, userA, userB string) *domain.Soulmate {
	return &domain.Soulmate{
		ID:        id,
		CreatedAt: time.Now(),
		UserLoID:  userA,
		UserHiID:  userB,
	}
}

func TestCreateSoulmate_CanonicalizesOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "a1", "a1@example.com")
	mustCreateUser(t, s, "a2", "a2@example.com")

	// Passed in reverse order; stored canonically.
	if err := s.CreateSoulmate(ctx, makeSoulmate("sm-1", "a2", "a1")); err != nil {
		t.Fatalf("CreateSoulmate: %v", err)
	}

	got, err := s.GetSoulmate(ctx, "sm-1")
	if err != nil {
		t.Fatalf("GetSoulmate: %v", err)
	}
	if got.UserLoID != "a1" || got.UserHiID != "a2" {
		t.Errorf("stored as (%q, %q), want (a1, a2)", got.UserLoID, got.UserHiID)
	}
}

func TestCreateSoulmate_SelfPair(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "solo", "solo@example.com")

	err := s.CreateSoulmate(ctx, makeSoulmate("sm-1", "solo", "solo"))
	if !errors.Is(err, store.ErrInvalidPair) {
		t.Errorf("expected ErrInvalidPair, got %v", err)
	}
}

func TestCreateSoulmate_AlreadySoulmates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "a1", "a1@example.com")
	mustCreateUser(t, s, "a2", "a2@example.com")

	if err := s.CreateSoulmate(ctx, makeSoulmate("sm-1", "a1", "a2")); err != nil {
		t.Fatalf("CreateSoulmate: %v", err)
	}

	// The same pair in either order is rejected.
	err := s.CreateSoulmate(ctx, makeSoulmate("sm-2", "a2", "a1"))
	if !errors.Is(err, store.ErrAlreadySoulmates) {
		t.Errorf("expected ErrAlreadySoulmates, got %v", err)
	}
	if n := countRows(t, s, "soulmates"); n != 1 {
		t.Errorf("soulmates: got %d rows, want 1", n)
	}
}

func TestGetSoulmateByUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "a1", "a1@example.com")
	mustCreateUser(t, s, "a2", "a2@example.com")

	if err := s.CreateSoulmate(ctx, makeSoulmate("sm-1", "a1", "a2")); err != nil {
		t.Fatalf("CreateSoulmate: %v", err)
	}

	// Lookup works in either argument order.
	for _, args := range [][2]string{{"a1", "a2"}, {"a2", "a1"}} {
		got, err := s.GetSoulmateByUsers(ctx, args[0], args[1])
		if err != nil {
			t.Fatalf("GetSoulmateByUsers(%s, %s): %v", args[0], args[1], err)
		}
		if got.ID != "sm-1" {
			t.Errorf("GetSoulmateByUsers(%s, %s): ID = %q", args[0], args[1], got.ID)
		}
	}

	if _, err := s.GetSoulmateByUsers(ctx, "a1", "a1"); !errors.Is(err, store.ErrInvalidPair) {
		t.Errorf("self-pair lookup: expected ErrInvalidPair, got %v", err)
	}
	mustCreateUser(t, s, "a3", "a3@example.com")
	if _, err := s.GetSoulmateByUsers(ctx, "a1", "a3"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unpaired lookup: expected ErrNotFound, got %v", err)
	}
}

func TestListSoulmatesForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "a1", "a1@example.com")
	mustCreateUser(t, s, "a2", "a2@example.com")
	mustCreateUser(t, s, "a3", "a3@example.com")

	if err := s.CreateSoulmate(ctx, makeSoulmate("sm-1", "a1", "a2")); err != nil {
		t.Fatalf("CreateSoulmate(a1, a2): %v", err)
	}
	if err := s.CreateSoulmate(ctx, makeSoulmate("sm-2", "a3", "a1")); err != nil {
		t.Fatalf("CreateSoulmate(a3, a1): %v", err)
	}

	// a1 appears on the lo side of one pair and the hi side of the other.
	pairs, err := s.ListSoulmatesForUser(ctx, "a1")
	if err != nil {
		t.Fatalf("ListSoulmatesForUser(a1): %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("pairs for a1: got %d, want 2", len(pairs))
	}

	pairs, err = s.ListSoulmatesForUser(ctx, "a2")
	if err != nil {
		t.Fatalf("ListSoulmatesForUser(a2): %v", err)
	}
	if len(pairs) != 1 || pairs[0].ID != "sm-1" {
		t.Errorf("pairs for a2: got %+v, want [sm-1]", pairs)
	}
}

func TestDeleteSoulmate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "a1", "a1@example.com")
	mustCreateUser(t, s, "a2", "a2@example.com")

	if err := s.CreateSoulmate(ctx, makeSoulmate("sm-1", "a1", "a2")); err != nil {
		t.Fatalf("CreateSoulmate: %v", err)
	}

	if err := s.DeleteSoulmate(ctx, "sm-1"); err != nil {
		t.Fatalf("DeleteSoulmate: %v", err)
	}
	if _, err := s.GetSoulmate(ctx, "sm-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteSoulmate(ctx, "sm-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestUnlinkAllowsRelinking(t *testing.T) {
	// After an explicit unlink the interest edges are also cleared by the
	// caller in practice; at the store level a fresh pair can be created.
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "a1", "a1@example.com")
	mustCreateUser(t, s, "a2", "a2@example.com")

	if err := s.CreateSoulmate(ctx, makeSoulmate("sm-1", "a1", "a2")); err != nil {
		t.Fatalf("CreateSoulmate: %v", err)
	}
	if err := s.DeleteSoulmate(ctx, "sm-1"); err != nil {
		t.Fatalf("DeleteSoulmate: %v", err)
	}
	if err := s.CreateSoulmate(ctx, makeSoulmate("sm-2", "a1", "a2")); err != nil {
		t.Errorf("CreateSoulmate after unlink: %v", err)
	}
}
