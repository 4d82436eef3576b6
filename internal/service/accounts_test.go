package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/store"
)

func setupTestAccountService(t *testing.T) *AccountService {
	t.Helper()
	s, logger := setupTestStore(t)
	return NewAccountService(s, logger)
}

func TestAccountService_RegisterUser(t *testing.T) {
	svc := setupTestAccountService(t)
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, RegisterUserRequest{
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$fakehashfortest",
		DisplayName:  "Ada",
		Bio:          "reads everything",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.ID, "usr-"), "ID %q should carry the user prefix", u.ID)

	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestAccountService_RegisterUser_Invalid(t *testing.T) {
	svc := setupTestAccountService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterUserRequest
	}{
		{"bad email", RegisterUserRequest{Email: "nope", PasswordHash: "h", DisplayName: "Ada"}},
		{"missing hash", RegisterUserRequest{Email: "a@b.com", DisplayName: "Ada"}},
		{"missing name", RegisterUserRequest{Email: "a@b.com", PasswordHash: "h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterUser(ctx, tt.req)
			assert.True(t, errors.Is(err, store.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestAccountService_RegisterUser_DuplicateEmail(t *testing.T) {
	svc := setupTestAccountService(t)
	ctx := context.Background()

	req := RegisterUserRequest{
		Email:        "ada@example.com",
		PasswordHash: "h",
		DisplayName:  "Ada",
	}
	_, err := svc.RegisterUser(ctx, req)
	require.NoError(t, err)

	req.Email = "ADA@Example.com"
	_, err = svc.RegisterUser(ctx, req)
	assert.True(t, errors.Is(err, store.ErrAlreadyExists))
}

func TestAccountService_UpdateProfile(t *testing.T) {
	svc := setupTestAccountService(t)
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, RegisterUserRequest{
		Email:        "ada@example.com",
		PasswordHash: "h",
		DisplayName:  "Ada",
	})
	require.NoError(t, err)

	newBio := "collects first editions"
	got, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{Bio: &newBio})
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.Equal(t, newBio, got.Bio)
}

func TestAccountService_BooksQuestionsShelves(t *testing.T) {
	svc := setupTestAccountService(t)
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, RegisterUserRequest{
		Email:        "ada@example.com",
		PasswordHash: "h",
		DisplayName:  "Ada",
	})
	require.NoError(t, err)

	b, err := svc.AddBook(ctx, AddBookRequest{
		ISBN:  "978-0-553-29335-0",
		Title: "Foundation",
	})
	require.NoError(t, err)

	q, err := svc.AddQuestion(ctx, AddQuestionRequest{
		BookISBN: b.ISBN,
		Content:  "Best character?",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(q.ID, "qst-"))

	a, err := svc.AddAnswer(ctx, AddAnswerRequest{
		QuestionID: q.ID,
		UserID:     u.ID,
		Content:    "Salvor Hardin.",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a.ID, "ans-"))

	e, err := svc.ShelveBook(ctx, ShelveBookRequest{
		UserID:   u.ID,
		BookISBN: b.ISBN,
		Status:   domain.ShelfStatusWant,
	})
	require.NoError(t, err)

	err = svc.MoveShelfEntry(ctx, e.ID, domain.ShelfStatusFinished)
	require.NoError(t, err)

	shelf, err := svc.Shelf(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, shelf, 1)
	assert.Equal(t, domain.ShelfStatusFinished, shelf[0].Status)

	err = svc.MoveShelfEntry(ctx, e.ID, "abandoned")
	assert.True(t, errors.Is(err, store.ErrInvalidInput))
}

func TestAccountService_AddBook_InvalidCoverURL(t *testing.T) {
	svc := setupTestAccountService(t)

	_, err := svc.AddBook(context.Background(), AddBookRequest{
		ISBN:     "978-0-553-29335-0",
		Title:    "Foundation",
		CoverURL: "not a url",
	})
	assert.True(t, errors.Is(err, store.ErrInvalidInput))
}

func TestAccountService_DeleteUser(t *testing.T) {
	svc := setupTestAccountService(t)
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, RegisterUserRequest{
		Email:        "ada@example.com",
		PasswordHash: "h",
		DisplayName:  "Ada",
	})
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, u.ID)
	require.NoError(t, err)

	_, err = svc.GetUser(ctx, u.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
