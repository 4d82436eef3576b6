package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/id"
	"github.com/bookbondapp/bookbond-server/internal/store"
	"github.com/bookbondapp/bookbond-server/internal/store/sqlite"
	"github.com/bookbondapp/bookbond-server/internal/validation"
)

// AccountService orchestrates users, books, questions, answers, and shelves.
// Password hashing happens upstream; this layer stores whatever hash it is
// handed.
type AccountService struct {
	store     *sqlite.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewAccountService creates a new account service.
func NewAccountService(store *sqlite.Store, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// RegisterUserRequest contains fields for creating a user.
type RegisterUserRequest struct {
	Email        string `json:"email" validate:"required,email"`
	PasswordHash string `json:"password_hash" validate:"required"`
	DisplayName  string `json:"display_name" validate:"required,min=1,max=50"`
	Bio          string `json:"bio" validate:"max=500"`
}

// RegisterUser creates a user account.
func (s *AccountService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:           id.MustGenerate(id.PrefixUser),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: req.PasswordHash,
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
	}
	u.InitTimestamps()

	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", u.ID, "email", u.Email)
	return u, nil
}

// GetUser returns a user by ID.
func (s *AccountService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.GetUser(ctx, userID)
}

// UpdateProfileRequest contains optional profile fields to change.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
}

// UpdateProfile applies partial profile changes.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.User, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		u.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	u.Touch()

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes an account. Interest edges, soulmate pairs, answers,
// shelf entries, and the user's own notifications go with it; notifications
// held by other users keep their dangling references.
func (s *AccountService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deleted", "id", userID)
	return nil
}

// AddBookRequest contains fields for registering a book.
type AddBookRequest struct {
	ISBN        string `json:"isbn" validate:"required,min=10,max=20"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Author      string `json:"author" validate:"max=200"`
	Publisher   string `json:"publisher" validate:"max=200"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url" validate:"omitempty,url"`
}

// AddBook registers a book in the catalog.
func (s *AccountService) AddBook(ctx context.Context, req AddBookRequest) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	b := &domain.Book{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Author:      req.Author,
		Publisher:   req.Publisher,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	}
	b.InitTimestamps()

	if err := s.store.CreateBook(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("book added", "isbn", b.ISBN, "title", b.Title)
	return b, nil
}

// AddQuestionRequest contains fields for attaching a question to a book.
type AddQuestionRequest struct {
	BookISBN string `json:"book_isbn" validate:"required"`
	Content  string `json:"content" validate:"required,min=1,max=500"`
}

// AddQuestion attaches a discussion question to a book.
func (s *AccountService) AddQuestion(ctx context.Context, req AddQuestionRequest) (*domain.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	q := &domain.Question{
		ID:       id.MustGenerate(id.PrefixQuestion),
		BookISBN: req.BookISBN,
		Content:  req.Content,
	}
	q.InitTimestamps()

	if err := s.store.CreateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// AddAnswerRequest contains fields for answering a question.
type AddAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	UserID     string `json:"user_id" validate:"required"`
	Content    string `json:"content" validate:"required,min=1,max=2000"`
}

// AddAnswer records a user's answer to a question.
func (s *AccountService) AddAnswer(ctx context.Context, req AddAnswerRequest) (*domain.Answer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	a := &domain.Answer{
		ID:         id.MustGenerate(id.PrefixAnswer),
		QuestionID: req.QuestionID,
		UserID:     req.UserID,
		Content:    req.Content,
	}
	a.InitTimestamps()

	if err := s.store.CreateAnswer(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ShelveBookRequest contains fields for putting a book on a user's shelf.
type ShelveBookRequest struct {
	UserID   string             `json:"user_id" validate:"required"`
	BookISBN string             `json:"book_isbn" validate:"required"`
	Status   domain.ShelfStatus `json:"status" validate:"required,oneof=want reading finished"`
}

// ShelveBook adds a book to a user's shelf with a reading status.
func (s *AccountService) ShelveBook(ctx context.Context, req ShelveBookRequest) (*domain.BookshelfEntry, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	e := &domain.BookshelfEntry{
		ID:       id.MustGenerate(id.PrefixShelfEntry),
		UserID:   req.UserID,
		BookISBN: req.BookISBN,
		Status:   req.Status,
	}
	e.InitTimestamps()

	if err := s.store.CreateShelfEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// MoveShelfEntry changes the reading status of a shelf entry.
func (s *AccountService) MoveShelfEntry(ctx context.Context, entryID string, status domain.ShelfStatus) error {
	if !status.Valid() {
		return store.ErrInvalidInput.WithMessage("unknown shelf status: " + string(status))
	}
	return s.store.UpdateShelfStatus(ctx, entryID, status)
}

// Shelf returns a user's bookshelf, oldest entries first.
func (s *AccountService) Shelf(ctx context.Context, userID string) ([]*domain.BookshelfEntry, error) {
	return s.store.ListShelfByUser(ctx, userID)
}
