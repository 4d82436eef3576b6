package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/id"
	"github.com/bookbondapp/bookbond-server/internal/store"
	"github.com/bookbondapp/bookbond-server/internal/store/sqlite"
	"github.com/bookbondapp/bookbond-server/internal/validation"
)

const (
	// submitMaxAttempts bounds retries for transient storage failures.
	submitMaxAttempts = 3
	submitBackoffBase = 50 * time.Millisecond
)

// SocialService orchestrates interest edges and the relationships they form.
type SocialService struct {
	store     *sqlite.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewSocialService creates a new social service.
func NewSocialService(store *sqlite.Store, logger *slog.Logger) *SocialService {
	return &SocialService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// SubmitInterestRequest contains fields for recording an interest edge.
type SubmitInterestRequest struct {
	ActorID  string              `json:"actor_id" validate:"required"`
	TargetID string              `json:"target_id" validate:"required"`
	Kind     domain.InterestKind `json:"kind" validate:"required,oneof=profile answer soullink"`
}

// SubmitInterest records a directional interest edge, retrying only when
// storage reports a transient failure. Every other error is returned as-is:
// a duplicate edge means the first submission already holds.
func (s *SocialService) SubmitInterest(ctx context.Context, req SubmitInterestRequest) (*domain.SubmitResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	in := &domain.Interest{
		ID:        id.MustGenerate(id.PrefixInterest),
		CreatedAt: time.Now(),
		ActorID:   req.ActorID,
		TargetID:  req.TargetID,
		Kind:      req.Kind,
	}

	var res *domain.SubmitResult
	var err error
	for attempt := 1; attempt <= submitMaxAttempts; attempt++ {
		res, err = s.store.SubmitInterest(ctx, in)
		if err == nil || !errors.Is(err, store.ErrUnavailable) {
			break
		}
		if attempt == submitMaxAttempts {
			break
		}

		backoff := submitBackoffBase * time.Duration(1<<(attempt-1))
		s.logger.Warn("interest submission hit busy storage, retrying",
			"actor", req.ActorID, "kind", req.Kind, "attempt", attempt, "backoff", backoff)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	if err != nil {
		return nil, err
	}

	if res.Mutual {
		s.logger.Info("mutual interest",
			"actor", req.ActorID, "target", req.TargetID, "kind", req.Kind,
			"event", res.Event, "soulmate_id", res.SoulmateID)
	}
	return res, nil
}

// ExpressProfileInterest records a profile interest edge from actor to target.
func (s *SocialService) ExpressProfileInterest(ctx context.Context, actorID, targetID string) (*domain.SubmitResult, error) {
	return s.SubmitInterest(ctx, SubmitInterestRequest{
		ActorID:  actorID,
		TargetID: targetID,
		Kind:     domain.InterestProfile,
	})
}

// RequestSoullink records a soulmate request from actor to target. When the
// target has already requested the actor, the pair forms.
func (s *SocialService) RequestSoullink(ctx context.Context, actorID, targetID string) (*domain.SubmitResult, error) {
	return s.SubmitInterest(ctx, SubmitInterestRequest{
		ActorID:  actorID,
		TargetID: targetID,
		Kind:     domain.InterestSoullink,
	})
}

// LikeAnswer records an answer interest edge and notifies the answer's author.
// Liking your own answer records the edge but sends nothing.
func (s *SocialService) LikeAnswer(ctx context.Context, actorID, answerID string) error {
	answer, err := s.store.GetAnswer(ctx, answerID)
	if err != nil {
		return err
	}

	if _, err := s.SubmitInterest(ctx, SubmitInterestRequest{
		ActorID:  actorID,
		TargetID: answerID,
		Kind:     domain.InterestAnswer,
	}); err != nil {
		return err
	}

	if answer.UserID == actorID {
		return nil
	}

	liker, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		return err
	}

	n := &domain.Notification{
		ID:                id.MustGenerate(id.PrefixNotification),
		CreatedAt:         time.Now(),
		UserID:            answer.UserID,
		Kind:              domain.NotificationAnswerLiked,
		Content:           domain.NotificationAnswerLiked.Content(liker.Name()),
		RelatedUserID:     actorID,
		RelatedQuestionID: answer.QuestionID,
		RelatedAnswerID:   answerID,
	}
	return s.store.CreateNotification(ctx, n)
}

// Soulmates returns every pair the user belongs to.
func (s *SocialService) Soulmates(ctx context.Context, userID string) ([]*domain.Soulmate, error) {
	return s.store.ListSoulmatesForUser(ctx, userID)
}

// Unlink dissolves the soulmate pair between two users and clears both
// soullink edges so the pair can re-form later. Historical notifications are
// left alone. Returns store.ErrNotFound if the users are not soulmates.
func (s *SocialService) Unlink(ctx context.Context, userA, userB string) error {
	sm, err := s.store.GetSoulmateByUsers(ctx, userA, userB)
	if err != nil {
		return err
	}

	if err := s.store.DeleteSoulmate(ctx, sm.ID); err != nil {
		return err
	}

	// Either edge may already be gone (e.g. its actor was deleted).
	for _, dir := range [][2]string{{userA, userB}, {userB, userA}} {
		err := s.store.DeleteInterest(ctx, dir[0], dir[1], domain.InterestSoullink)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}

	s.logger.Info("soulmates unlinked", "soulmate_id", sm.ID, "lo", sm.UserLoID, "hi", sm.UserHiID)
	return nil
}
