package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/store"
)

func setupTestSocialService(t *testing.T) (*SocialService, *AccountService) {
	t.Helper()
	s, logger := setupTestStore(t)
	return NewSocialService(s, logger), NewAccountService(s, logger)
}

func TestSocialService_SubmitInterest_Validation(t *testing.T) {
	svc, _ := setupTestSocialService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  SubmitInterestRequest
	}{
		{"missing actor", SubmitInterestRequest{TargetID: "u2", Kind: domain.InterestProfile}},
		{"missing target", SubmitInterestRequest{ActorID: "u1", Kind: domain.InterestProfile}},
		{"missing kind", SubmitInterestRequest{ActorID: "u1", TargetID: "u2"}},
		{"unknown kind", SubmitInterestRequest{ActorID: "u1", TargetID: "u2", Kind: "bestie"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitInterest(ctx, tt.req)
			assert.True(t, errors.Is(err, store.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestSocialService_ProfileInterestFlow(t *testing.T) {
	svc, _ := setupTestSocialService(t)
	s := svc.store
	ctx := context.Background()

	createTestUser(t, s, "a1", "Ada")
	createTestUser(t, s, "a2", "Ben")

	res, err := svc.ExpressProfileInterest(ctx, "a1", "a2")
	require.NoError(t, err)
	assert.False(t, res.Mutual)

	res, err = svc.ExpressProfileInterest(ctx, "a2", "a1")
	require.NoError(t, err)
	assert.True(t, res.Mutual)
	assert.Equal(t, domain.NotificationMutualProfileInterest, res.Event)
	assert.Empty(t, res.SoulmateID)

	// Duplicate submission surfaces the edge conflict unchanged.
	_, err = svc.ExpressProfileInterest(ctx, "a1", "a2")
	assert.True(t, errors.Is(err, store.ErrDuplicateEdge))
}

func TestSocialService_SoullinkAndUnlink(t *testing.T) {
	svc, _ := setupTestSocialService(t)
	s := svc.store
	ctx := context.Background()

	createTestUser(t, s, "a1", "Ada")
	createTestUser(t, s, "a2", "Ben")

	_, err := svc.RequestSoullink(ctx, "a1", "a2")
	require.NoError(t, err)
	res, err := svc.RequestSoullink(ctx, "a2", "a1")
	require.NoError(t, err)
	require.True(t, res.Mutual)
	require.NotEmpty(t, res.SoulmateID)

	pairs, err := svc.Soulmates(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, res.SoulmateID, pairs[0].ID)

	err = svc.Unlink(ctx, "a2", "a1")
	require.NoError(t, err)

	pairs, err = svc.Soulmates(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, pairs)

	// Unlink cleared the edges, so the relationship can re-form.
	_, err = svc.RequestSoullink(ctx, "a1", "a2")
	require.NoError(t, err)
	res, err = svc.RequestSoullink(ctx, "a2", "a1")
	require.NoError(t, err)
	assert.True(t, res.Mutual)
}

func TestSocialService_Unlink_NotSoulmates(t *testing.T) {
	svc, _ := setupTestSocialService(t)
	ctx := context.Background()

	createTestUser(t, svc.store, "a1", "Ada")
	createTestUser(t, svc.store, "a2", "Ben")

	err := svc.Unlink(ctx, "a1", "a2")
	assert.True(t, errors.Is(err, store.ErrNotFound))

	err = svc.Unlink(ctx, "a1", "a1")
	assert.True(t, errors.Is(err, store.ErrInvalidPair))
}

func TestSocialService_LikeAnswer(t *testing.T) {
	svc, accounts := setupTestSocialService(t)
	s := svc.store
	ctx := context.Background()

	createTestUser(t, s, "author", "Author")
	createTestUser(t, s, "fan", "Fan")
	createTestBook(t, s, "978-0-553-29335-0", "Foundation")

	q, err := accounts.AddQuestion(ctx, AddQuestionRequest{
		BookISBN: "978-0-553-29335-0",
		Content:  "Best character?",
	})
	require.NoError(t, err)
	a, err := accounts.AddAnswer(ctx, AddAnswerRequest{
		QuestionID: q.ID,
		UserID:     "author",
		Content:    "Salvor Hardin.",
	})
	require.NoError(t, err)

	err = svc.LikeAnswer(ctx, "fan", a.ID)
	require.NoError(t, err)

	notifs, err := s.ListNotifications(ctx, "author", false)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, domain.NotificationAnswerLiked, notifs[0].Kind)
	assert.Equal(t, "Fan liked your answer.", notifs[0].Content)
	assert.Equal(t, "fan", notifs[0].RelatedUserID)
	assert.Equal(t, a.ID, notifs[0].RelatedAnswerID)
	assert.Equal(t, q.ID, notifs[0].RelatedQuestionID)
}

func TestSocialService_LikeOwnAnswer_NoNotification(t *testing.T) {
	svc, accounts := setupTestSocialService(t)
	s := svc.store
	ctx := context.Background()

	createTestUser(t, s, "author", "Author")
	createTestBook(t, s, "978-0-553-29335-0", "Foundation")

	q, err := accounts.AddQuestion(ctx, AddQuestionRequest{
		BookISBN: "978-0-553-29335-0",
		Content:  "Best character?",
	})
	require.NoError(t, err)
	a, err := accounts.AddAnswer(ctx, AddAnswerRequest{
		QuestionID: q.ID,
		UserID:     "author",
		Content:    "Me.",
	})
	require.NoError(t, err)

	err = svc.LikeAnswer(ctx, "author", a.ID)
	require.NoError(t, err)

	notifs, err := s.ListNotifications(ctx, "author", false)
	require.NoError(t, err)
	assert.Empty(t, notifs)
}

func TestSocialService_LikeAnswer_MissingAnswer(t *testing.T) {
	svc, _ := setupTestSocialService(t)
	ctx := context.Background()

	createTestUser(t, svc.store, "fan", "Fan")

	err := svc.LikeAnswer(ctx, "fan", "no-such-answer")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
