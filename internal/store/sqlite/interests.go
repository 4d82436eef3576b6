package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/id"
	"github.com/bookbondapp/bookbond-server/internal/store"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// targetsUser reports whether the kind's target column is a user ID
// (profile, soullink) rather than an answer ID.
func targetsUser(kind domain.InterestKind) bool {
	return kind != domain.InterestAnswer
}

// insertInterest records a directional edge. Uniqueness violations map to
// ErrDuplicateEdge; a missing actor or target maps to ErrNotFound.
func insertInterest(ctx context.Context, db execer, in *domain.Interest) error {
	var targetUser, targetAnswer sql.NullString
	if targetsUser(in.Kind) {
		targetUser = nullString(in.TargetID)
	} else {
		targetAnswer = nullString(in.TargetID)
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO interests (id, created_at, kind, actor_id, target_user_id, target_answer_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID,
		formatTime(in.CreatedAt),
		string(in.Kind),
		in.ActorID,
		targetUser,
		targetAnswer,
	)
	return mapError(err, store.ErrDuplicateEdge)
}

// CreateInterest records a directional interest edge without running the
// reciprocity check. Most callers want SubmitInterest instead.
func (s *Store) CreateInterest(ctx context.Context, in *domain.Interest) error {
	return insertInterest(ctx, s.db, in)
}

// HasInterest reports whether the directional edge (actor, target, kind)
// exists.
func (s *Store) HasInterest(ctx context.Context, actorID, targetID string, kind domain.InterestKind) (bool, error) {
	col := "target_user_id"
	if !targetsUser(kind) {
		col = "target_answer_id"
	}

	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM interests WHERE actor_id = ? AND kind = ? AND `+col+` = ?`,
		actorID, string(kind), targetID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteInterest removes a directional edge.
// Returns store.ErrNotFound if the edge does not exist.
func (s *Store) DeleteInterest(ctx context.Context, actorID, targetID string, kind domain.InterestKind) error {
	col := "target_user_id"
	if !targetsUser(kind) {
		col = "target_answer_id"
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM interests WHERE actor_id = ? AND kind = ? AND `+col+` = ?`,
		actorID, string(kind), targetID)
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

const interestColumns = `id, created_at, kind, actor_id, target_user_id, target_answer_id`

func scanInterest(scanner interface{ Scan(dest ...any) error }) (*domain.Interest, error) {
	var in domain.Interest

	var (
		createdAt    string
		kind         string
		targetUser   sql.NullString
		targetAnswer sql.NullString
	)
	err := scanner.Scan(&in.ID, &createdAt, &kind, &in.ActorID, &targetUser, &targetAnswer)
	if err != nil {
		return nil, err
	}

	in.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	in.Kind = domain.InterestKind(kind)
	if targetUser.Valid {
		in.TargetID = targetUser.String
	} else {
		in.TargetID = targetAnswer.String
	}
	return &in, nil
}

// ListInterestsByActor returns the edges a user has recorded for a kind,
// oldest first.
func (s *Store) ListInterestsByActor(ctx context.Context, actorID string, kind domain.InterestKind) ([]*domain.Interest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+interestColumns+` FROM interests WHERE actor_id = ? AND kind = ? ORDER BY created_at ASC`,
		actorID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInterests(rows)
}

// ListInterestsByTarget returns the edges pointing at a target for a kind,
// oldest first.
func (s *Store) ListInterestsByTarget(ctx context.Context, targetID string, kind domain.InterestKind) ([]*domain.Interest, error) {
	col := "target_user_id"
	if !targetsUser(kind) {
		col = "target_answer_id"
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+interestColumns+` FROM interests WHERE `+col+` = ? AND kind = ? ORDER BY created_at ASC`,
		targetID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInterests(rows)
}

func collectInterests(rows *sql.Rows) ([]*domain.Interest, error) {
	var interests []*domain.Interest
	for rows.Next() {
		in, err := scanInterest(rows)
		if err != nil {
			return nil, err
		}
		interests = append(interests, in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return interests, nil
}

// SubmitInterest records a directional interest edge and, when the mirror
// edge already exists, fires the mutual event in the same transaction:
// mutual profile interest emits paired notifications; a mutual soullink
// request additionally forms the canonical soulmate pair. Either everything
// commits (edge, pair, both notifications) or nothing does.
//
// The edge INSERT is deliberately the first statement of the transaction. It
// takes SQLite's write lock, so two concurrent submissions of mirrored edges
// serialize: only the second-arriving one can observe the mirror, which is
// what guarantees at most one mutual event per pair and kind.
func (s *Store) SubmitInterest(ctx context.Context, in *domain.Interest) (*domain.SubmitResult, error) {
	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := insertInterest(ctx, tx, in); err != nil {
		return nil, err
	}

	res := &domain.SubmitResult{}

	// Answer interest targets content, and a self-edge is its own mirror;
	// neither can ever form a relationship.
	if !in.Kind.Mutualizes() || in.ActorID == in.TargetID {
		if err := tx.Commit(); err != nil {
			return nil, mapError(err, store.ErrDuplicateEdge)
		}
		return res, nil
	}

	var one int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM interests WHERE actor_id = ? AND kind = ? AND target_user_id = ?`,
		in.TargetID, string(in.Kind), in.ActorID).Scan(&one)
	if err == sql.ErrNoRows {
		if err := tx.Commit(); err != nil {
			return nil, mapError(err, store.ErrDuplicateEdge)
		}
		return res, nil
	}
	if err != nil {
		return nil, mapError(err, store.ErrDuplicateEdge)
	}

	// This submission is the second-arriving edge of the pair.
	res.Mutual = true

	actorName, err := userNameTx(ctx, tx, in.ActorID)
	if err != nil {
		return nil, err
	}
	targetName, err := userNameTx(ctx, tx, in.TargetID)
	if err != nil {
		return nil, err
	}

	var events []any

	switch in.Kind {
	case domain.InterestProfile:
		res.Event = domain.NotificationMutualProfileInterest
		pairNotifs := []*domain.Notification{
			{
				UserID:        in.ActorID,
				Kind:          res.Event,
				Content:       res.Event.Content(targetName),
				RelatedUserID: in.TargetID,
			},
			{
				UserID:        in.TargetID,
				Kind:          res.Event,
				Content:       res.Event.Content(actorName),
				RelatedUserID: in.ActorID,
			},
		}
		for _, n := range pairNotifs {
			n.ID = id.MustGenerate(id.PrefixNotification)
			n.CreatedAt = in.CreatedAt
			if err := insertNotification(ctx, tx, n); err != nil {
				return nil, err
			}
		}
		events = append(events, store.MutualInterestEvent{
			UserAID: in.ActorID,
			UserBID: in.TargetID,
		})

	case domain.InterestSoullink:
		res.Event = domain.NotificationSoulmateFormed
		pair, err := domain.NewPair(in.ActorID, in.TargetID)
		if err != nil {
			return nil, store.ErrInvalidPair.WithCause(err)
		}

		sm := &domain.Soulmate{
			ID:        id.MustGenerate(id.PrefixSoulmate),
			CreatedAt: in.CreatedAt,
			UserLoID:  pair.Lo,
			UserHiID:  pair.Hi,
		}
		err = insertSoulmate(ctx, tx, sm)
		if errors.Is(err, store.ErrAlreadySoulmates) {
			// Defensive: the pair already exists (e.g. a retried
			// submission). Reuse it and do not re-fire notifications.
			existing, err := soulmateByPairTx(ctx, tx, pair)
			if err != nil {
				return nil, err
			}
			res.SoulmateID = existing.ID
			break
		}
		if err != nil {
			return nil, err
		}
		res.SoulmateID = sm.ID

		pairNotifs := []*domain.Notification{
			{
				UserID:            in.ActorID,
				Kind:              res.Event,
				Content:           res.Event.Content(targetName),
				RelatedUserID:     in.TargetID,
				RelatedSoulmateID: sm.ID,
			},
			{
				UserID:            in.TargetID,
				Kind:              res.Event,
				Content:           res.Event.Content(actorName),
				RelatedUserID:     in.ActorID,
				RelatedSoulmateID: sm.ID,
			},
		}
		for _, n := range pairNotifs {
			n.ID = id.MustGenerate(id.PrefixNotification)
			n.CreatedAt = in.CreatedAt
			if err := insertNotification(ctx, tx, n); err != nil {
				return nil, err
			}
		}
		events = append(events, store.SoulmateFormedEvent{
			SoulmateID: sm.ID,
			UserLoID:   pair.Lo,
			UserHiID:   pair.Hi,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, mapError(err, store.ErrDuplicateEdge)
	}

	for _, event := range events {
		s.emitter.Emit(event)
	}

	return res, nil
}

// userNameTx resolves a user's display name inside the submission
// transaction. A missing user means the row vanished under us.
func userNameTx(ctx context.Context, tx *sql.Tx, userID string) (string, error) {
	var displayName, email string
	err := tx.QueryRowContext(ctx,
		`SELECT display_name, email FROM users WHERE id = ?`, userID).Scan(&displayName, &email)
	if err == sql.ErrNoRows {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", mapError(err, store.ErrDuplicateEdge)
	}
	if displayName != "" {
		return displayName, nil
	}
	return email, nil
}
