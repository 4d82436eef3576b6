package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/store"
)

const notificationColumns = `id, created_at, user_id, kind, content, is_read,
	related_user_id, related_book_isbn, related_question_id, related_answer_id, related_soulmate_id`

func scanNotification(scanner interface{ Scan(dest ...any) error }) (*domain.Notification, error) {
	var n domain.Notification

	var (
		createdAt       string
		kind            string
		isRead          int
		relatedUser     sql.NullString
		relatedBook     sql.NullString
		relatedQuestion sql.NullString
		relatedAnswer   sql.NullString
		relatedSoulmate sql.NullString
	)
	err := scanner.Scan(
		&n.ID,
		&createdAt,
		&n.UserID,
		&kind,
		&n.Content,
		&isRead,
		&relatedUser,
		&relatedBook,
		&relatedQuestion,
		&relatedAnswer,
		&relatedSoulmate,
	)
	if err != nil {
		return nil, err
	}

	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	n.Kind = domain.NotificationKind(kind)
	n.IsRead = isRead != 0
	n.RelatedUserID = relatedUser.String
	n.RelatedBookISBN = relatedBook.String
	n.RelatedQuestionID = relatedQuestion.String
	n.RelatedAnswerID = relatedAnswer.String
	n.RelatedSoulmateID = relatedSoulmate.String

	return &n, nil
}

// insertNotification writes a notification row. Only user_id is a real
// foreign key; the related_* columns are weak references stored as-is.
func insertNotification(ctx context.Context, db execer, n *domain.Notification) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, created_at, user_id, kind, content, is_read,
			related_user_id, related_book_isbn, related_question_id,
			related_answer_id, related_soulmate_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID,
		formatTime(n.CreatedAt),
		n.UserID,
		string(n.Kind),
		n.Content,
		boolToInt(n.IsRead),
		nullString(n.RelatedUserID),
		nullString(n.RelatedBookISBN),
		nullString(n.RelatedQuestionID),
		nullString(n.RelatedAnswerID),
		nullString(n.RelatedSoulmateID),
	)
	return mapError(err, store.ErrAlreadyExists)
}

// CreateNotification inserts a notification directly, outside the
// reciprocity engine (e.g. an answer-liked note a caller chose to send).
// Returns store.ErrNotFound if the recipient does not exist.
func (s *Store) CreateNotification(ctx context.Context, n *domain.Notification) error {
	return insertNotification(ctx, s.db, n)
}

// GetNotification retrieves a notification by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetNotification(ctx context.Context, nID string) (*domain.Notification, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, nID)

	n, err := scanNotification(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotifications returns a user's notifications, oldest first.
// With unreadOnly set, read notifications are filtered out.
func (s *Store) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND is_read = 0`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnreadNotifications returns how many unread notifications a user has.
func (s *Store) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkNotificationRead flips a notification's is_read flag to true.
// Returns store.ErrNotFound if the notification does not exist.
func (s *Store) MarkNotificationRead(ctx context.Context, nID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ?`, nID)
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

// MarkAllNotificationsRead flips every unread notification for a user and
// returns how many were flipped.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// DeleteNotification removes a notification.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteNotification(ctx context.Context, nID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, nID)
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
