package service

import (
	"context"
	"log/slog"

	"github.com/bookbondapp/bookbond-server/internal/domain"
	"github.com/bookbondapp/bookbond-server/internal/store/sqlite"
)

// NotificationService exposes a user's notification feed.
type NotificationService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(store *sqlite.Store, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		store:  store,
		logger: logger,
	}
}

// List returns the user's notifications, oldest first.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	return s.store.ListNotifications(ctx, userID, unreadOnly)
}

// UnreadCount returns how many unread notifications the user has.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnreadNotifications(ctx, userID)
}

// MarkRead marks a single notification as read. Marking an already-read
// notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	return s.store.MarkNotificationRead(ctx, notificationID)
}

// MarkAllRead marks every unread notification for the user and returns how
// many were marked.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	n, err := s.store.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Debug("notifications marked read", "user", userID, "count", n)
	}
	return n, nil
}

// Delete removes a notification from the feed.
func (s *NotificationService) Delete(ctx context.Context, notificationID string) error {
	return s.store.DeleteNotification(ctx, notificationID)
}
