package services

import (
	"context"
	"time"

	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/jobconnect/pipeline/internal/metrics"
	"github.com/pkg/errors"
)

const defaultFeedLimit = 20

type notificationRepository interface {
	Add(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	GetRecentByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	UnreadCountByUser(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64, now time.Time) (int64, error)
	MarkAllRead(ctx context.Context, userID int64, now time.Time) (int64, error)
	Remove(ctx context.Context, id, userID int64) (int64, error)
}

// NotificationsService is the per-user feed: append-only, newest first,
// with read state owned by the recipient.
type NotificationsService struct {
	notifications notificationRepository
}

func NewNotificationsService(notifications notificationRepository) *NotificationsService {
	return &NotificationsService{notifications: notifications}
}

// Create appends a system notification outside the pipeline flows.
func (s *NotificationsService) Create(ctx context.Context, userID int64, kind models.NotificationKind,
	title, message, link string) (int64, error) {

	if title == "" || message == "" {
		return 0, errors.Wrap(apperrors.ErrValidation, "title and message are required")
	}
	notification := &models.Notification{
		UserID:  userID,
		Kind:    kind,
		Title:   title,
		Message: message,
		Link:    link,
	}
	if err := s.notifications.Add(ctx, notification); err != nil {
		return 0, err
	}
	metrics.NotificationsCounter.WithLabelValues(string(kind)).Inc()
	return notification.ID, nil
}

// Feed is the newest-first page plus the unread badge count.
type Feed struct {
	Notifications []models.Notification
	UnreadCount   int64
}

func (s *NotificationsService) ListRecent(ctx context.Context, userID int64, limit int) (*Feed, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	notifications, err := s.notifications.GetRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.UnreadCountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Feed{Notifications: notifications, UnreadCount: unread}, nil
}

func (s *NotificationsService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.UnreadCountByUser(ctx, userID)
}

// MarkRead is idempotent: re-reading an already read notification is a
// no-op and read_at keeps its first value. Returns the remaining unread
// count.
func (s *NotificationsService) MarkRead(ctx context.Context, notificationID, actorID int64) (int64, error) {
	affected, err := s.notifications.MarkRead(ctx, notificationID, actorID, time.Now())
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		notification, err := s.notifications.GetByID(ctx, notificationID)
		if err != nil {
			return 0, err
		}
		if notification == nil || notification.UserID != actorID {
			return 0, errors.Wrap(apperrors.ErrNotFound, "notification does not exist")
		}
	}
	return s.notifications.UnreadCountByUser(ctx, actorID)
}

func (s *NotificationsService) MarkAllRead(ctx context.Context, actorID int64) (int64, error) {
	return s.notifications.MarkAllRead(ctx, actorID, time.Now())
}

// Delete removes the notification and returns the remaining unread
// count.
func (s *NotificationsService) Delete(ctx context.Context, notificationID, actorID int64) (int64, error) {
	affected, err := s.notifications.Remove(ctx, notificationID, actorID)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, errors.Wrap(apperrors.ErrNotFound, "notification does not exist")
	}
	return s.notifications.UnreadCountByUser(ctx, actorID)
}
