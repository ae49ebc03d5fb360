package tests

import (
	"context"
	"testing"
	"time"

	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotification(t *testing.T, userID int64, createdAt time.Time, read bool) *models.Notification {
	t.Helper()

	notification := &models.Notification{
		UserID:    userID,
		Kind:      models.NotificationSystem,
		Title:     "System Notice",
		Message:   "something happened",
		CreatedAt: createdAt,
		IsRead:    read,
	}
	if read {
		readAt := createdAt
		notification.ReadAt = &readAt
	}
	require.NoError(t, notificationsRepo.Add(context.Background(), notification))
	return notification
}

func Test_ListRecent_NewestFirstWithUnreadCount(t *testing.T) {
	ctx := context.Background()
	user := seedUser(t, models.RoleApplicant)

	now := time.Now()
	oldest := seedNotification(t, user.ID, now.Add(-2*time.Hour), true)
	middle := seedNotification(t, user.ID, now.Add(-time.Hour), false)
	newest := seedNotification(t, user.ID, now, false)

	feed, err := notificationsService.ListRecent(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, feed.Notifications, 3)
	assert.Equal(t, newest.ID, feed.Notifications[0].ID)
	assert.Equal(t, middle.ID, feed.Notifications[1].ID)
	assert.Equal(t, oldest.ID, feed.Notifications[2].ID)
	assert.Equal(t, int64(2), feed.UnreadCount)
}

func Test_MarkRead_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	user := seedUser(t, models.RoleApplicant)
	notification := seedNotification(t, user.ID, time.Now(), false)

	unread, err := notificationsService.MarkRead(ctx, notification.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	unread, err = notificationsService.MarkRead(ctx, notification.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	stored, err := notificationsRepo.GetByID(ctx, notification.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
	assert.NotNil(t, stored.ReadAt)
}

func Test_MarkRead_ForeignNotificationIsNotFound(t *testing.T) {
	ctx := context.Background()
	owner := seedUser(t, models.RoleApplicant)
	intruder := seedUser(t, models.RoleApplicant)
	notification := seedNotification(t, owner.ID, time.Now(), false)

	_, err := notificationsService.MarkRead(ctx, notification.ID, intruder.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func Test_MarkAllRead(t *testing.T) {
	ctx := context.Background()
	user := seedUser(t, models.RoleApplicant)
	seedNotification(t, user.ID, time.Now(), false)
	seedNotification(t, user.ID, time.Now(), false)
	seedNotification(t, user.ID, time.Now(), true)

	affected, err := notificationsService.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	count, err := notificationsService.UnreadCount(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func Test_Delete_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	owner := seedUser(t, models.RoleApplicant)
	intruder := seedUser(t, models.RoleApplicant)
	notification := seedNotification(t, owner.ID, time.Now(), false)

	_, err := notificationsService.Delete(ctx, notification.ID, intruder.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = notificationsService.Delete(ctx, notification.ID, owner.ID)
	require.NoError(t, err)

	stored, err := notificationsRepo.GetByID(ctx, notification.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func Test_RemoveOldRead_KeepsUnreadAndRecent(t *testing.T) {
	ctx := context.Background()
	user := seedUser(t, models.RoleApplicant)

	now := time.Now()
	oldRead := seedNotification(t, user.ID, now.AddDate(0, -4, 0), true)
	oldUnread := seedNotification(t, user.ID, now.AddDate(0, -4, 0), false)
	recentRead := seedNotification(t, user.ID, now, true)

	removed, err := notificationsRepo.RemoveOldRead(ctx, now.AddDate(0, -3, 0))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))

	stored, err := notificationsRepo.GetByID(ctx, oldRead.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	stored, err = notificationsRepo.GetByID(ctx, oldUnread.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)

	stored, err = notificationsRepo.GetByID(ctx, recentRead.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}
