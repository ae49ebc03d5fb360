package repositories

import (
	"context"
	"time"

	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Notifications struct {
	db *gorm.DB
}

func NewNotificationsRepository(db *gorm.DB) *Notifications {
	return &Notifications{db: db}
}

func (repo *Notifications) Add(ctx context.Context, notification *models.Notification) error {
	return dbFrom(ctx, repo.db).Create(notification).Error
}

func (repo *Notifications) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	var notification models.Notification
	err := dbFrom(ctx, repo.db).First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (repo *Notifications) GetRecentByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := dbFrom(ctx, repo.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (repo *Notifications) UnreadCountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := dbFrom(ctx, repo.db).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips the unread flag and stamps read_at exactly once; a
// second call affects no rows.
func (repo *Notifications) MarkRead(ctx context.Context, id, userID int64, now time.Time) (int64, error) {
	res := dbFrom(ctx, repo.db).Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Updates(map[string]any{"is_read": true, "read_at": now})
	return res.RowsAffected, res.Error
}

func (repo *Notifications) MarkAllRead(ctx context.Context, userID int64, now time.Time) (int64, error) {
	res := dbFrom(ctx, repo.db).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": now})
	return res.RowsAffected, res.Error
}

func (repo *Notifications) Remove(ctx context.Context, id, userID int64) (int64, error) {
	res := dbFrom(ctx, repo.db).Delete(&models.Notification{}, "id = ? AND user_id = ?", id, userID)
	return res.RowsAffected, res.Error
}

// RemoveOldRead deletes read notifications created before the cutoff.
func (repo *Notifications) RemoveOldRead(ctx context.Context, cutoff time.Time) (int64, error) {
	res := dbFrom(ctx, repo.db).Delete(&models.Notification{}, "is_read = ? AND created_at < ?", true, cutoff)
	return res.RowsAffected, res.Error
}
