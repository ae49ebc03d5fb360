package repositories

import (
	"context"

	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Alerts struct {
	db *gorm.DB
}

func NewAlertsRepository(db *gorm.DB) *Alerts {
	return &Alerts{db: db}
}

func (repo *Alerts) Add(ctx context.Context, alert *models.JobAlert) error {
	return dbFrom(ctx, repo.db).Create(alert).Error
}

func (repo *Alerts) GetByID(ctx context.Context, id int64) (*models.JobAlert, error) {
	var alert models.JobAlert
	err := dbFrom(ctx, repo.db).First(&alert, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (repo *Alerts) GetByUser(ctx context.Context, userID int64) ([]models.JobAlert, error) {
	var alerts []models.JobAlert
	err := dbFrom(ctx, repo.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (repo *Alerts) GetActiveByUser(ctx context.Context, userID int64) ([]models.JobAlert, error) {
	var alerts []models.JobAlert
	err := dbFrom(ctx, repo.db).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// GetActive pages through every active alert, for the activation hook.
func (repo *Alerts) GetActive(ctx context.Context, limit int, offset int) ([]models.JobAlert, error) {
	var alerts []models.JobAlert
	err := dbFrom(ctx, repo.db).
		Where("is_active = ?", true).
		Limit(limit).
		Offset(offset).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (repo *Alerts) Update(ctx context.Context, alert *models.JobAlert) error {
	return dbFrom(ctx, repo.db).Model(&models.JobAlert{}).Where("id = ?", alert.ID).
		Select("alert_name", "job_title", "location", "employment_type_id",
			"category_id", "min_salary", "max_salary", "keywords", "is_active").
		Updates(alert).Error
}

func (repo *Alerts) SetActive(ctx context.Context, id int64, active bool) error {
	return dbFrom(ctx, repo.db).Model(&models.JobAlert{}).Where("id = ?", id).
		Update("is_active", active).Error
}

func (repo *Alerts) Remove(ctx context.Context, id int64) error {
	return dbFrom(ctx, repo.db).Delete(&models.JobAlert{}, "id = ?", id).Error
}

// RecordDispatch writes the (alert, job) marker. A duplicate marker
// surfaces as the Duplicate kind so the caller can skip re-notifying.
func (repo *Alerts) RecordDispatch(ctx context.Context, alertID, jobID int64) error {
	err := dbFrom(ctx, repo.db).Create(&models.AlertDispatch{
		AlertID: alertID,
		JobID:   jobID,
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Wrap(apperrors.ErrDuplicate, "alert already dispatched for this job")
		}
		return err
	}
	return nil
}

func (repo *Alerts) WasDispatched(ctx context.Context, alertID, jobID int64) (bool, error) {
	var dispatch models.AlertDispatch
	err := dbFrom(ctx, repo.db).
		Where("alert_id = ? AND job_id = ?", alertID, jobID).
		First(&dispatch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
