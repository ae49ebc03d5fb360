package repositories

import (
	"context"

	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Stages struct {
	db *gorm.DB
}

func NewStagesRepository(db *gorm.DB) *Stages {
	return &Stages{db: db}
}

func (repo *Stages) Add(ctx context.Context, stage *models.Stage) error {
	err := dbFrom(ctx, repo.db).Create(stage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Wrap(apperrors.ErrDuplicate, "stage name already exists for this job")
		}
		return err
	}
	return nil
}

func (repo *Stages) GetByID(ctx context.Context, id int64) (*models.Stage, error) {
	var stage models.Stage
	err := dbFrom(ctx, repo.db).First(&stage, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stage, nil
}

func (repo *Stages) GetByJob(ctx context.Context, jobID int64) ([]models.Stage, error) {
	var stages []models.Stage
	err := dbFrom(ctx, repo.db).
		Where("job_id = ?", jobID).
		Order("sort_order ASC, created_at ASC").
		Find(&stages).Error
	if err != nil {
		return nil, err
	}
	return stages, nil
}

// GetSystemByJob returns the job's system stage with the given name, or
// nil when it has not been materialised yet.
func (repo *Stages) GetSystemByJob(ctx context.Context, jobID int64, name string) (*models.Stage, error) {
	var stage models.Stage
	err := dbFrom(ctx, repo.db).
		First(&stage, "job_id = ? AND name = ? AND is_system = ?", jobID, name, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stage, nil
}

func (repo *Stages) MaxOrder(ctx context.Context, jobID int64) (int, error) {
	var maxOrder *int
	err := dbFrom(ctx, repo.db).Model(&models.Stage{}).
		Where("job_id = ? AND is_system = ?", jobID, false).
		Select("MAX(sort_order)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	if maxOrder == nil {
		return 0, nil
	}
	return *maxOrder, nil
}

func (repo *Stages) Rename(ctx context.Context, id int64, name string) error {
	err := dbFrom(ctx, repo.db).Model(&models.Stage{}).Where("id = ?", id).
		Update("name", name).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrap(apperrors.ErrDuplicate, "stage name already exists for this job")
	}
	return err
}

func (repo *Stages) Remove(ctx context.Context, id int64) error {
	return dbFrom(ctx, repo.db).Delete(&models.Stage{}, "id = ?", id).Error
}
