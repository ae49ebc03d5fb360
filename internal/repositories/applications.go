package repositories

import (
	"context"
	"time"

	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

// Add inserts the application, converting the UNIQUE(applicant_id,
// job_id) violation into the Duplicate kind.
func (repo *Applications) Add(ctx context.Context, app *models.Application) error {
	err := dbFrom(ctx, repo.db).Create(app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Wrap(apperrors.ErrDuplicate, "application already exists")
		}
		return err
	}
	return nil
}

func (repo *Applications) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	var app models.Application
	err := dbFrom(ctx, repo.db).First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

type ApplicationFilter struct {
	EducationLevel string
	MinExperience  *int
	MaxExperience  *int
}

type ApplicationSort string

const (
	SortNewest ApplicationSort = "newest"
	SortOldest ApplicationSort = "oldest"
	SortName   ApplicationSort = "name"
)

func (repo *Applications) GetByJob(ctx context.Context, jobID int64, filter ApplicationFilter, sort ApplicationSort) ([]models.Application, error) {
	query := dbFrom(ctx, repo.db).Model(&models.Application{}).
		Joins("JOIN users ON users.id = applications.applicant_id").
		Where("applications.job_id = ?", jobID)

	if filter.EducationLevel != "" {
		query = query.Where("users.education_level = ?", filter.EducationLevel)
	}
	if filter.MinExperience != nil {
		query = query.Where("users.experience_years >= ?", *filter.MinExperience)
	}
	if filter.MaxExperience != nil {
		query = query.Where("users.experience_years < ?", *filter.MaxExperience)
	}

	switch sort {
	case SortOldest:
		query = query.Order("applications.submitted_at ASC, applications.id ASC")
	case SortName:
		query = query.Order("users.full_name ASC, applications.id ASC")
	default:
		query = query.Order("applications.submitted_at DESC, applications.id DESC")
	}

	var apps []models.Application
	if err := query.Select("applications.*").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (repo *Applications) GetByApplicant(ctx context.Context, applicantID int64) ([]models.Application, error) {
	var apps []models.Application
	err := dbFrom(ctx, repo.db).
		Where("applicant_id = ?", applicantID).
		Order("submitted_at DESC, id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (repo *Applications) UpdateStage(ctx context.Context, id int64, stageID *int64) error {
	return dbFrom(ctx, repo.db).Model(&models.Application{}).Where("id = ?", id).
		Update("stage_id", stageID).Error
}

func (repo *Applications) UpdateRating(ctx context.Context, id int64, rating int) error {
	return dbFrom(ctx, repo.db).Model(&models.Application{}).Where("id = ?", id).
		Update("rating", rating).Error
}

// SetStatus is a compare-and-set on the current status; it reports
// whether the row was actually moved.
func (repo *Applications) SetStatus(ctx context.Context, id int64, from, to models.ApplicationStatus) (bool, error) {
	res := dbFrom(ctx, repo.db).Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}

// MarkHired sets status, stage and hired date in one update, guarded so
// an already hired application is never restamped.
func (repo *Applications) MarkHired(ctx context.Context, id int64, stageID int64, hiredDate time.Time) (bool, error) {
	res := dbFrom(ctx, repo.db).Model(&models.Application{}).
		Where("id = ? AND status <> ?", id, models.StatusHired).
		Updates(map[string]any{
			"status":     models.StatusHired,
			"stage_id":   stageID,
			"hired_date": hiredDate,
		})
	return res.RowsAffected > 0, res.Error
}

// ReparentStage moves every application in the stage back to intake.
func (repo *Applications) ReparentStage(ctx context.Context, stageID int64) (int64, error) {
	res := dbFrom(ctx, repo.db).Model(&models.Application{}).
		Where("stage_id = ?", stageID).
		Update("stage_id", nil)
	return res.RowsAffected, res.Error
}
