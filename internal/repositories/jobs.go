package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	var job models.Job
	err := dbFrom(ctx, repo.db).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (repo *Jobs) Add(ctx context.Context, job *models.Job) error {
	return dbFrom(ctx, repo.db).Create(job).Error
}

// SetActive flips the job to active. PostedAt is stamped only on the
// first activation.
func (repo *Jobs) SetActive(ctx context.Context, id int64, now time.Time) error {
	updates := map[string]any{"status": models.JobActive}
	var job models.Job
	if err := dbFrom(ctx, repo.db).First(&job, "id = ?", id).Error; err != nil {
		return err
	}
	if job.PostedAt.IsZero() {
		updates["posted_at"] = now
	}
	return dbFrom(ctx, repo.db).Model(&models.Job{}).Where("id = ?", id).Updates(updates).Error
}

// FindMatching lists active, unexpired jobs satisfying the alert
// criteria, newest first. Mirrors models.JobAlert.Matches.
func (repo *Jobs) FindMatching(ctx context.Context, alert *models.JobAlert, today time.Time, limit, offset int) ([]models.Job, error) {
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, today.Location())

	query := dbFrom(ctx, repo.db).Model(&models.Job{}).
		Where("status = ?", models.JobActive).
		Where("expiration_date >= ?", day)

	if alert.JobTitle != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+lowered(alert.JobTitle)+"%")
	}
	if alert.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+lowered(alert.Location)+"%")
	}
	if alert.EmploymentTypeID != nil {
		query = query.Where("employment_type_id = ?", *alert.EmploymentTypeID)
	}
	if alert.CategoryID != nil {
		query = query.Where("category_id = ?", *alert.CategoryID)
	}
	if alert.MinSalary != nil {
		query = query.Where("min_salary IS NULL OR min_salary >= ?", *alert.MinSalary)
	}
	if alert.MaxSalary != nil {
		query = query.Where("max_salary IS NULL OR max_salary <= ?", *alert.MaxSalary)
	}

	if keywords := alert.KeywordsAsArray(); len(keywords) > 0 {
		keywordQuery := dbFrom(ctx, repo.db).Model(&models.Job{})
		for i, kw := range keywords {
			pattern := "%" + lowered(kw) + "%"
			if i == 0 {
				keywordQuery = keywordQuery.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
			} else {
				keywordQuery = keywordQuery.Or("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
			}
		}
		query = query.Where(keywordQuery)
	}

	var jobs []models.Job
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Order("posted_at DESC, id DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func lowered(s string) string {
	return strings.ToLower(s)
}
