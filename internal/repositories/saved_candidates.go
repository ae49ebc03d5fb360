package repositories

import (
	"context"

	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SavedCandidates struct {
	db *gorm.DB
}

func NewSavedCandidatesRepository(db *gorm.DB) *SavedCandidates {
	return &SavedCandidates{db: db}
}

func (repo *SavedCandidates) Get(ctx context.Context, employerID, applicationID int64) (*models.SavedCandidate, error) {
	var saved models.SavedCandidate
	err := dbFrom(ctx, repo.db).
		Where("employer_id = ? AND application_id = ?", employerID, applicationID).
		First(&saved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &saved, nil
}

func (repo *SavedCandidates) Add(ctx context.Context, saved *models.SavedCandidate) error {
	return dbFrom(ctx, repo.db).Create(saved).Error
}

func (repo *SavedCandidates) Remove(ctx context.Context, employerID, applicationID int64) error {
	return dbFrom(ctx, repo.db).
		Delete(&models.SavedCandidate{}, "employer_id = ? AND application_id = ?", employerID, applicationID).Error
}

func (repo *SavedCandidates) GetByEmployer(ctx context.Context, employerID int64) ([]models.SavedCandidate, error) {
	var saved []models.SavedCandidate
	err := dbFrom(ctx, repo.db).
		Where("employer_id = ?", employerID).
		Order("saved_at DESC, id DESC").
		Find(&saved).Error
	if err != nil {
		return nil, err
	}
	return saved, nil
}
