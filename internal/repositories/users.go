package repositories

import (
	"context"

	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

// GetByID returns nil without error when the user does not exist.
func (repo *Users) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := dbFrom(ctx, repo.db).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (repo *Users) Add(ctx context.Context, user *models.User) error {
	return dbFrom(ctx, repo.db).Create(user).Error
}
