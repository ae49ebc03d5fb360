package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	entities := []struct {
		name  string
		model any
	}{
		{"User", models.User{}},
		{"Job", models.Job{}},
		{"Stage", models.Stage{}},
		{"Application", models.Application{}},
		{"Notification", models.Notification{}},
		{"JobAlert", models.JobAlert{}},
		{"AlertDispatch", models.AlertDispatch{}},
		{"SavedCandidate", models.SavedCandidate{}},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity.model); err != nil {
			return fmt.Errorf("failed to migrate %s entity: %w", entity.name, err)
		}
	}

	if err := c.DB.Exec("CREATE INDEX IF NOT EXISTS idx_applications_job_status ON applications (job_id, status); " +
		"CREATE INDEX IF NOT EXISTS idx_applications_applicant_status ON applications (applicant_id, status); " +
		"CREATE INDEX IF NOT EXISTS idx_applications_submitted ON applications (submitted_at DESC); " +
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications (user_id, created_at DESC); " +
		"CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications (user_id, is_read); " +
		"CREATE INDEX IF NOT EXISTS idx_stages_job_order ON stages (job_id, sort_order);").
		Error; err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
