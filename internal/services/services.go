package services

import (
	"context"

	"github.com/jobconnect/pipeline/internal/domain/models"
)

// txRunner runs a function inside one storage transaction. Notification
// rows are written through it together with the state change that
// triggered them.
type txRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type userDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type jobCatalog interface {
	GetByID(ctx context.Context, id int64) (*models.Job, error)
}

type notificationWriter interface {
	Add(ctx context.Context, notification *models.Notification) error
}
