package services

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type alertRepository interface {
	Add(ctx context.Context, alert *models.JobAlert) error
	GetByID(ctx context.Context, id int64) (*models.JobAlert, error)
	GetByUser(ctx context.Context, userID int64) ([]models.JobAlert, error)
	GetActiveByUser(ctx context.Context, userID int64) ([]models.JobAlert, error)
	Update(ctx context.Context, alert *models.JobAlert) error
	SetActive(ctx context.Context, id int64, active bool) error
	Remove(ctx context.Context, id int64) error
}

type jobMatcher interface {
	FindMatching(ctx context.Context, alert *models.JobAlert, today time.Time, limit, offset int) ([]models.Job, error)
}

// AlertInput carries the criteria for creating or editing an alert.
type AlertInput struct {
	AlertName        string `validate:"required,max=100"`
	JobTitle         string `validate:"max=200"`
	Location         string `validate:"max=200"`
	EmploymentTypeID *int64
	CategoryID       *int64
	MinSalary        *float64 `validate:"omitempty,gte=0"`
	MaxSalary        *float64 `validate:"omitempty,gte=0"`
	Keywords         string   `validate:"max=500"`
	IsActive         bool
}

// AlertsService owns alert criteria and the pure matching queries.
type AlertsService struct {
	alerts   alertRepository
	jobs     jobMatcher
	users    userDirectory
	validate *validator.Validate
}

func NewAlertsService(alerts alertRepository, jobs jobMatcher, users userDirectory) *AlertsService {
	return &AlertsService{
		alerts:   alerts,
		jobs:     jobs,
		users:    users,
		validate: validator.New(),
	}
}

func (s *AlertsService) CreateAlert(ctx context.Context, actorID int64, input AlertInput) (*models.JobAlert, error) {

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil || !actor.Role.Is(models.RoleApplicant) {
		return nil, errors.Wrap(apperrors.ErrInvalidActor, "only applicants can create alerts")
	}

	alert, err := s.alertFromInput(actorID, input)
	if err != nil {
		return nil, err
	}
	if err := s.alerts.Add(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *AlertsService) EditAlert(ctx context.Context, alertID, actorID int64, input AlertInput) (*models.JobAlert, error) {
	existing, err := s.requireOwnedAlert(ctx, alertID, actorID)
	if err != nil {
		return nil, err
	}

	alert, err := s.alertFromInput(actorID, input)
	if err != nil {
		return nil, err
	}
	alert.ID = existing.ID
	if err := s.alerts.Update(ctx, alert); err != nil {
		return nil, err
	}
	return s.alerts.GetByID(ctx, alertID)
}

func (s *AlertsService) DeleteAlert(ctx context.Context, alertID, actorID int64) error {
	if _, err := s.requireOwnedAlert(ctx, alertID, actorID); err != nil {
		return err
	}
	return s.alerts.Remove(ctx, alertID)
}

// ToggleAlert flips is_active and returns the new state.
func (s *AlertsService) ToggleAlert(ctx context.Context, alertID, actorID int64) (*models.JobAlert, error) {
	alert, err := s.requireOwnedAlert(ctx, alertID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.alerts.SetActive(ctx, alertID, !alert.IsActive); err != nil {
		return nil, err
	}
	alert.IsActive = !alert.IsActive
	return alert, nil
}

func (s *AlertsService) ListAlerts(ctx context.Context, actorID int64) ([]models.JobAlert, error) {
	return s.alerts.GetByUser(ctx, actorID)
}

// MatchesForAlert is a pure query: active jobs satisfying the alert,
// newest first.
func (s *AlertsService) MatchesForAlert(ctx context.Context, alertID, actorID int64, limit, offset int) ([]models.Job, error) {
	alert, err := s.requireOwnedAlert(ctx, alertID, actorID)
	if err != nil {
		return nil, err
	}
	return s.jobs.FindMatching(ctx, alert, time.Now(), limit, offset)
}

// MatchesForUser is the deduplicated union across the user's active
// alerts, newest first.
func (s *AlertsService) MatchesForUser(ctx context.Context, userID int64, limit, offset int) ([]models.Job, error) {
	alerts, err := s.alerts.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var all []models.Job
	for i := range alerts {
		jobs, err := s.jobs.FindMatching(ctx, &alerts[i], time.Now(), 0, 0)
		if err != nil {
			return nil, err
		}
		all = append(all, jobs...)
	}

	unique := lo.UniqBy(all, func(job models.Job) int64 { return job.ID })
	sort.Slice(unique, func(i, j int) bool {
		if unique[i].PostedAt.Equal(unique[j].PostedAt) {
			return unique[i].ID > unique[j].ID
		}
		return unique[i].PostedAt.After(unique[j].PostedAt)
	})

	if offset >= len(unique) {
		return []models.Job{}, nil
	}
	unique = unique[offset:]
	if limit > 0 && limit < len(unique) {
		unique = unique[:limit]
	}
	return unique, nil
}

func (s *AlertsService) alertFromInput(userID int64, input AlertInput) (*models.JobAlert, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, errors.Wrap(apperrors.ErrValidation, err.Error())
	}

	alert := &models.JobAlert{
		UserID:           userID,
		AlertName:        input.AlertName,
		JobTitle:         input.JobTitle,
		Location:         input.Location,
		EmploymentTypeID: input.EmploymentTypeID,
		CategoryID:       input.CategoryID,
		MinSalary:        input.MinSalary,
		MaxSalary:        input.MaxSalary,
		Keywords:         input.Keywords,
		IsActive:         input.IsActive,
	}

	if !alert.HasCriteria() {
		return nil, errors.Wrap(apperrors.ErrValidation, "at least one criterion must be set")
	}
	if alert.MinSalary != nil && alert.MaxSalary != nil && *alert.MinSalary > *alert.MaxSalary {
		return nil, errors.Wrap(apperrors.ErrValidation, "min salary must not exceed max salary")
	}
	return alert, nil
}

func (s *AlertsService) requireOwnedAlert(ctx context.Context, alertID, actorID int64) (*models.JobAlert, error) {
	alert, err := s.alerts.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, errors.Wrap(apperrors.ErrNotFound, "alert does not exist")
	}
	if alert.UserID != actorID {
		return nil, errors.Wrap(apperrors.ErrForbidden, "actor does not own this alert")
	}
	return alert, nil
}
