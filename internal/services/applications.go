package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/events"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/jobconnect/pipeline/internal/logger"
	"github.com/jobconnect/pipeline/internal/metrics"
	"github.com/jobconnect/pipeline/internal/repositories"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type applicationRepository interface {
	Add(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	GetByJob(ctx context.Context, jobID int64, filter repositories.ApplicationFilter, sort repositories.ApplicationSort) ([]models.Application, error)
	GetByApplicant(ctx context.Context, applicantID int64) ([]models.Application, error)
	UpdateRating(ctx context.Context, id int64, rating int) error
}

type stageReader interface {
	GetByJob(ctx context.Context, jobID int64) ([]models.Stage, error)
}

type savedCandidateRepository interface {
	Get(ctx context.Context, employerID, applicationID int64) (*models.SavedCandidate, error)
	Add(ctx context.Context, saved *models.SavedCandidate) error
	Remove(ctx context.Context, employerID, applicationID int64) error
	GetByEmployer(ctx context.Context, employerID int64) ([]models.SavedCandidate, error)
}

// ApplicationsService is the authoritative write path for (applicant,
// job) pairs and the read path for pipeline rendering.
type ApplicationsService struct {
	bus           EventBus.Bus
	txm           txRunner
	apps          applicationRepository
	stages        stageReader
	jobs          jobCatalog
	users         userDirectory
	notifications notificationWriter
	saved         savedCandidateRepository
}

func NewApplicationsService(bus EventBus.Bus, txm txRunner, apps applicationRepository, stages stageReader,
	jobs jobCatalog, users userDirectory, notifications notificationWriter, saved savedCandidateRepository) *ApplicationsService {

	return &ApplicationsService{
		bus:           bus,
		txm:           txm,
		apps:          apps,
		stages:        stages,
		jobs:          jobs,
		users:         users,
		notifications: notifications,
		saved:         saved,
	}
}

// Submit creates a pending application in the intake bucket and records
// the employer notification in the same transaction.
func (s *ApplicationsService) Submit(ctx context.Context, applicantID, jobID int64, notes string) (int64, error) {

	if len(notes) > models.MaxNotesLength {
		return 0, errors.Wrap(apperrors.ErrValidation, "cover letter exceeds 5000 characters")
	}

	applicant, err := s.users.GetByID(ctx, applicantID)
	if err != nil {
		return 0, err
	}
	if applicant == nil || !applicant.Role.Is(models.RoleApplicant) {
		return 0, errors.Wrap(apperrors.ErrInvalidActor, "only applicants can apply")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return 0, err
	}
	if job == nil {
		return 0, errors.Wrap(apperrors.ErrNotFound, "job does not exist")
	}
	if !job.AcceptsApplications(time.Now()) {
		return 0, errors.Wrap(apperrors.ErrJobUnavailable, "job is closed or expired")
	}

	app := &models.Application{
		ApplicantID: applicantID,
		JobID:       jobID,
		SubmittedAt: time.Now(),
		Status:      models.StatusPending,
		Notes:       notes,
	}

	err = s.txm.Do(ctx, func(ctx context.Context) error {
		if err := s.apps.Add(ctx, app); err != nil {
			return err
		}
		notification := newApplicationReceivedNotification(job.EmployerID, applicant.DisplayName(), job, app.ID)
		return s.notifications.Add(ctx, notification)
	})
	if err != nil {
		return 0, err
	}

	metrics.ApplicationsSubmittedCounter.Inc()
	metrics.NotificationsCounter.WithLabelValues(string(models.NotificationReceived)).Inc()
	log.Infof("application %v submitted for job %v by user %v", app.ID, jobID, applicantID)

	s.bus.Publish(events.ApplicationSubmittedTopic, events.ApplicationSubmitted{
		ApplicationID: app.ID,
		JobID:         jobID,
		ApplicantID:   applicantID,
	})
	return app.ID, nil
}

// ApplicationDetail joins the application with its applicant and job
// summaries.
type ApplicationDetail struct {
	Application models.Application
	Applicant   models.User
	Job         models.Job
}

func (s *ApplicationsService) Get(ctx context.Context, id int64) (*ApplicationDetail, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errors.Wrap(apperrors.ErrNotFound, "application does not exist")
	}

	applicant, err := s.users.GetByID(ctx, app.ApplicantID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if applicant == nil || job == nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("application %v references missing applicant or job", id)
		return nil, errors.Wrap(apperrors.ErrNotFound, "application references missing rows")
	}

	return &ApplicationDetail{Application: *app, Applicant: *applicant, Job: *job}, nil
}

// StageColumn is one pipeline column with its applications.
type StageColumn struct {
	Stage        models.Stage
	Applications []models.Application
}

// PipelineView groups a job's applications by stage; Intake holds the
// ones not yet placed in any column.
type PipelineView struct {
	Intake  []models.Application
	Columns []StageColumn
}

func (s *ApplicationsService) ListByJob(ctx context.Context, jobID, actorID int64,
	filter repositories.ApplicationFilter, sort repositories.ApplicationSort) (*PipelineView, error) {

	if _, err := s.requireJobOwner(ctx, jobID, actorID); err != nil {
		return nil, err
	}

	stages, err := s.stages.GetByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	apps, err := s.apps.GetByJob(ctx, jobID, filter, sort)
	if err != nil {
		return nil, err
	}

	byStage := lo.GroupBy(apps, func(app models.Application) int64 {
		if app.StageID == nil {
			return 0
		}
		return *app.StageID
	})

	view := &PipelineView{Intake: byStage[0]}
	for _, stage := range stages {
		view.Columns = append(view.Columns, StageColumn{
			Stage:        stage,
			Applications: byStage[stage.ID],
		})
	}
	return view, nil
}

func (s *ApplicationsService) ListByApplicant(ctx context.Context, applicantID int64) ([]models.Application, error) {
	return s.apps.GetByApplicant(ctx, applicantID)
}

func (s *ApplicationsService) SetRating(ctx context.Context, applicationID, actorID int64, rating int) error {
	if rating < 1 || rating > 5 {
		return errors.Wrap(apperrors.ErrValidation, "rating must be between 1 and 5")
	}

	app, err := s.requireOwnedApplication(ctx, applicationID, actorID)
	if err != nil {
		return err
	}
	return s.apps.UpdateRating(ctx, app.ID, rating)
}

// ToggleSaved bookmarks the candidate, or removes the bookmark when it
// already exists. Returns whether the candidate ends up saved.
func (s *ApplicationsService) ToggleSaved(ctx context.Context, actorID, applicationID int64, notes string) (bool, error) {
	app, err := s.requireOwnedApplication(ctx, applicationID, actorID)
	if err != nil {
		return false, err
	}

	existing, err := s.saved.Get(ctx, actorID, app.ID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, s.saved.Remove(ctx, actorID, app.ID)
	}

	return true, s.saved.Add(ctx, &models.SavedCandidate{
		EmployerID:    actorID,
		ApplicationID: app.ID,
		Notes:         notes,
		SavedAt:       time.Now(),
	})
}

func (s *ApplicationsService) ListSaved(ctx context.Context, actorID int64) ([]models.SavedCandidate, error) {
	return s.saved.GetByEmployer(ctx, actorID)
}

func (s *ApplicationsService) requireJobOwner(ctx context.Context, jobID, actorID int64) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.Wrap(apperrors.ErrNotFound, "job does not exist")
	}
	if job.EmployerID != actorID {
		return nil, errors.Wrap(apperrors.ErrForbidden, "actor does not own this job")
	}
	return job, nil
}

func (s *ApplicationsService) requireOwnedApplication(ctx context.Context, applicationID, actorID int64) (*models.Application, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errors.Wrap(apperrors.ErrNotFound, "application does not exist")
	}
	if _, err := s.requireJobOwner(ctx, app.JobID, actorID); err != nil {
		return nil, err
	}
	return app, nil
}
