package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/events"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/jobconnect/pipeline/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type applicationMutator interface {
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	UpdateStage(ctx context.Context, id int64, stageID *int64) error
	SetStatus(ctx context.Context, id int64, from, to models.ApplicationStatus) (bool, error)
	MarkHired(ctx context.Context, id int64, stageID int64, hiredDate time.Time) (bool, error)
}

type stageResolver interface {
	GetByID(ctx context.Context, id int64) (*models.Stage, error)
}

type hiredStageEnsurer interface {
	EnsureHiredStage(ctx context.Context, jobID int64) (*models.Stage, error)
}

// TransitionsService is the only writer of an application's stage and
// status.
type TransitionsService struct {
	bus           EventBus.Bus
	txm           txRunner
	apps          applicationMutator
	stages        stageResolver
	hiredStages   hiredStageEnsurer
	jobs          jobCatalog
	users         userDirectory
	notifications notificationWriter
}

func NewTransitionsService(bus EventBus.Bus, txm txRunner, apps applicationMutator, stages stageResolver,
	hiredStages hiredStageEnsurer, jobs jobCatalog, users userDirectory, notifications notificationWriter) *TransitionsService {

	return &TransitionsService{
		bus:           bus,
		txm:           txm,
		apps:          apps,
		stages:        stages,
		hiredStages:   hiredStages,
		jobs:          jobs,
		users:         users,
		notifications: notifications,
	}
}

// Move places the application in the target column (nil means intake).
// Status is untouched; a move into a milestone stage notifies the
// applicant inside the same transaction. Returns the target stage, nil
// for intake.
func (s *TransitionsService) Move(ctx context.Context, applicationID, actorID int64, targetStageID *int64) (*models.Stage, error) {

	app, job, err := s.requireOwnedApplication(ctx, applicationID, actorID)
	if err != nil {
		return nil, err
	}

	var target *models.Stage
	if targetStageID != nil {
		target, err = s.stages.GetByID(ctx, *targetStageID)
		if err != nil {
			return nil, err
		}
		if target == nil {
			return nil, errors.Wrap(apperrors.ErrNotFound, "target stage does not exist")
		}
		if target.JobID != app.JobID {
			return nil, errors.Wrap(apperrors.ErrCrossJob, "stage belongs to a different job")
		}
	}

	err = s.txm.Do(ctx, func(ctx context.Context) error {
		if err := s.apps.UpdateStage(ctx, app.ID, targetStageID); err != nil {
			return err
		}
		if target == nil {
			return nil
		}
		kind, milestone := models.MilestoneKind(target.Name)
		if !milestone {
			return nil
		}

		var notification *models.Notification
		if kind == models.NotificationShortlist {
			notification = newShortlistNotification(app.ApplicantID, job, app.ID)
		} else {
			notification = newStatusNotification(app.ApplicantID, job, models.StatusInterview)
		}
		metrics.NotificationsCounter.WithLabelValues(string(kind)).Inc()
		return s.notifications.Add(ctx, notification)
	})
	if err != nil {
		return nil, err
	}

	metrics.StageMovesCounter.Inc()
	return target, nil
}

// Hire ensures the reserved Hired stage, moves the application into it
// and stamps status and hire date atomically. Calling it on an already
// hired application succeeds without side effects.
func (s *TransitionsService) Hire(ctx context.Context, applicationID, actorID int64) error {

	app, job, err := s.requireOwnedApplication(ctx, applicationID, actorID)
	if err != nil {
		return err
	}
	if app.Status == models.StatusHired {
		return nil
	}

	hiredStage, err := s.hiredStages.EnsureHiredStage(ctx, app.JobID)
	if err != nil {
		return err
	}

	hired := false
	err = s.txm.Do(ctx, func(ctx context.Context) error {
		hired, err = s.apps.MarkHired(ctx, app.ID, hiredStage.ID, today())
		if err != nil {
			return err
		}
		if !hired {
			// Lost the race to a concurrent hire; its hired_date stays
			// authoritative and no duplicate notification is emitted.
			return nil
		}
		metrics.NotificationsCounter.WithLabelValues(string(models.NotificationHired)).Inc()
		return s.notifications.Add(ctx, newStatusNotification(app.ApplicantID, job, models.StatusHired))
	})
	if err != nil {
		return err
	}

	if hired {
		metrics.StatusTransitionsCounter.WithLabelValues(string(models.StatusHired)).Inc()
		log.Infof("application %v hired on job %v", app.ID, app.JobID)
		s.bus.Publish(events.CandidateHiredTopic, events.CandidateHired{
			ApplicationID: app.ID,
			JobID:         app.JobID,
			ApplicantID:   app.ApplicantID,
		})
	}
	return nil
}

// SetStatus applies an explicit status transition. The actor must own
// the job or be an admin.
func (s *TransitionsService) SetStatus(ctx context.Context, applicationID, actorID int64, newStatus models.ApplicationStatus) error {

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app == nil {
		return errors.Wrap(apperrors.ErrNotFound, "application does not exist")
	}

	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return err
	}
	if job == nil {
		return errors.Wrap(apperrors.ErrNotFound, "job does not exist")
	}
	if job.EmployerID != actorID {
		actor, err := s.users.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if actor == nil || !actor.Role.Is(models.RoleAdmin) {
			return errors.Wrap(apperrors.ErrForbidden, "actor does not own this job")
		}
	}

	if !app.Status.CanTransitionTo(newStatus) {
		return errors.Wrapf(apperrors.ErrIllegalTransition, "cannot move from %s to %s", app.Status, newStatus)
	}

	if newStatus == models.StatusHired {
		return s.hireByStatus(ctx, app, job)
	}

	err = s.txm.Do(ctx, func(ctx context.Context) error {
		moved, err := s.apps.SetStatus(ctx, app.ID, app.Status, newStatus)
		if err != nil {
			return err
		}
		if !moved {
			return errors.Wrap(apperrors.ErrConflict, "application status changed concurrently")
		}
		notification := newStatusNotification(app.ApplicantID, job, newStatus)
		metrics.NotificationsCounter.WithLabelValues(string(notification.Kind)).Inc()
		return s.notifications.Add(ctx, notification)
	})
	if err != nil {
		return err
	}

	metrics.StatusTransitionsCounter.WithLabelValues(string(newStatus)).Inc()
	return nil
}

func (s *TransitionsService) hireByStatus(ctx context.Context, app *models.Application, job *models.Job) error {
	hiredStage, err := s.hiredStages.EnsureHiredStage(ctx, app.JobID)
	if err != nil {
		return err
	}
	return s.txm.Do(ctx, func(ctx context.Context) error {
		hired, err := s.apps.MarkHired(ctx, app.ID, hiredStage.ID, today())
		if err != nil {
			return err
		}
		if !hired {
			return errors.Wrap(apperrors.ErrConflict, "application was hired concurrently")
		}
		metrics.StatusTransitionsCounter.WithLabelValues(string(models.StatusHired)).Inc()
		metrics.NotificationsCounter.WithLabelValues(string(models.NotificationHired)).Inc()
		return s.notifications.Add(ctx, newStatusNotification(app.ApplicantID, job, models.StatusHired))
	})
}

func (s *TransitionsService) requireOwnedApplication(ctx context.Context, applicationID, actorID int64) (*models.Application, *models.Job, error) {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	if app == nil {
		return nil, nil, errors.Wrap(apperrors.ErrNotFound, "application does not exist")
	}

	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, err
	}
	if job == nil {
		return nil, nil, errors.Wrap(apperrors.ErrNotFound, "job does not exist")
	}
	if job.EmployerID != actorID {
		return nil, nil, errors.Wrap(apperrors.ErrForbidden, "actor does not own this job")
	}
	return app, job, nil
}

// today truncates to the date in the deployment's reference timezone.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
