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

type jobActivator interface {
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	SetActive(ctx context.Context, id int64, now time.Time) error
}

type jobCacheInvalidator interface {
	Invalidate(id int64)
}

// JobsService hosts the one write path the core exposes on the job
// catalog: activation, which triggers alert fan-out.
type JobsService struct {
	bus      EventBus.Bus
	txm      txRunner
	jobs     jobActivator
	users    userDirectory
	notify   notificationWriter
	jobCache jobCacheInvalidator
}

func NewJobsService(bus EventBus.Bus, txm txRunner, jobs jobActivator, users userDirectory,
	notify notificationWriter, jobCache jobCacheInvalidator) *JobsService {

	return &JobsService{bus: bus, txm: txm, jobs: jobs, users: users, notify: notify, jobCache: jobCache}
}

// Activate flips the job to active and publishes the activation event
// that drives alert matching. Re-activating an active job republishes
// the event; the dispatch markers keep subscribers from being notified
// twice.
func (s *JobsService) Activate(ctx context.Context, jobID, actorID int64) error {

	job, err := s.jobs.GetByID(ctx, jobID)
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

	wasActive := job.Status == models.JobActive

	err = s.txm.Do(ctx, func(ctx context.Context) error {
		if err := s.jobs.SetActive(ctx, jobID, time.Now()); err != nil {
			return err
		}
		if wasActive {
			return nil
		}
		metrics.NotificationsCounter.WithLabelValues(string(models.NotificationJobPosted)).Inc()
		return s.notify.Add(ctx, newJobPostedNotification(job.EmployerID, job))
	})
	if err != nil {
		return err
	}

	if s.jobCache != nil {
		s.jobCache.Invalidate(jobID)
	}

	log.Infof("job %v activated by user %v", jobID, actorID)
	s.bus.Publish(events.JobActivatedTopic, events.JobActivated{JobID: jobID})
	return nil
}
