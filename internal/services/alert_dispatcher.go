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
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type activeAlertPager interface {
	GetActive(ctx context.Context, limit int, offset int) ([]models.JobAlert, error)
	RecordDispatch(ctx context.Context, alertID, jobID int64) error
}

// AlertDispatcher fans a job activation out to every matching active
// alert. It runs inline with the activation request, off the bus, and
// the (alert, job) marker keeps re-activations from re-notifying.
type AlertDispatcher struct {
	txm           txRunner
	alerts        activeAlertPager
	jobs          jobCatalog
	notifications notificationWriter
}

func NewAlertDispatcher(bus EventBus.Bus, txm txRunner, alerts activeAlertPager,
	jobs jobCatalog, notifications notificationWriter) (*AlertDispatcher, error) {

	d := &AlertDispatcher{
		txm:           txm,
		alerts:        alerts,
		jobs:          jobs,
		notifications: notifications,
	}
	err := bus.Subscribe(events.JobActivatedTopic, d.onJobActivated)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *AlertDispatcher) onJobActivated(event events.JobActivated) {
	if err := d.DispatchForJob(context.Background(), event.JobID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("alert dispatch failed for job %v: %v", event.JobID, err)
	}
}

// DispatchForJob evaluates every active alert against the job and
// notifies each matching owner at most once per (alert, job) lifetime.
func (d *AlertDispatcher) DispatchForJob(ctx context.Context, jobID int64) error {

	start := time.Now()
	defer func() {
		metrics.AlertEvaluationDuration.Observe(time.Since(start).Seconds())
	}()

	job, err := d.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil || !job.AcceptsApplications(time.Now()) {
		return nil
	}

	var pageSize, dispatched = 50, 0

	for offset := 0; ; offset += pageSize {
		alerts, err := d.alerts.GetActive(ctx, pageSize, offset)
		if err != nil {
			return err
		}
		if len(alerts) == 0 {
			break
		}

		for i := range alerts {
			alert := &alerts[i]
			if !alert.Matches(*job, time.Now()) {
				continue
			}
			sent, err := d.dispatch(ctx, alert, job)
			if err != nil {
				return err
			}
			if sent {
				dispatched++
			}
		}
	}

	if dispatched > 0 {
		log.Infof("job %v activation notified %v alert owners", jobID, dispatched)
	}
	return nil
}

// dispatch writes the dedup marker and the notification in one
// transaction; an existing marker turns the whole call into a no-op.
func (d *AlertDispatcher) dispatch(ctx context.Context, alert *models.JobAlert, job *models.Job) (bool, error) {
	err := d.txm.Do(ctx, func(ctx context.Context) error {
		if err := d.alerts.RecordDispatch(ctx, alert.ID, job.ID); err != nil {
			return err
		}
		return d.notifications.Add(ctx, newJobAlertNotification(alert.UserID, alert.AlertName, job))
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}

	metrics.AlertDispatchesCounter.Inc()
	metrics.NotificationsCounter.WithLabelValues(string(models.NotificationJobAlert)).Inc()
	return true, nil
}
