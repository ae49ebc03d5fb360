package tests

import (
	"context"
	"testing"

	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/jobconnect/pipeline/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateAlert_RequiresAtLeastOneCriterion(t *testing.T) {
	ctx := context.Background()
	applicant := seedUser(t, models.RoleApplicant)

	_, err := alertsService.CreateAlert(ctx, applicant.ID, services.AlertInput{
		AlertName: "empty alert",
		IsActive:  true,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func Test_CreateAlert_MinSalaryMustNotExceedMax(t *testing.T) {
	ctx := context.Background()
	applicant := seedUser(t, models.RoleApplicant)

	minSalary, maxSalary := 90000.0, 50000.0
	_, err := alertsService.CreateAlert(ctx, applicant.ID, services.AlertInput{
		AlertName: "salary alert",
		MinSalary: &minSalary,
		MaxSalary: &maxSalary,
		IsActive:  true,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func Test_CreateAlert_EmployerMayNot(t *testing.T) {
	ctx := context.Background()
	employer := seedUser(t, models.RoleEmployer)

	_, err := alertsService.CreateAlert(ctx, employer.ID, services.AlertInput{
		AlertName: "alert",
		JobTitle:  "go",
		IsActive:  true,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidActor)
}

func Test_JobActivation_DispatchesMatchingAlerts(t *testing.T) {
	ctx := context.Background()
	employer := seedUser(t, models.RoleEmployer)
	applicant := seedUser(t, models.RoleApplicant)

	job := seedJob(t, employer.ID, models.JobDraft)

	_, err := alertsService.CreateAlert(ctx, applicant.ID, services.AlertInput{
		AlertName: "go developer alert",
		JobTitle:  "go developer",
		IsActive:  true,
	})
	require.NoError(t, err)

	require.NoError(t, jobsService.Activate(ctx, job.ID, employer.ID))

	feed, err := notificationsService.ListRecent(ctx, applicant.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, feed.Notifications)
	assert.Equal(t, models.NotificationJobAlert, feed.Notifications[0].Kind)

	employerFeed, err := notificationsService.ListRecent(ctx, employer.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, employerFeed.Notifications)
	assert.Equal(t, models.NotificationJobPosted, employerFeed.Notifications[0].Kind)
}

func Test_JobReactivation_DoesNotNotifyTwice(t *testing.T) {
	ctx := context.Background()
	employer := seedUser(t, models.RoleEmployer)
	applicant := seedUser(t, models.RoleApplicant)

	job := seedJob(t, employer.ID, models.JobDraft)

	_, err := alertsService.CreateAlert(ctx, applicant.ID, services.AlertInput{
		AlertName: "go alert",
		JobTitle:  "go",
		IsActive:  true,
	})
	require.NoError(t, err)

	require.NoError(t, jobsService.Activate(ctx, job.ID, employer.ID))
	require.NoError(t, jobsService.Activate(ctx, job.ID, employer.ID))

	feed, err := notificationsService.ListRecent(ctx, applicant.ID, 50)
	require.NoError(t, err)

	alertNotifications := 0
	for _, n := range feed.Notifications {
		if n.Kind == models.NotificationJobAlert && n.RelatedJobID != nil && *n.RelatedJobID == job.ID {
			alertNotifications++
		}
	}
	assert.Equal(t, 1, alertNotifications)
}

func Test_InactiveAlert_IsNotDispatched(t *testing.T) {
	ctx := context.Background()
	employer := seedUser(t, models.RoleEmployer)
	applicant := seedUser(t, models.RoleApplicant)

	job := seedJob(t, employer.ID, models.JobDraft)

	alert, err := alertsService.CreateAlert(ctx, applicant.ID, services.AlertInput{
		AlertName: "paused alert",
		JobTitle:  "go",
		IsActive:  true,
	})
	require.NoError(t, err)

	_, err = alertsService.ToggleAlert(ctx, alert.ID, applicant.ID)
	require.NoError(t, err)

	require.NoError(t, jobsService.Activate(ctx, job.ID, employer.ID))

	feed, err := notificationsService.ListRecent(ctx, applicant.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, feed.Notifications)
}

func Test_MatchesForUser_ListsOpenMatchingJobsNewestFirst(t *testing.T) {
	ctx := context.Background()
	employer := seedUser(t, models.RoleEmployer)
	applicant := seedUser(t, models.RoleApplicant)

	older := seedJob(t, employer.ID, models.JobActive)
	newer := seedJob(t, employer.ID, models.JobActive)
	closed := seedJob(t, employer.ID, models.JobClosed)

	_, err := alertsService.CreateAlert(ctx, applicant.ID, services.AlertInput{
		AlertName: "all go jobs",
		JobTitle:  "go developer",
		IsActive:  true,
	})
	require.NoError(t, err)

	jobs, err := alertsService.MatchesForUser(ctx, applicant.ID, 50, 0)
	require.NoError(t, err)

	ids := make([]int64, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	assert.Contains(t, ids, older.ID)
	assert.Contains(t, ids, newer.ID)
	assert.NotContains(t, ids, closed.ID)

	posOlder, posNewer := -1, -1
	for i, id := range ids {
		if id == older.ID {
			posOlder = i
		}
		if id == newer.ID {
			posNewer = i
		}
	}
	assert.Less(t, posNewer, posOlder, "newer job should come first")
}

func Test_EditAlert_OnlyOwnerMay(t *testing.T) {
	ctx := context.Background()
	applicant := seedUser(t, models.RoleApplicant)
	other := seedUser(t, models.RoleApplicant)

	alert, err := alertsService.CreateAlert(ctx, applicant.ID, services.AlertInput{
		AlertName: "mine",
		JobTitle:  "go",
		IsActive:  true,
	})
	require.NoError(t, err)

	_, err = alertsService.EditAlert(ctx, alert.ID, other.ID, services.AlertInput{
		AlertName: "stolen",
		JobTitle:  "go",
		IsActive:  true,
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = alertsService.DeleteAlert(ctx, alert.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
