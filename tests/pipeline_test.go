package tests

import (
	"context"
	"testing"

	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/jobconnect/pipeline/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Submit_CreatesPendingApplicationAndNotifiesEmployer(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	applicant := seedUser(t, models.RoleApplicant)

	id, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "I would love to join")
	require.NoError(t, err)

	detail, err := applicationsService.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, detail.Application.Status)
	assert.Nil(t, detail.Application.StageID)

	feed, err := notificationsService.ListRecent(ctx, employer.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, feed.Notifications)
	assert.Equal(t, models.NotificationReceived, feed.Notifications[0].Kind)
	assert.Equal(t, "New Application Received", feed.Notifications[0].Title)
}

func Test_Submit_SecondApplicationToSameJobIsRejected(t *testing.T) {
	ctx := context.Background()
	_, job := seedActiveJob(t)
	applicant := seedUser(t, models.RoleApplicant)

	_, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	_, err = applicationsService.Submit(ctx, applicant.ID, job.ID, "second try")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func Test_Submit_EmployerCannotApply(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)

	_, err := applicationsService.Submit(ctx, employer.ID, job.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidActor)
}

func Test_Submit_ClosedJobIsUnavailable(t *testing.T) {
	ctx := context.Background()
	employer := seedUser(t, models.RoleEmployer)
	job := seedJob(t, employer.ID, models.JobClosed)
	applicant := seedUser(t, models.RoleApplicant)

	_, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrJobUnavailable)
}

func Test_Move_IntoShortlistedStageNotifiesApplicant(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	applicant := seedUser(t, models.RoleApplicant)

	appID, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	stageID, err := stagesService.AddStage(ctx, job.ID, employer.ID, "Shortlisted")
	require.NoError(t, err)

	stage, err := transitionsService.Move(ctx, appID, employer.ID, &stageID)
	require.NoError(t, err)
	assert.Equal(t, "Shortlisted", stage.Name)

	detail, err := applicationsService.Get(ctx, appID)
	require.NoError(t, err)
	require.NotNil(t, detail.Application.StageID)
	assert.Equal(t, stageID, *detail.Application.StageID)
	assert.Equal(t, models.StatusPending, detail.Application.Status, "moving does not touch status")

	feed, err := notificationsService.ListRecent(ctx, applicant.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, feed.Notifications)
	assert.Equal(t, "Application Shortlisted!", feed.Notifications[0].Title)
}

func Test_Move_ToStageOfAnotherJobIsRejected(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	otherJob := seedJob(t, employer.ID, models.JobActive)
	applicant := seedUser(t, models.RoleApplicant)

	appID, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	foreignStage, err := stagesService.AddStage(ctx, otherJob.ID, employer.ID, "Screening")
	require.NoError(t, err)

	_, err = transitionsService.Move(ctx, appID, employer.ID, &foreignStage)
	assert.ErrorIs(t, err, apperrors.ErrCrossJob)
}

func Test_Move_OnlyJobOwnerMayMove(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	stranger := seedUser(t, models.RoleEmployer)
	applicant := seedUser(t, models.RoleApplicant)

	appID, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	stageID, err := stagesService.AddStage(ctx, job.ID, employer.ID, "Screening")
	require.NoError(t, err)

	_, err = transitionsService.Move(ctx, appID, stranger.ID, &stageID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func Test_Hire_IsIdempotentAndNotifiesOnce(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	applicant := seedUser(t, models.RoleApplicant)

	appID, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	require.NoError(t, transitionsService.Hire(ctx, appID, employer.ID))
	require.NoError(t, transitionsService.Hire(ctx, appID, employer.ID))

	detail, err := applicationsService.Get(ctx, appID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusHired, detail.Application.Status)
	assert.NotNil(t, detail.Application.HiredDate)

	require.NotNil(t, detail.Application.StageID)
	stage, err := stagesRepo.GetByID(ctx, *detail.Application.StageID)
	require.NoError(t, err)
	assert.Equal(t, models.HiredStageName, stage.Name)
	assert.True(t, stage.IsSystem)

	feed, err := notificationsService.ListRecent(ctx, applicant.ID, 20)
	require.NoError(t, err)
	hired := 0
	for _, n := range feed.Notifications {
		if n.Kind == models.NotificationHired {
			hired++
		}
	}
	assert.Equal(t, 1, hired)
}

func Test_SetStatus_BackwardTransitionIsRejected(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	applicant := seedUser(t, models.RoleApplicant)

	appID, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	require.NoError(t, transitionsService.SetStatus(ctx, appID, employer.ID, models.StatusInterview))

	err = transitionsService.SetStatus(ctx, appID, employer.ID, models.StatusReviewed)
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
}

func Test_SetStatus_TerminalStatusAdmitsNothing(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	applicant := seedUser(t, models.RoleApplicant)

	appID, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	require.NoError(t, transitionsService.SetStatus(ctx, appID, employer.ID, models.StatusRejected))

	err = transitionsService.SetStatus(ctx, appID, employer.ID, models.StatusReviewed)
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
}

func Test_SetStatus_HiredRouteMatchesHire(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	applicant := seedUser(t, models.RoleApplicant)

	appID, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	require.NoError(t, transitionsService.SetStatus(ctx, appID, employer.ID, models.StatusHired))

	detail, err := applicationsService.Get(ctx, appID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusHired, detail.Application.Status)
	require.NotNil(t, detail.Application.StageID)
}

func Test_DeleteStage_ReparentsApplicationsToIntake(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	applicant := seedUser(t, models.RoleApplicant)

	appID, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	stageID, err := stagesService.AddStage(ctx, job.ID, employer.ID, "Phone Screen")
	require.NoError(t, err)

	_, err = transitionsService.Move(ctx, appID, employer.ID, &stageID)
	require.NoError(t, err)

	require.NoError(t, stagesService.DeleteStage(ctx, stageID, employer.ID))

	detail, err := applicationsService.Get(ctx, appID)
	require.NoError(t, err)
	assert.Nil(t, detail.Application.StageID)

	view, err := applicationsService.ListByJob(ctx, job.ID, employer.ID,
		repositories.ApplicationFilter{}, repositories.SortNewest)
	require.NoError(t, err)
	require.Len(t, view.Intake, 1)
	assert.Equal(t, appID, view.Intake[0].ID)
}

func Test_DeleteStage_SystemStageIsProtected(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	applicant := seedUser(t, models.RoleApplicant)

	appID, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)
	require.NoError(t, transitionsService.Hire(ctx, appID, employer.ID))

	detail, err := applicationsService.Get(ctx, appID)
	require.NoError(t, err)
	require.NotNil(t, detail.Application.StageID)

	err = stagesService.DeleteStage(ctx, *detail.Application.StageID, employer.ID)
	assert.ErrorIs(t, err, apperrors.ErrSystemStage)

	err = stagesService.RenameStage(ctx, *detail.Application.StageID, employer.ID, "Won")
	assert.ErrorIs(t, err, apperrors.ErrSystemStage)
}

func Test_AddStage_DuplicateNamePerJobIsRejected(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)

	_, err := stagesService.AddStage(ctx, job.ID, employer.ID, "Screening")
	require.NoError(t, err)

	_, err = stagesService.AddStage(ctx, job.ID, employer.ID, "Screening")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func Test_SetRating_EnforcesBounds(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	applicant := seedUser(t, models.RoleApplicant)

	appID, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	assert.ErrorIs(t, applicationsService.SetRating(ctx, appID, employer.ID, 0), apperrors.ErrValidation)
	assert.ErrorIs(t, applicationsService.SetRating(ctx, appID, employer.ID, 6), apperrors.ErrValidation)

	require.NoError(t, applicationsService.SetRating(ctx, appID, employer.ID, 4))

	detail, err := applicationsService.Get(ctx, appID)
	require.NoError(t, err)
	require.NotNil(t, detail.Application.Rating)
	assert.Equal(t, 4, *detail.Application.Rating)
}

func Test_ToggleSaved_RoundTrip(t *testing.T) {
	ctx := context.Background()
	employer, job := seedActiveJob(t)
	applicant := seedUser(t, models.RoleApplicant)

	appID, err := applicationsService.Submit(ctx, applicant.ID, job.ID, "")
	require.NoError(t, err)

	saved, err := applicationsService.ToggleSaved(ctx, employer.ID, appID, "strong resume")
	require.NoError(t, err)
	assert.True(t, saved)

	list, err := applicationsService.ListSaved(ctx, employer.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, appID, list[0].ApplicationID)

	saved, err = applicationsService.ToggleSaved(ctx, employer.ID, appID, "")
	require.NoError(t, err)
	assert.False(t, saved)

	list, err = applicationsService.ListSaved(ctx, employer.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
