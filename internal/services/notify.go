package services

import (
	"fmt"

	"github.com/jobconnect/pipeline/internal/domain/models"
)

// Notification wording matches what the marketplace has always sent;
// applicants and employers see these strings verbatim.

func newApplicationReceivedNotification(employerID int64, applicantName string, job *models.Job, applicationID int64) *models.Notification {
	return &models.Notification{
		UserID:               employerID,
		Kind:                 models.NotificationReceived,
		Title:                "New Application Received",
		Message:              fmt.Sprintf("%s applied for %s", applicantName, job.Title),
		Link:                 fmt.Sprintf("/dashboard/employer/jobs/%d/applications/", job.ID),
		RelatedJobID:         &job.ID,
		RelatedApplicationID: &applicationID,
	}
}

func newShortlistNotification(applicantID int64, job *models.Job, applicationID int64) *models.Notification {
	return &models.Notification{
		UserID:               applicantID,
		Kind:                 models.NotificationShortlist,
		Title:                "Application Shortlisted!",
		Message:              fmt.Sprintf("Great news! You have been shortlisted for %s", job.Title),
		Link:                 "/dashboard/applicant/applications/",
		RelatedJobID:         &job.ID,
		RelatedApplicationID: &applicationID,
	}
}

var statusMessages = map[models.ApplicationStatus]string{
	models.StatusReviewed:  "Your application is being reviewed",
	models.StatusInterview: "You have been invited for an interview",
	models.StatusRejected:  "Your application was not selected this time",
	models.StatusHired:     "Congratulations! You have been hired",
}

func statusNotificationKind(status models.ApplicationStatus) models.NotificationKind {
	switch status {
	case models.StatusRejected:
		return models.NotificationRejected
	case models.StatusHired:
		return models.NotificationHired
	default:
		return models.NotificationStatus
	}
}

func newStatusNotification(applicantID int64, job *models.Job, status models.ApplicationStatus) *models.Notification {
	message, ok := statusMessages[status]
	if !ok {
		message = fmt.Sprintf("Your application status changed to %s", status)
	}
	return &models.Notification{
		UserID:       applicantID,
		Kind:         statusNotificationKind(status),
		Title:        "Application Status Update",
		Message:      fmt.Sprintf("%s for %s", message, job.Title),
		Link:         "/dashboard/applicant/applications/",
		RelatedJobID: &job.ID,
	}
}

func newJobAlertNotification(userID int64, alertName string, job *models.Job) *models.Notification {
	return &models.Notification{
		UserID:       userID,
		Kind:         models.NotificationJobAlert,
		Title:        "New Job Match",
		Message:      fmt.Sprintf("A new job matching %q is available: %s", alertName, job.Title),
		Link:         fmt.Sprintf("/jobs/%d/", job.ID),
		RelatedJobID: &job.ID,
	}
}

func newJobPostedNotification(employerID int64, job *models.Job) *models.Notification {
	return &models.Notification{
		UserID:       employerID,
		Kind:         models.NotificationJobPosted,
		Title:        "Job Posted Successfully",
		Message:      fmt.Sprintf("Your job posting %q is now live", job.Title),
		Link:         fmt.Sprintf("/dashboard/employer/jobs/%d/", job.ID),
		RelatedJobID: &job.ID,
	}
}
