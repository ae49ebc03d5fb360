package api

import (
	"time"

	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/jobconnect/pipeline/internal/services"
	"github.com/samber/lo"
)

type applicationResponse struct {
	ID          int64      `json:"id"`
	ApplicantID int64      `json:"applicant_id"`
	JobID       int64      `json:"job_id"`
	Status      string     `json:"status"`
	StageID     *int64     `json:"stage_id"`
	Notes       string     `json:"notes,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	SubmittedAt time.Time  `json:"submitted_at"`
	HiredDate   *time.Time `json:"hired_date,omitempty"`
}

func toApplicationResponse(app models.Application) applicationResponse {
	return applicationResponse{
		ID:          app.ID,
		ApplicantID: app.ApplicantID,
		JobID:       app.JobID,
		Status:      string(app.Status),
		StageID:     app.StageID,
		Notes:       app.Notes,
		Rating:      app.Rating,
		SubmittedAt: app.SubmittedAt,
		HiredDate:   app.HiredDate,
	}
}

type applicationDetailResponse struct {
	Application applicationResponse `json:"application"`
	Applicant   userResponse        `json:"applicant"`
	Job         jobResponse         `json:"job"`
}

func toApplicationDetailResponse(detail *services.ApplicationDetail) applicationDetailResponse {
	return applicationDetailResponse{
		Application: toApplicationResponse(detail.Application),
		Applicant:   toUserResponse(detail.Applicant),
		Job:         toJobResponse(detail.Job),
	}
}

type userResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:         user.ID,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       string(user.Role),
		IsVerified: user.IsVerified,
	}
}

type jobResponse struct {
	ID             int64     `json:"id"`
	EmployerID     int64     `json:"employer_id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	MinSalary      *float64  `json:"min_salary,omitempty"`
	MaxSalary      *float64  `json:"max_salary,omitempty"`
	Status         string    `json:"status"`
	ExpirationDate time.Time `json:"expiration_date"`
	PostedAt       time.Time `json:"posted_at"`
}

func toJobResponse(job models.Job) jobResponse {
	return jobResponse{
		ID:             job.ID,
		EmployerID:     job.EmployerID,
		Title:          job.Title,
		Location:       job.Location,
		MinSalary:      job.MinSalary,
		MaxSalary:      job.MaxSalary,
		Status:         string(job.Status),
		ExpirationDate: job.ExpirationDate,
		PostedAt:       job.PostedAt,
	}
}

type stageResponse struct {
	ID        int64  `json:"id"`
	JobID     int64  `json:"job_id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	IsSystem  bool   `json:"is_system"`
}

func toStageResponse(stage models.Stage) stageResponse {
	return stageResponse{
		ID:        stage.ID,
		JobID:     stage.JobID,
		Name:      stage.Name,
		SortOrder: stage.SortOrder,
		IsSystem:  stage.IsSystem,
	}
}

type stageColumnResponse struct {
	Stage        stageResponse         `json:"stage"`
	Applications []applicationResponse `json:"applications"`
}

type pipelineResponse struct {
	Intake  []applicationResponse `json:"intake"`
	Columns []stageColumnResponse `json:"columns"`
}

func toPipelineResponse(view *services.PipelineView) pipelineResponse {
	return pipelineResponse{
		Intake: lo.Map(view.Intake, func(app models.Application, _ int) applicationResponse {
			return toApplicationResponse(app)
		}),
		Columns: lo.Map(view.Columns, func(col services.StageColumn, _ int) stageColumnResponse {
			return stageColumnResponse{
				Stage: toStageResponse(col.Stage),
				Applications: lo.Map(col.Applications, func(app models.Application, _ int) applicationResponse {
					return toApplicationResponse(app)
				}),
			}
		}),
	}
}

type notificationResponse struct {
	ID                   int64      `json:"id"`
	Kind                 string     `json:"kind"`
	Title                string     `json:"title"`
	Message              string     `json:"message"`
	Link                 string     `json:"link,omitempty"`
	IsRead               bool       `json:"is_read"`
	CreatedAt            time.Time  `json:"created_at"`
	ReadAt               *time.Time `json:"read_at,omitempty"`
	RelatedJobID         *int64     `json:"related_job_id,omitempty"`
	RelatedApplicationID *int64     `json:"related_application_id,omitempty"`
}

func toNotificationResponse(n models.Notification) notificationResponse {
	return notificationResponse{
		ID:                   n.ID,
		Kind:                 string(n.Kind),
		Title:                n.Title,
		Message:              n.Message,
		Link:                 n.Link,
		IsRead:               n.IsRead,
		CreatedAt:            n.CreatedAt,
		ReadAt:               n.ReadAt,
		RelatedJobID:         n.RelatedJobID,
		RelatedApplicationID: n.RelatedApplicationID,
	}
}

type alertResponse struct {
	ID               int64    `json:"id"`
	AlertName        string   `json:"alert_name"`
	JobTitle         string   `json:"job_title,omitempty"`
	Location         string   `json:"location,omitempty"`
	EmploymentTypeID *int64   `json:"employment_type_id,omitempty"`
	CategoryID       *int64   `json:"category_id,omitempty"`
	MinSalary        *float64 `json:"min_salary,omitempty"`
	MaxSalary        *float64 `json:"max_salary,omitempty"`
	Keywords         []string `json:"keywords"`
	IsActive         bool     `json:"is_active"`
}

func toAlertResponse(alert models.JobAlert) alertResponse {
	return alertResponse{
		ID:               alert.ID,
		AlertName:        alert.AlertName,
		JobTitle:         alert.JobTitle,
		Location:         alert.Location,
		EmploymentTypeID: alert.EmploymentTypeID,
		CategoryID:       alert.CategoryID,
		MinSalary:        alert.MinSalary,
		MaxSalary:        alert.MaxSalary,
		Keywords:         alert.KeywordsAsArray(),
		IsActive:         alert.IsActive,
	}
}

type savedCandidateResponse struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	Notes         string    `json:"notes,omitempty"`
	SavedAt       time.Time `json:"saved_at"`
}

func toSavedCandidateResponse(saved models.SavedCandidate) savedCandidateResponse {
	return savedCandidateResponse{
		ID:            saved.ID,
		ApplicationID: saved.ApplicationID,
		Notes:         saved.Notes,
		SavedAt:       saved.SavedAt,
	}
}
