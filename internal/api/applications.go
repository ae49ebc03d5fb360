package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/jobconnect/pipeline/internal/repositories"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

type submitApplicationRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) submitApplication(c *gin.Context) {
	jobID, ok := pathID(c)
	if !ok {
		return
	}

	var req submitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	id, err := s.applications.Submit(c.Request.Context(), actorID(c), jobID, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) listPipeline(c *gin.Context) {
	jobID, ok := pathID(c)
	if !ok {
		return
	}

	filter := repositories.ApplicationFilter{
		EducationLevel: c.Query("education_level"),
	}
	if raw := c.Query("min_experience"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.MinExperience = &v
		}
	}
	if raw := c.Query("max_experience"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.MaxExperience = &v
		}
	}

	view, err := s.applications.ListByJob(c.Request.Context(), jobID, actorID(c),
		filter, repositories.ApplicationSort(c.Query("sort")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPipelineResponse(view))
}

func (s *Server) listOwnApplications(c *gin.Context) {
	apps, err := s.applications.ListByApplicant(c.Request.Context(), actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": lo.Map(apps,
		func(app models.Application, _ int) applicationResponse { return toApplicationResponse(app) })})
}

func (s *Server) getApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := s.applications.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	actor := actorID(c)
	if detail.Application.ApplicantID != actor && detail.Job.EmployerID != actor &&
		!actorRole(c).Is(models.RoleAdmin) {
		writeError(c, errors.Wrap(apperrors.ErrForbidden, "application belongs to another user"))
		return
	}
	c.JSON(http.StatusOK, toApplicationDetailResponse(detail))
}

type moveApplicationRequest struct {
	StageID *int64 `json:"stage_id"`
}

func (s *Server) moveApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req moveApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	stage, err := s.transitions.Move(c.Request.Context(), id, actorID(c), req.StageID)
	if err != nil {
		writeError(c, err)
		return
	}
	if stage == nil {
		c.JSON(http.StatusOK, gin.H{"stage": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stage": toStageResponse(*stage)})
}

func (s *Server) hireApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.transitions.Hire(c.Request.Context(), id, actorID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(models.StatusHired)})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) setApplicationStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	status, err := models.ToApplicationStatus(req.Status)
	if err != nil {
		writeError(c, errors.Wrap(apperrors.ErrValidation, err.Error()))
		return
	}

	if err := s.transitions.SetStatus(c.Request.Context(), id, actorID(c), status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(status)})
}

type rateApplicationRequest struct {
	Rating int `json:"rating" binding:"required"`
}

func (s *Server) rateApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req rateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.applications.SetRating(c.Request.Context(), id, actorID(c), req.Rating); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": req.Rating})
}

type saveCandidateRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) toggleSavedCandidate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req saveCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	saved, err := s.applications.ToggleSaved(c.Request.Context(), actorID(c), id, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (s *Server) listSavedCandidates(c *gin.Context) {
	saved, err := s.applications.ListSaved(c.Request.Context(), actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": lo.Map(saved,
		func(sc models.SavedCandidate, _ int) savedCandidateResponse { return toSavedCandidateResponse(sc) })})
}
