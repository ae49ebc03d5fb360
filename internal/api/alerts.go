package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/jobconnect/pipeline/internal/services"
	"github.com/samber/lo"
)

type alertRequest struct {
	AlertName        string   `json:"alert_name"`
	JobTitle         string   `json:"job_title"`
	Location         string   `json:"location"`
	EmploymentTypeID *int64   `json:"employment_type_id"`
	CategoryID       *int64   `json:"category_id"`
	MinSalary        *float64 `json:"min_salary"`
	MaxSalary        *float64 `json:"max_salary"`
	Keywords         []string `json:"keywords"`
	IsActive         *bool    `json:"is_active"`
}

func (r alertRequest) toInput() services.AlertInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return services.AlertInput{
		AlertName:        r.AlertName,
		JobTitle:         r.JobTitle,
		Location:         r.Location,
		EmploymentTypeID: r.EmploymentTypeID,
		CategoryID:       r.CategoryID,
		MinSalary:        r.MinSalary,
		MaxSalary:        r.MaxSalary,
		Keywords:         strings.Join(r.Keywords, ","),
		IsActive:         active,
	}
}

func (s *Server) listAlerts(c *gin.Context) {
	alerts, err := s.alerts.ListAlerts(c.Request.Context(), actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": lo.Map(alerts,
		func(a models.JobAlert, _ int) alertResponse { return toAlertResponse(a) })})
}

func (s *Server) createAlert(c *gin.Context) {
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	alert, err := s.alerts.CreateAlert(c.Request.Context(), actorID(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAlertResponse(*alert))
}

func (s *Server) editAlert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	alert, err := s.alerts.EditAlert(c.Request.Context(), id, actorID(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAlertResponse(*alert))
}

func (s *Server) deleteAlert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.alerts.DeleteAlert(c.Request.Context(), id, actorID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) toggleAlert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	alert, err := s.alerts.ToggleAlert(c.Request.Context(), id, actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAlertResponse(*alert))
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit = 20
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

func (s *Server) listAlertMatches(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	limit, offset := pageParams(c)
	jobs, err := s.alerts.MatchesForAlert(c.Request.Context(), id, actorID(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": lo.Map(jobs,
		func(j models.Job, _ int) jobResponse { return toJobResponse(j) })})
}

func (s *Server) listAllMatches(c *gin.Context) {
	limit, offset := pageParams(c)
	jobs, err := s.alerts.MatchesForUser(c.Request.Context(), actorID(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": lo.Map(jobs,
		func(j models.Job, _ int) jobResponse { return toJobResponse(j) })})
}
