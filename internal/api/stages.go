package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/samber/lo"
)

type stageRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) listStages(c *gin.Context) {
	jobID, ok := pathID(c)
	if !ok {
		return
	}

	list, err := s.stages.ListStages(c.Request.Context(), jobID, actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"system": lo.Map(list.System, func(st models.Stage, _ int) stageResponse { return toStageResponse(st) }),
		"custom": lo.Map(list.Custom, func(st models.Stage, _ int) stageResponse { return toStageResponse(st) }),
	})
}

func (s *Server) addStage(c *gin.Context) {
	jobID, ok := pathID(c)
	if !ok {
		return
	}

	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	id, err := s.stages.AddStage(c.Request.Context(), jobID, actorID(c), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) renameStage(c *gin.Context) {
	stageID, ok := pathID(c)
	if !ok {
		return
	}

	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.stages.RenameStage(c.Request.Context(), stageID, actorID(c), req.Name); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": stageID})
}

func (s *Server) deleteStage(c *gin.Context) {
	stageID, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.stages.DeleteStage(c.Request.Context(), stageID, actorID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
