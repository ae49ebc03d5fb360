package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) activateJob(c *gin.Context) {
	jobID, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.jobs.Activate(c.Request.Context(), jobID, actorID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "active"})
}
