package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/logger"
	log "github.com/sirupsen/logrus"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidActor), errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrIllegalTransition),
		errors.Is(err, apperrors.ErrSystemStage),
		errors.Is(err, apperrors.ErrCrossJob):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrJobUnavailable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeApi).
			Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
