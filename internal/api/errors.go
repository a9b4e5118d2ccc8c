package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/service"
	"github.com/skillswap-api/internal/validation"
)

// respondError maps service errors to status codes and a JSON error body
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"details": verrs,
		})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrBanned):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotPending):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoMatchingSkills),
		errors.Is(err, service.ErrInvalidSkill),
		errors.Is(err, service.ErrUnknownUser):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrUnsupportedFormat),
		errors.Is(err, service.ErrUnknownReport):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
