package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/models"
	"match-service/pkg/apperr"
)

// respondError maps the error taxonomy onto HTTP statuses. Persistence
// failures become a generic 400, matching the "nothing was persisted,
// report failure, no retry" contract.
func respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.Validation, apperr.Persistence:
		status = http.StatusBadRequest
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Authorization:
		status = http.StatusForbidden
	}

	c.JSON(status, models.ErrorResponse{
		Code:    status,
		Message: apperr.MessageOf(err, fallback),
	})
}
