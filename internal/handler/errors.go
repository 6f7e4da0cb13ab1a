package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-import/internal/enrichment"
	"catalog-import/internal/logger"
	"catalog-import/internal/middleware"
	"catalog-import/internal/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string      `json:"error"`
	Progress interface{} `json:"progress,omitempty"`
}

// StatusFor maps a service error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrJobNotFound), errors.Is(err, service.ErrDraftNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrJobNotActive), errors.Is(err, service.ErrNoArchive), errors.Is(err, service.ErrDraftTerminal):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrArchiveUnreadable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, enrichment.ErrProviderUnavailable), errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError maps a service error to its HTTP status. Progress, when given, is
// included so callers see what a partial batch achieved.
func respondError(c *gin.Context, err error, progress interface{}) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.WithRequestID(middleware.GetRequestID(c)).Error("Request failed",
			"path", c.FullPath(), "error", err)
		message = "internal error"
	}
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", RetryAfterSeconds)
	}
	c.JSON(status, ErrorResponse{Error: message, Progress: progress})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}
