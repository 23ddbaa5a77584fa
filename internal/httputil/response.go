// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorMapping binds a domain sentinel to its status and fallback message.
type errorMapping struct {
	sentinel error
	status   int
	fallback string
}

// Order matters: the first sentinel found in the chain wins.
var errorMappings = []errorMapping{
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "Authentication required"},
	{apperrors.ErrForbidden, http.StatusForbidden, "Access denied"},
	{apperrors.ErrNotFound, http.StatusNotFound, "Resource not found"},
	{apperrors.ErrConflict, http.StatusBadRequest, "Resource already exists"},
	{apperrors.ErrInvalidInput, http.StatusBadRequest, "Invalid request"},
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON body of
// the form {"error": "<message>"}. Only the message of the domain error is exposed;
// unknown errors become a generic 500.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	for _, m := range errorMappings {
		if !apperrors.Is(err, m.sentinel) {
			continue
		}
		statusCode = m.status
		message = apperrors.PublicMessage(err, m.sentinel)
		if message == m.sentinel.Error() {
			message = m.fallback
		}
		break
	}

	if logger != nil {
		attrs := []any{
			slog.Int("status_code", statusCode),
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		}
		if statusCode >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Debug("request rejected", attrs...)
		}
	}

	c.JSON(statusCode, ErrorResponse{Error: message})
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
}

// HandleValidationErrorGin writes a 400 Bad Request response carrying the
// validation message.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	message := err.Error()
	if apperrors.Is(err, apperrors.ErrInvalidInput) {
		message = apperrors.PublicMessage(err, apperrors.ErrInvalidInput)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}
