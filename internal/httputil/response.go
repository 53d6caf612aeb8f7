// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/fieldvault/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

type errorMapping struct {
	status int
	// message replaces the error text; empty means the error text is returned.
	message string
}

var errorMappings = map[string]errorMapping{
	apperrors.CodeNotFound:     {http.StatusNotFound, "The requested resource was not found"},
	apperrors.CodeConflict:     {http.StatusConflict, "A conflict occurred with existing data"},
	apperrors.CodeInvalidInput: {http.StatusUnprocessableEntity, ""},
	apperrors.CodeUnavailable:  {http.StatusInternalServerError, "A required component is not available"},
	apperrors.CodeInternal:     {http.StatusInternalServerError, "An internal error occurred"},
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON error.
// Crypto failures map to internal_error and their cause is logged, never returned.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	code := apperrors.Code(err)
	mapping := errorMappings[code]

	errorResponse := ErrorResponse{
		Error:   code,
		Message: mapping.message,
	}
	if errorResponse.Message == "" {
		errorResponse.Message = err.Error()
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", mapping.status),
			slog.String("error_code", code),
			slog.Any("error", err),
		)
	}

	c.JSON(mapping.status, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, http.StatusBadRequest, "bad_request", err, logger)
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for
// malformed path or query parameters and failed request validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, http.StatusUnprocessableEntity, "validation_error", err, logger)
}

func writeClientError(c *gin.Context, status int, code string, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("client error",
			slog.Int("status_code", status),
			slog.String("error_code", code),
			slog.Any("error", err),
		)
	}

	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}
