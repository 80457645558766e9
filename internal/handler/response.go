package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmock/internal/fixture"
	"tripmock/internal/middleware"
	"tripmock/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	status, code := mapError(err)
	c.JSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapError maps service/fixture errors to an HTTP status code and error code.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMalformedFixture),
		errors.Is(err, fixture.ErrInvalidDocument):
		return http.StatusInternalServerError, "malformed_fixture"

	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
