// Package middleware provides HTTP middleware for the gateway.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/unifiedui/erp-client/internal/domain/errors"
)

// StatusClientClosedRequest is reported when the caller went away mid-request.
const StatusClientClosedRequest = 499

// ErrorMiddleware handles panic recovery.
type ErrorMiddleware struct{}

// NewErrorMiddleware creates a new ErrorMiddleware.
func NewErrorMiddleware() *ErrorMiddleware {
	return &ErrorMiddleware{}
}

// Recovery returns a gin middleware that recovers from panics.
func (m *ErrorMiddleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetRequestLogger(c)
				logger.Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Code:      domainerrors.ErrCodeInternal,
					Message:   "internal server error",
					RequestID: GetRequestID(c),
				})
			}
		}()
		c.Next()
	}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// HandleError maps err onto an HTTP response.
// Domain errors keep their status; a session-expired error is always a 401
// so callers know to log in again.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := GetRequestID(c)

	if domainErr, ok := domainerrors.GetDomainError(err); ok {
		status := domainErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if domainErr.Code == domainerrors.ErrCodeSessionExpired {
			status = http.StatusUnauthorized
		}
		c.AbortWithStatusJSON(status, ErrorResponse{
			Code:      domainErr.Code,
			Message:   domainErr.Message,
			Details:   domainErr.Details,
			RequestID: requestID,
		})
		return
	}

	if errors.Is(err, context.Canceled) {
		c.AbortWithStatus(StatusClientClosedRequest)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, ErrorResponse{
			Code:      domainerrors.ErrCodeNetwork,
			Message:   "upstream request timed out",
			RequestID: requestID,
		})
		return
	}

	logger := GetRequestLogger(c)
	logger.Error().Err(err).Msg("unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Code:      domainerrors.ErrCodeInternal,
		Message:   "internal server error",
		RequestID: requestID,
	})
}

// NotFound returns a 404 handler.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:      "NOT_FOUND",
			Message:   "resource not found",
			Details:   c.Request.URL.Path,
			RequestID: GetRequestID(c),
		})
	}
}

// MethodNotAllowed returns a 405 handler.
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
			Code:      "METHOD_NOT_ALLOWED",
			Message:   "method not allowed",
			Details:   c.Request.Method,
			RequestID: GetRequestID(c),
		})
	}
}
