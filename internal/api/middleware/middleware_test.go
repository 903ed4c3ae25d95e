package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/erp-client/internal/api/middleware"
	domainerrors "github.com/unifiedui/erp-client/internal/domain/errors"
)

func newRouter(logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logging := middleware.NewLoggingMiddlewareWithLogger(logger)
	router.Use(logging.RequestLogger(), logging.Logger(), middleware.NewErrorMiddleware().Recovery())
	return router
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        domainerrors.NewValidationError("bad input", "field x"),
			wantStatus: http.StatusBadRequest,
			wantCode:   domainerrors.ErrCodeValidation,
		},
		{
			name:       "wrapped session expired",
			err:        fmt.Errorf("listing orders: %w", domainerrors.NewSessionExpiredError()),
			wantStatus: http.StatusUnauthorized,
			wantCode:   domainerrors.ErrCodeSessionExpired,
		},
		{
			name:       "decode",
			err:        domainerrors.NewDecodeError(assert.AnError),
			wantStatus: http.StatusBadGateway,
			wantCode:   domainerrors.ErrCodeDecode,
		},
		{
			name:       "deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   domainerrors.ErrCodeNetwork,
		},
		{
			name:       "unknown",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   domainerrors.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(zerolog.Nop())
			router.GET("/", func(c *gin.Context) { middleware.HandleError(c, tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, tt.wantStatus, w.Code)
			var response middleware.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantCode, response.Code)
			assert.NotEmpty(t, response.RequestID)
			assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), response.RequestID)
		})
	}
}

func TestHandleError_ClientGone(t *testing.T) {
	router := newRouter(zerolog.Nop())
	router.GET("/", func(c *gin.Context) { middleware.HandleError(c, context.Canceled) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, middleware.StatusClientClosedRequest, w.Code)
}

func TestRecovery(t *testing.T) {
	router := newRouter(zerolog.Nop())
	router.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.ErrCodeInternal)
}

func TestRequestLogger_HonorsIncomingID(t *testing.T) {
	var buf bytes.Buffer
	router := newRouter(zerolog.New(&buf))
	router.GET("/", func(c *gin.Context) {
		assert.Equal(t, "req-123", middleware.GetRequestID(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "request completed", entry["message"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()))
	router.GET("/chat/state", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/chat/state", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Conversation-ID")
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/chat/state", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
