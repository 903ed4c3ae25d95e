package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/erp-client/internal/api/middleware"
	"github.com/unifiedui/erp-client/internal/domain/errors"
	"github.com/unifiedui/erp-client/internal/services/auth"
)

// maxProxyBody caps request bodies forwarded upstream.
const maxProxyBody = 1 << 20

// ProxyHandler forwards /api/* calls to the backend through the session
// manager, so they pick up the bearer token and the refresh-and-retry.
type ProxyHandler struct {
	doer    auth.Doer
	timeout time.Duration
}

// NewProxyHandler creates a ProxyHandler. A positive timeout bounds each
// forwarded call, refresh included.
func NewProxyHandler(doer auth.Doer, timeout time.Duration) *ProxyHandler {
	return &ProxyHandler{doer: doer, timeout: timeout}
}

// Forward handles ANY /api/*path
// @Summary Authorized backend call
// @Description Forwards the request to the backend API with the session's bearer token. JSON bodies only. A rejected refresh yields 401 SESSION_EXPIRED.
// @Tags Proxy
// @Accept json
// @Produce json
// @Param path path string true "Backend path below /api/v1"
// @Success 200 {object} object
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/{path} [get]
// @Router /api/{path} [post]
// @Router /api/{path} [put]
// @Router /api/{path} [patch]
// @Router /api/{path} [delete]
func (h *ProxyHandler) Forward(c *gin.Context) {
	path := c.Param("path")
	if c.Request.URL.RawQuery != "" {
		path += "?" + c.Request.URL.RawQuery
	}

	req := &auth.Request{
		Method: c.Request.Method,
		Path:   path,
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProxyBody+1))
	if err != nil {
		middleware.HandleError(c, errors.NewValidationError("failed to read request body", err.Error()))
		return
	}
	if len(payload) > maxProxyBody {
		middleware.HandleError(c, errors.NewValidationError("request body too large", ""))
		return
	}
	if len(payload) > 0 {
		if !json.Valid(payload) {
			middleware.HandleError(c, errors.NewValidationError("request body must be JSON", ""))
			return
		}
		req.Body = json.RawMessage(payload)
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	var out json.RawMessage
	if err := h.doer.AuthorizedRequest(ctx, req, &out); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if len(out) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}
