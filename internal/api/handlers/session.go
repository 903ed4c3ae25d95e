package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/erp-client/internal/api/dto"
	"github.com/unifiedui/erp-client/internal/api/middleware"
	"github.com/unifiedui/erp-client/internal/core/vault"
	"github.com/unifiedui/erp-client/internal/domain/errors"
	"github.com/unifiedui/erp-client/internal/domain/models"
)

// SessionService is the part of the session manager the gateway exposes.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	AccessToken() string
	CurrentUser() *models.User
}

// SessionHandler handles login, logout and session inspection.
type SessionHandler struct {
	session SessionService
	vault   vault.Vault
}

// NewSessionHandler creates a SessionHandler. v supplies login credentials
// when a login request carries none; it may be nil.
func NewSessionHandler(session SessionService, v vault.Vault) *SessionHandler {
	return &SessionHandler{
		session: session,
		vault:   v,
	}
}

// Login handles POST /session/login
// @Summary Log in
// @Description Exchanges credentials for a session. An empty body falls back to the configured login secrets.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest false "Credentials"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /session/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
			return
		}
	}

	if req.Email == "" && req.Password == "" && h.vault != nil {
		email, password, err := vault.LoginCredentials(ctx, h.vault)
		if err != nil {
			middleware.HandleError(c, errors.NewValidationError("credentials are required", err.Error()))
			return
		}
		req.Email, req.Password = email, password
	}
	if req.Email == "" || req.Password == "" {
		middleware.HandleError(c, errors.NewValidationError("credentials are required", "email and password must both be set"))
		return
	}

	user, err := h.session.Login(ctx, req.Email, req.Password)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Authenticated: true,
		User:          user,
	})
}

// Logout handles POST /session/logout
// @Summary Log out
// @Description Revokes the session upstream (best effort) and clears local tokens
// @Tags Session
// @Success 204
// @Failure 500 {object} dto.ErrorResponse
// @Router /session/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.session.Logout(c.Request.Context()); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get handles GET /session
// @Summary Current session
// @Description Reports whether an access token is held and who it belongs to
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SessionResponse{
		Authenticated: h.session.AccessToken() != "",
		User:          h.session.CurrentUser(),
	})
}
