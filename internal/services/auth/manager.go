// Package auth implements the session manager: it owns the access token,
// persists the refresh token, and performs authorized requests with a single
// refresh-and-retry on 401.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	domainerrors "github.com/unifiedui/erp-client/internal/domain/errors"
	"github.com/unifiedui/erp-client/internal/domain/models"
	"github.com/unifiedui/erp-client/internal/services/credentials"
)

const (
	// APIPrefix is appended to the configured base URL.
	APIPrefix = "/api/v1"

	// DefaultRefreshTimeout bounds the token refresh call.
	DefaultRefreshTimeout = 10 * time.Second
)

// Config holds the configuration for the session manager.
type Config struct {
	// BaseURL is the backend origin, without the API prefix.
	BaseURL string
	// Credentials persists the refresh token.
	Credentials credentials.Store
	// HTTPClient defaults to a client without a global timeout, since chat
	// streams are unbounded. Per-call deadlines come from the context.
	HTTPClient     *http.Client
	RefreshTimeout time.Duration
	Logger         *zerolog.Logger
}

// Manager owns one client session.
type Manager struct {
	baseURL        string
	httpClient     *http.Client
	creds          credentials.Store
	refreshTimeout time.Duration
	logger         zerolog.Logger

	// mu guards accessToken and user. It is held for writing across the
	// persistence step of a rotation so readers never see a mixed pair.
	mu          sync.RWMutex
	accessToken string
	user        *models.User

	refreshGroup singleflight.Group
}

// NewManager creates a session manager with no tokens loaded. Call Restore
// to resume a persisted session.
func NewManager(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	refreshTimeout := cfg.RefreshTimeout
	if refreshTimeout <= 0 {
		refreshTimeout = DefaultRefreshTimeout
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Manager{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/") + APIPrefix,
		httpClient:     httpClient,
		creds:          cfg.Credentials,
		refreshTimeout: refreshTimeout,
		logger:         logger.With().Str("component", "auth").Logger(),
	}, nil
}

// SetAccessToken replaces the in-memory access token. An empty token clears it.
func (m *Manager) SetAccessToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accessToken = token
	m.user = userFromToken(token)
}

// AccessToken returns the in-memory access token, or "".
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accessToken
}

// Tokens returns the access token and persisted refresh token as one consistent pair.
func (m *Manager) Tokens(ctx context.Context) (models.Tokens, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	refresh, err := m.creds.RefreshToken(ctx)
	if err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: m.accessToken, RefreshToken: refresh}, nil
}

// CurrentUser returns the identity decoded from the access token, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil
	}
	u := *m.user
	u.Permissions = append([]string(nil), m.user.Permissions...)
	return &u
}

// Login exchanges credentials for a token pair and starts a session.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	var pair models.TokenPair
	if err := m.postJSON(ctx, "/auth/login", "", models.LoginRequest{Email: email, Password: password}, &pair); err != nil {
		return nil, err
	}
	if !pair.Valid() {
		return nil, domainerrors.NewDecodeError(fmt.Errorf("login response is missing tokens"))
	}

	if err := m.rotate(ctx, &pair); err != nil {
		return nil, domainerrors.NewInternalError("failed to persist session", err)
	}

	m.logger.Info().Msg("logged in")
	return m.CurrentUser(), nil
}

// Logout ends the session. Local state is cleared first; the server call is
// best-effort and bounded by the refresh timeout.
func (m *Manager) Logout(ctx context.Context) error {
	token := m.AccessToken()
	clearErr := m.clearSession(ctx)

	if token != "" {
		logoutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.refreshTimeout)
		defer cancel()
		if err := m.postJSON(logoutCtx, "/auth/logout", token, nil, nil); err != nil {
			m.logger.Debug().Err(err).Msg("server logout failed")
		}
	}

	if clearErr != nil {
		return clearErr
	}

	m.logger.Info().Msg("logged out")
	return nil
}

// Restore resumes a persisted session by refreshing. A refresh token that
// cannot be exchanged is removed. Returns whether a session is now active.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	refresh, err := m.creds.RefreshToken(ctx)
	if err != nil {
		return false, err
	}
	if refresh == "" {
		return false, nil
	}

	ok, err := m.coalescedRefresh(ctx, "")
	if err != nil {
		return false, err
	}
	if ok {
		m.logger.Info().Msg("session restored")
		return true, nil
	}

	m.logger.Info().Msg("stored session could not be restored")
	return false, m.clearSession(ctx)
}

// clearSession drops the access token and removes the persisted refresh token.
// It runs detached from ctx cancellation so a cancelled caller cannot leave a
// half-cleared session behind.
func (m *Manager) clearSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked(ctx)
}

// clearLocked is clearSession with mu already held for writing.
func (m *Manager) clearLocked(ctx context.Context) error {
	m.accessToken = ""
	m.user = nil

	if err := m.creds.ClearRefreshToken(context.WithoutCancel(ctx)); err != nil {
		m.logger.Error().Err(err).Msg("failed to remove persisted refresh token")
		return domainerrors.NewInternalError("failed to clear session", err)
	}
	return nil
}
