package auth

import (
	"context"
	"fmt"

	"github.com/unifiedui/erp-client/internal/domain/models"
)

const refreshKey = "refresh"

// Refresh exchanges the persisted refresh token for a new pair. Concurrent
// callers share a single in-flight exchange. Returns false when no refresh
// token is stored or the exchange fails for any reason.
func (m *Manager) Refresh(ctx context.Context) bool {
	ok, err := m.coalescedRefresh(ctx, "")
	return err == nil && ok
}

// refreshAfter refreshes on behalf of a request that was rejected while
// carrying staleToken. If the session has already moved past staleToken the
// refresh is skipped. The error is non-nil only when ctx ends first.
func (m *Manager) refreshAfter(ctx context.Context, staleToken string) (bool, error) {
	current := m.AccessToken()
	if current == "" {
		return false, nil
	}
	if current != staleToken {
		return true, nil
	}
	return m.coalescedRefresh(ctx, staleToken)
}

func (m *Manager) coalescedRefresh(ctx context.Context, staleToken string) (bool, error) {
	ch := m.refreshGroup.DoChan(refreshKey, func() (any, error) {
		// A caller that raced a just-finished rotation starts a new flight;
		// the new token already answers it.
		if staleToken != "" {
			if current := m.AccessToken(); current != "" && current != staleToken {
				return true, nil
			}
		}
		ok := m.refresh(ctx)
		if !ok && staleToken != "" {
			// Cleared before the flight settles so a later 401 cannot find
			// the rejected refresh token and start another exchange.
			m.expire(ctx, staleToken)
		}
		return ok, nil
	})

	select {
	case res := <-ch:
		ok, _ := res.Val.(bool)
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// expire clears the session unless it has moved past staleToken meanwhile,
// for example through a new login.
func (m *Manager) expire(ctx context.Context, staleToken string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.accessToken != staleToken {
		return
	}
	m.logger.Info().Msg("session expired")
	if err := m.clearLocked(ctx); err != nil {
		m.logger.Warn().Err(err).Msg("session expired but local state could not be fully cleared")
	}
}

// refresh performs the exchange. Its result is shared between callers, so it
// runs under its own timeout instead of the first caller's cancellation.
func (m *Manager) refresh(parent context.Context) bool {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), m.refreshTimeout)
	defer cancel()

	token, err := m.creds.RefreshToken(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("failed to read refresh token")
		return false
	}
	if token == "" {
		return false
	}

	var pair models.TokenPair
	if err := m.postJSON(ctx, "/auth/refresh", "", models.RefreshRequest{RefreshToken: token}, &pair); err != nil {
		m.logger.Warn().Err(err).Msg("token refresh failed")
		return false
	}
	if !pair.Valid() {
		m.logger.Warn().Msg("token refresh returned an incomplete pair")
		return false
	}

	if err := m.rotate(ctx, &pair); err != nil {
		m.logger.Error().Err(err).Msg("failed to persist rotated refresh token")
		return false
	}

	m.logger.Debug().Int64("expires_in", pair.ExpiresIn).Msg("tokens rotated")
	return true
}

// rotate installs a new pair. The refresh token is persisted first; the
// access token only changes once persistence succeeded.
func (m *Manager) rotate(ctx context.Context, pair *models.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.creds.SaveRefreshToken(ctx, pair.RefreshToken); err != nil {
		return fmt.Errorf("rotate tokens: %w", err)
	}
	m.accessToken = pair.AccessToken
	m.user = userFromToken(pair.AccessToken)
	return nil
}
