package errors_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/unifiedui/erp-client/internal/domain/errors"
)

func TestNewAPIError(t *testing.T) {
	err := domainerrors.NewAPIError(http.StatusConflict, `{"error":"duplicate"}`)

	assert.Equal(t, domainerrors.ErrCodeAPI, err.Code)
	assert.Equal(t, http.StatusConflict, err.Status())
	assert.Equal(t, `{"error":"duplicate"}`, err.Body())
	assert.True(t, domainerrors.IsAPIError(err))
	assert.False(t, domainerrors.IsSessionExpired(err))
	assert.Contains(t, err.Error(), "API error 409")
}

func TestNewSessionExpiredError(t *testing.T) {
	err := domainerrors.NewSessionExpiredError()

	assert.True(t, domainerrors.IsSessionExpired(err))
	assert.True(t, domainerrors.IsAPIError(err))
	assert.Equal(t, http.StatusUnauthorized, err.Status())
	assert.Equal(t, domainerrors.SessionExpiredBody, err.Body())
	assert.Equal(t, http.StatusUnauthorized, domainerrors.StatusOf(err))
}

func TestNewNetworkError_Unwraps(t *testing.T) {
	err := domainerrors.NewNetworkError("request", context.DeadlineExceeded)

	assert.True(t, domainerrors.IsNetworkError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, domainerrors.StatusOf(err))
}

func TestGetDomainError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading invoices: %w", domainerrors.NewDecodeError(fmt.Errorf("unexpected EOF")))

	domainErr, ok := domainerrors.GetDomainError(wrapped)
	require.True(t, ok)
	assert.Equal(t, domainerrors.ErrCodeDecode, domainErr.Code)
	assert.True(t, domainerrors.IsDecodeError(wrapped))
	assert.Contains(t, domainErr.Error(), "unexpected EOF")
}

func TestGetDomainError_PlainError(t *testing.T) {
	_, ok := domainerrors.GetDomainError(fmt.Errorf("plain"))
	assert.False(t, ok)
	assert.False(t, domainerrors.IsDomainError(fmt.Errorf("plain")))
	assert.False(t, domainerrors.IsStreamError(nil))
}
