package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCredentialStore is a mock implementation of credentials.Store.
type MockCredentialStore struct {
	mock.Mock
}

// RefreshToken returns the persisted token.
func (m *MockCredentialStore) RefreshToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// SaveRefreshToken persists a token.
func (m *MockCredentialStore) SaveRefreshToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// ClearRefreshToken removes the persisted token.
func (m *MockCredentialStore) ClearRefreshToken(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
