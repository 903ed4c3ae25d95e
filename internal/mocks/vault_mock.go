package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockVault is a mock implementation of vault.Vault.
type MockVault struct {
	mock.Mock
}

// GetSecret retrieves a secret.
func (m *MockVault) GetSecret(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

// SetSecret stores a secret.
func (m *MockVault) SetSecret(ctx context.Context, name string, value string) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

// DeleteSecret deletes a secret.
func (m *MockVault) DeleteSecret(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// Ping checks the vault.
func (m *MockVault) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the vault.
func (m *MockVault) Close() error {
	args := m.Called()
	return args.Error(0)
}
