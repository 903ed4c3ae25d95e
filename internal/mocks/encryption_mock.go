package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockEncryptor is a mock implementation of encryption.Encryptor.
type MockEncryptor struct {
	mock.Mock
}

// Seal encrypts plaintext.
func (m *MockEncryptor) Seal(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

// Open decrypts a sealed value.
func (m *MockEncryptor) Open(sealed string) (string, error) {
	args := m.Called(sealed)
	return args.String(0), args.Error(1)
}
