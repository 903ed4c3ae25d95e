package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/erp-client/internal/domain/models"
)

// MockRecorder is a mock implementation of chat.Recorder.
type MockRecorder struct {
	mock.Mock
}

// Record archives a transcript.
func (m *MockRecorder) Record(ctx context.Context, transcript *models.Transcript) error {
	args := m.Called(ctx, transcript)
	return args.Error(0)
}

// MockIdentity is a mock implementation of chat.Identity.
type MockIdentity struct {
	mock.Mock
}

// CurrentUser returns the configured user.
func (m *MockIdentity) CurrentUser() *models.User {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.User)
}
