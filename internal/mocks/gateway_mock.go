package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/erp-client/internal/domain/models"
	"github.com/unifiedui/erp-client/internal/services/auth"
)

// MockSessionService is a mock implementation of handlers.SessionService.
type MockSessionService struct {
	mock.Mock
}

// Login exchanges credentials for a session.
func (m *MockSessionService) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Logout ends the session.
func (m *MockSessionService) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// AccessToken returns the configured token.
func (m *MockSessionService) AccessToken() string {
	args := m.Called()
	return args.String(0)
}

// CurrentUser returns the configured user.
func (m *MockSessionService) CurrentUser() *models.User {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.User)
}

// MockChatService is a mock implementation of handlers.ChatService.
type MockChatService struct {
	mock.Mock
}

// Send starts a stream.
func (m *MockChatService) Send(ctx context.Context, conversationID, message string) string {
	args := m.Called(ctx, conversationID, message)
	return args.String(0)
}

// Start begins a stream in the background.
func (m *MockChatService) Start(ctx context.Context, conversationID, message string) models.Snapshot {
	args := m.Called(ctx, conversationID, message)
	return args.Get(0).(models.Snapshot)
}

// Abort cancels the stream.
func (m *MockChatService) Abort() {
	m.Called()
}

// Snapshot returns the configured snapshot.
func (m *MockChatService) Snapshot() models.Snapshot {
	args := m.Called()
	return args.Get(0).(models.Snapshot)
}

// Subscribe returns the configured channel.
func (m *MockChatService) Subscribe(ctx context.Context) <-chan models.Snapshot {
	args := m.Called(ctx)
	return args.Get(0).(<-chan models.Snapshot)
}

// MockDoer is a mock implementation of auth.Doer.
// Set Run on the expectation to fill out.
type MockDoer struct {
	mock.Mock
}

// AuthorizedRequest performs a request.
func (m *MockDoer) AuthorizedRequest(ctx context.Context, req *auth.Request, out any) error {
	args := m.Called(ctx, req, out)
	return args.Error(0)
}
