package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/erp-client/internal/core/docdb"
	"github.com/unifiedui/erp-client/internal/domain/models"
)

// MockTranscriptsCollection is a mock implementation of docdb.TranscriptsCollection.
type MockTranscriptsCollection struct {
	mock.Mock
}

// Record inserts a transcript.
func (m *MockTranscriptsCollection) Record(ctx context.Context, transcript *models.Transcript) error {
	args := m.Called(ctx, transcript)
	return args.Error(0)
}

// Get returns a transcript by ID.
func (m *MockTranscriptsCollection) Get(ctx context.Context, id string) (*models.Transcript, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transcript), args.Error(1)
}

// List returns transcripts matching opts.
func (m *MockTranscriptsCollection) List(ctx context.Context, opts *docdb.ListTranscriptsOptions) ([]*models.Transcript, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transcript), args.Error(1)
}

// DeleteByConversation removes the transcripts of a conversation.
func (m *MockTranscriptsCollection) DeleteByConversation(ctx context.Context, conversationID string) (int64, error) {
	args := m.Called(ctx, conversationID)
	return args.Get(0).(int64), args.Error(1)
}

// EnsureIndexes creates indexes.
func (m *MockTranscriptsCollection) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDocDBClient is a mock implementation of docdb.Client.
type MockDocDBClient struct {
	mock.Mock
	TranscriptsCollection *MockTranscriptsCollection
}

// NewMockDocDBClient creates a new MockDocDBClient.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{
		TranscriptsCollection: &MockTranscriptsCollection{},
	}
}

// Transcripts returns the transcripts collection.
func (m *MockDocDBClient) Transcripts() docdb.TranscriptsCollection {
	return m.TranscriptsCollection
}

// EnsureIndexes creates indexes.
func (m *MockDocDBClient) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ping verifies the connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
