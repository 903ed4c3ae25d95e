package dto

import "github.com/unifiedui/erp-client/internal/domain/models"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// SessionResponse describes the current session.
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *models.User `json:"user,omitempty"`
}

// SendChatResponse is returned by POST /chat/send.
// ConversationID is set only for a blocking send that started a new conversation.
type SendChatResponse struct {
	ConversationID string          `json:"conversationId,omitempty"`
	Snapshot       models.Snapshot `json:"snapshot"`
}

// ListTranscriptsResponse is returned by GET /transcripts.
type ListTranscriptsResponse struct {
	Transcripts []*models.Transcript `json:"transcripts"`
	Limit       int64                `json:"limit"`
	Skip        int64                `json:"skip"`
}
