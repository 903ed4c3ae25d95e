// Package dto provides Data Transfer Objects for gateway requests and responses.
package dto

// LoginRequest is the body of POST /session/login.
// Both fields empty means "use the vault credentials".
type LoginRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password"`
}

// SendChatRequest is the body of POST /chat/send.
type SendChatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message" binding:"required,min=1,max=32000"`
	// Wait blocks the request until the stream is terminal.
	Wait bool `json:"wait"`
}

// ListTranscriptsRequest holds the query parameters of GET /transcripts.
type ListTranscriptsRequest struct {
	ConversationID string `form:"conversationId"`
	UserEmail      string `form:"userEmail"`
	Limit          int64  `form:"limit" binding:"omitempty,min=1,max=100"`
	Skip           int64  `form:"skip" binding:"omitempty,min=0"`
	Order          string `form:"order" binding:"omitempty,oneof=asc desc"`
}
