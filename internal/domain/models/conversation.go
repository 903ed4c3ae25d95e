package models

import "time"

// MessageRole represents the role of a message sender.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
	RoleSystem    MessageRole = "system"
)

// ListResponse is the paginated envelope used by list endpoints.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// ToolCall is a tool invocation recorded on an assistant message.
type ToolCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
	Result    string `json:"result"`
}

// Message is a persisted chat message.
type Message struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversation_id"`
	Role           MessageRole `json:"role"`
	Content        string      `json:"content"`
	ToolCalls      []ToolCall  `json:"tool_calls,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Conversation is a chat thread owned by a user.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConversationWithMessages is a conversation with its message history.
type ConversationWithMessages struct {
	Conversation
	Messages []Message `json:"messages"`
}

// UpdateConversationRequest is the body of PATCH /agent/conversations/{id}.
type UpdateConversationRequest struct {
	Title string `json:"title"`
}

// Suggestion is a prompt suggestion offered by the assistant.
type Suggestion struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}
