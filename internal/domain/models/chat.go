package models

import "time"

// StreamStatus is the lifecycle state of a chat stream session.
type StreamStatus string

const (
	// StreamStatusIdle means no stream has been started, or the last one was aborted.
	StreamStatusIdle StreamStatus = "idle"
	// StreamStatusStreaming means tokens may still arrive.
	StreamStatusStreaming StreamStatus = "streaming"
	// StreamStatusDone means the stream completed normally.
	StreamStatusDone StreamStatus = "done"
	// StreamStatusError means the stream failed.
	StreamStatusError StreamStatus = "error"
	// StreamStatusSuperseded means a newer send or an abort cancelled the stream.
	StreamStatusSuperseded StreamStatus = "superseded"
)

// Terminal reports whether the status has no outgoing transitions.
func (s StreamStatus) Terminal() bool {
	switch s {
	case StreamStatusDone, StreamStatusError, StreamStatusSuperseded:
		return true
	default:
		return false
	}
}

// ChatRequest is the body of POST /agent/chat.
type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

// Snapshot is the read-only projection of the current stream session.
type Snapshot struct {
	Generation     uint64       `json:"generation"`
	Text           string       `json:"text"`
	Status         StreamStatus `json:"status"`
	IsStreaming    bool         `json:"isStreaming"`
	Error          string       `json:"error,omitempty"`
	ConversationID string       `json:"conversationId,omitempty"`
}

// Transcript is the archived record of one terminal chat stream.
type Transcript struct {
	ID             string       `json:"id" bson:"_id"`
	ConversationID string       `json:"conversationId" bson:"conversationId"`
	UserEmail      string       `json:"userEmail,omitempty" bson:"userEmail,omitempty"`
	Prompt         string       `json:"prompt" bson:"prompt"`
	Response       string       `json:"response" bson:"response"`
	Status         StreamStatus `json:"status" bson:"status"`
	Error          string       `json:"error,omitempty" bson:"error,omitempty"`
	StartedAt      time.Time    `json:"startedAt" bson:"startedAt"`
	FinishedAt     time.Time    `json:"finishedAt" bson:"finishedAt"`
}
