package docdb

import (
	"context"

	"github.com/unifiedui/erp-client/internal/domain/models"
)

// SortOrder represents the sort direction.
type SortOrder string

const (
	// SortOrderAsc represents ascending order.
	SortOrderAsc SortOrder = "asc"
	// SortOrderDesc represents descending order.
	SortOrderDesc SortOrder = "desc"
)

// ListTranscriptsOptions contains options for listing transcripts.
type ListTranscriptsOptions struct {
	ConversationID string
	UserEmail      string
	Limit          int64
	Skip           int64
	OrderBy        SortOrder // by startedAt
}

// TranscriptsCollection stores one document per finished chat stream.
type TranscriptsCollection interface {
	// Record inserts a transcript.
	Record(ctx context.Context, transcript *models.Transcript) error

	// Get returns a transcript by ID, or nil when it does not exist.
	Get(ctx context.Context, id string) (*models.Transcript, error)

	// List returns transcripts matching opts.
	List(ctx context.Context, opts *ListTranscriptsOptions) ([]*models.Transcript, error)

	// DeleteByConversation removes all transcripts of a conversation.
	DeleteByConversation(ctx context.Context, conversationID string) (int64, error)

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}
