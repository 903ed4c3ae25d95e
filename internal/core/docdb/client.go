// Package docdb defines the document database used to archive chat transcripts.
package docdb

import (
	"context"
)

// Client defines the interface for a document database client.
type Client interface {
	// Transcripts returns the transcripts collection.
	Transcripts() TranscriptsCollection

	// EnsureIndexes creates the indexes every collection needs.
	EnsureIndexes(ctx context.Context) error

	// Ping verifies the database connection.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}
