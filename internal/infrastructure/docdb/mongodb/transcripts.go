package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unifiedui/erp-client/internal/core/docdb"
	"github.com/unifiedui/erp-client/internal/domain/models"
)

// TranscriptsCollectionName is the name of the transcripts collection.
const TranscriptsCollectionName = "chat_transcripts"

// TranscriptsCollection implements docdb.TranscriptsCollection for MongoDB.
type TranscriptsCollection struct {
	collection *mongo.Collection
}

// NewTranscriptsCollection creates a new transcripts collection wrapper.
func NewTranscriptsCollection(db *mongo.Database) *TranscriptsCollection {
	return &TranscriptsCollection{collection: db.Collection(TranscriptsCollectionName)}
}

// Record inserts a transcript.
func (c *TranscriptsCollection) Record(ctx context.Context, transcript *models.Transcript) error {
	if transcript == nil {
		return fmt.Errorf("transcript is required")
	}
	if transcript.ID == "" {
		return fmt.Errorf("transcript ID is required")
	}

	if _, err := c.collection.InsertOne(ctx, transcript); err != nil {
		return fmt.Errorf("failed to insert transcript: %w", err)
	}
	return nil
}

// Get retrieves a transcript by ID.
func (c *TranscriptsCollection) Get(ctx context.Context, id string) (*models.Transcript, error) {
	var transcript models.Transcript
	err := c.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&transcript)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}
	return &transcript, nil
}

// List lists transcripts with pagination and sorting.
func (c *TranscriptsCollection) List(ctx context.Context, opts *docdb.ListTranscriptsOptions) ([]*models.Transcript, error) {
	cursor, err := c.collection.Find(ctx, buildFilter(opts), buildFindOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	defer cursor.Close(ctx)

	transcripts := make([]*models.Transcript, 0)
	if err := cursor.All(ctx, &transcripts); err != nil {
		return nil, fmt.Errorf("failed to decode transcripts: %w", err)
	}
	return transcripts, nil
}

// DeleteByConversation removes all transcripts of a conversation.
func (c *TranscriptsCollection) DeleteByConversation(ctx context.Context, conversationID string) (int64, error) {
	if conversationID == "" {
		return 0, fmt.Errorf("conversation ID is required")
	}

	result, err := c.collection.DeleteMany(ctx, bson.M{"conversationId": conversationID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete transcripts: %w", err)
	}
	return result.DeletedCount, nil
}

// EnsureIndexes creates the lookup indexes.
func (c *TranscriptsCollection) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conversationId", Value: 1}, {Key: "startedAt", Value: -1}},
			Options: options.Index().SetName("conversation_started"),
		},
		{
			Keys:    bson.D{{Key: "userEmail", Value: 1}, {Key: "startedAt", Value: -1}},
			Options: options.Index().SetName("user_started"),
		},
	}

	if _, err := c.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create transcript indexes: %w", err)
	}
	return nil
}

func buildFilter(opts *docdb.ListTranscriptsOptions) bson.M {
	filter := bson.M{}
	if opts == nil {
		return filter
	}
	if opts.ConversationID != "" {
		filter["conversationId"] = opts.ConversationID
	}
	if opts.UserEmail != "" {
		filter["userEmail"] = opts.UserEmail
	}
	return filter
}

func buildFindOptions(opts *docdb.ListTranscriptsOptions) *options.FindOptions {
	findOpts := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	if opts == nil {
		return findOpts
	}

	if opts.OrderBy == docdb.SortOrderAsc {
		findOpts.SetSort(bson.D{{Key: "startedAt", Value: 1}})
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	return findOpts
}
