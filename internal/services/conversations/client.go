// Package conversations wraps the assistant conversation endpoints.
package conversations

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	domainerrors "github.com/unifiedui/erp-client/internal/domain/errors"
	"github.com/unifiedui/erp-client/internal/domain/models"
	"github.com/unifiedui/erp-client/internal/services/auth"
)

const basePath = "/agent/conversations"

// Client calls the conversation endpoints through an authorized requester.
type Client struct {
	doer auth.Doer
}

// NewClient creates a conversation client.
func NewClient(doer auth.Doer) *Client {
	return &Client{doer: doer}
}

// List returns the caller's conversations.
func (c *Client) List(ctx context.Context) (models.ListResponse[models.Conversation], error) {
	return auth.Get[models.ListResponse[models.Conversation]](ctx, c.doer, basePath)
}

// Get returns a conversation with its messages.
func (c *Client) Get(ctx context.Context, id string) (*models.ConversationWithMessages, error) {
	path, err := conversationPath(id)
	if err != nil {
		return nil, err
	}
	conv, err := auth.Get[models.ConversationWithMessages](ctx, c.doer, path)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// Rename changes a conversation title.
func (c *Client) Rename(ctx context.Context, id, title string) error {
	path, err := conversationPath(id)
	if err != nil {
		return err
	}
	return c.doer.AuthorizedRequest(ctx, &auth.Request{
		Method: http.MethodPatch,
		Path:   path,
		Body:   models.UpdateConversationRequest{Title: title},
	}, nil)
}

// Delete removes a conversation.
func (c *Client) Delete(ctx context.Context, id string) error {
	path, err := conversationPath(id)
	if err != nil {
		return err
	}
	return auth.Delete(ctx, c.doer, path)
}

// Suggestions returns prompt suggestions for a new conversation.
func (c *Client) Suggestions(ctx context.Context) ([]models.Suggestion, error) {
	return auth.Get[[]models.Suggestion](ctx, c.doer, "/agent/suggestions")
}

func conversationPath(id string) (string, error) {
	if id == "" {
		return "", domainerrors.NewValidationError("conversation id is required", "")
	}
	return fmt.Sprintf("%s/%s", basePath, url.PathEscape(id)), nil
}
