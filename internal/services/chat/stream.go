package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sse "github.com/tmaxmax/go-sse"

	domainerrors "github.com/unifiedui/erp-client/internal/domain/errors"
	"github.com/unifiedui/erp-client/internal/domain/models"
)

// DoneSentinel is the data payload that ends a stream. A token whose text
// is exactly "[DONE]" is indistinguishable from it.
const DoneSentinel = "[DONE]"

// stream runs one request for generation gen and returns the conversation id
// announced by the server, if any.
func (c *Controller) stream(ctx context.Context, gen uint64, conversationID, message string) string {
	resp, err := c.opener.OpenStream(ctx, ChatPath, models.ChatRequest{
		ConversationID: conversationID,
		Message:        message,
	})
	if err != nil {
		if ctx.Err() != nil {
			c.cancelled(gen)
			return ""
		}
		c.fail(gen, domainerrors.NewStreamError("failed to open chat stream", err))
		return ""
	}
	defer resp.Body.Close()

	// Cancellation closes the body so a blocked read returns immediately.
	stop := context.AfterFunc(ctx, func() { resp.Body.Close() })
	defer stop()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.fail(gen, domainerrors.NewStreamError(fmt.Sprintf("chat failed: status %d", resp.StatusCode), nil))
		return ""
	}

	learned := resp.Header.Get(ConversationHeader)
	if !c.setConversation(gen, learned) {
		return learned
	}

	for ev, err := range sse.Read(resp.Body, nil) {
		if err != nil {
			if ctx.Err() != nil {
				c.cancelled(gen)
				return learned
			}
			c.fail(gen, domainerrors.NewStreamError("stream interrupted", err))
			return learned
		}

		if ev.Data == DoneSentinel {
			c.complete(gen)
			return learned
		}
		if !c.appendToken(gen, decodeToken(ev.Data)) {
			return learned
		}
	}

	if ctx.Err() != nil {
		c.cancelled(gen)
		return learned
	}
	c.complete(gen)
	return learned
}

// decodeToken returns the text of a JSON string token. Any other payload
// is appended verbatim.
func decodeToken(data string) string {
	if !strings.HasPrefix(data, `"`) {
		return data
	}
	var token string
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return data
	}
	return token
}
