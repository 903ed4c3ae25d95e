package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/erp-client/internal/api/dto"
	"github.com/unifiedui/erp-client/internal/api/middleware"
	"github.com/unifiedui/erp-client/internal/api/sse"
	"github.com/unifiedui/erp-client/internal/domain/errors"
	"github.com/unifiedui/erp-client/internal/domain/models"
)

// DefaultKeepAlive is the interval between keep-alive comments on /chat/events.
const DefaultKeepAlive = 15 * time.Second

// ChatService is the stream session controller surface.
type ChatService interface {
	Send(ctx context.Context, conversationID, message string) string
	Start(ctx context.Context, conversationID, message string) models.Snapshot
	Abort()
	Snapshot() models.Snapshot
	Subscribe(ctx context.Context) <-chan models.Snapshot
}

// ChatHandler exposes the chat stream session over HTTP.
type ChatHandler struct {
	chat      ChatService
	keepAlive time.Duration
}

// NewChatHandler creates a ChatHandler. A non-positive keepAlive uses DefaultKeepAlive.
func NewChatHandler(chat ChatService, keepAlive time.Duration) *ChatHandler {
	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}
	return &ChatHandler{
		chat:      chat,
		keepAlive: keepAlive,
	}
}

// Send handles POST /chat/send
// @Summary Send a chat message
// @Description Starts a chat stream, superseding any stream in progress. Without wait the call returns 202 with the new stream's first snapshot and progress is observed through /chat/events or /chat/state.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.SendChatRequest true "Message"
// @Success 200 {object} dto.SendChatResponse "Terminal state (wait=true)"
// @Success 202 {object} dto.SendChatResponse "Accepted"
// @Failure 400 {object} dto.ErrorResponse
// @Router /chat/send [post]
func (h *ChatHandler) Send(c *gin.Context) {
	var req dto.SendChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	// The stream belongs to the controller, not to this request.
	ctx := context.WithoutCancel(c.Request.Context())

	if !req.Wait {
		c.JSON(http.StatusAccepted, dto.SendChatResponse{
			Snapshot: h.chat.Start(ctx, req.ConversationID, req.Message),
		})
		return
	}

	conversationID := h.chat.Send(ctx, req.ConversationID, req.Message)
	c.JSON(http.StatusOK, dto.SendChatResponse{
		ConversationID: conversationID,
		Snapshot:       h.chat.Snapshot(),
	})
}

// Abort handles POST /chat/abort
// @Summary Abort the chat stream
// @Description Cancels the stream in progress. Accumulated text is kept.
// @Tags Chat
// @Produce json
// @Success 200 {object} models.Snapshot
// @Router /chat/abort [post]
func (h *ChatHandler) Abort(c *gin.Context) {
	h.chat.Abort()
	c.JSON(http.StatusOK, h.chat.Snapshot())
}

// State handles GET /chat/state
// @Summary Chat stream state
// @Description Returns the current snapshot of the chat stream session
// @Tags Chat
// @Produce json
// @Success 200 {object} models.Snapshot
// @Router /chat/state [get]
func (h *ChatHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.chat.Snapshot())
}

// Events handles GET /chat/events
// @Summary Chat stream events
// @Description Server-Sent Events carrying a snapshot after every state change. Slow readers only see the latest snapshot.
// @Tags Chat
// @Produce text/event-stream
// @Success 200 {string} string "snapshot events"
// @Router /chat/events [get]
func (h *ChatHandler) Events(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetRequestLogger(c)

	writer, err := sse.NewWriter(c.Writer)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("streaming not supported", err))
		return
	}

	updates := h.chat.Subscribe(ctx)
	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := writer.WriteSnapshot(snap); err != nil {
				logger.Debug().Err(err).Msg("event subscriber went away")
				return
			}
		case <-ticker.C:
			if err := writer.WriteComment("keep-alive"); err != nil {
				return
			}
		}
	}
}
