package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/erp-client/internal/api/dto"
	"github.com/unifiedui/erp-client/internal/api/middleware"
	"github.com/unifiedui/erp-client/internal/core/docdb"
	"github.com/unifiedui/erp-client/internal/domain/errors"
)

const defaultTranscriptLimit = 20

// TranscriptsHandler serves the archive of finished chat streams.
type TranscriptsHandler struct {
	transcripts docdb.TranscriptsCollection
}

// NewTranscriptsHandler creates a TranscriptsHandler.
func NewTranscriptsHandler(transcripts docdb.TranscriptsCollection) *TranscriptsHandler {
	return &TranscriptsHandler{transcripts: transcripts}
}

// List handles GET /transcripts
// @Summary List transcripts
// @Description Lists archived chat streams, newest first by default
// @Tags Transcripts
// @Produce json
// @Param conversationId query string false "Conversation ID"
// @Param userEmail query string false "User email"
// @Param limit query int false "Maximum number of transcripts" default(20) minimum(1) maximum(100)
// @Param skip query int false "Offset for pagination" default(0) minimum(0)
// @Param order query string false "Sort order by start time" Enums(asc, desc)
// @Success 200 {object} dto.ListTranscriptsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transcripts [get]
func (h *TranscriptsHandler) List(c *gin.Context) {
	var req dto.ListTranscriptsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}

	if req.Limit == 0 {
		req.Limit = defaultTranscriptLimit
	}
	order := docdb.SortOrderDesc
	if req.Order != "" {
		order = docdb.SortOrder(req.Order)
	}

	transcripts, err := h.transcripts.List(c.Request.Context(), &docdb.ListTranscriptsOptions{
		ConversationID: req.ConversationID,
		UserEmail:      req.UserEmail,
		Limit:          req.Limit,
		Skip:           req.Skip,
		OrderBy:        order,
	})
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to list transcripts", err))
		return
	}

	c.JSON(http.StatusOK, dto.ListTranscriptsResponse{
		Transcripts: transcripts,
		Limit:       req.Limit,
		Skip:        req.Skip,
	})
}

// Get handles GET /transcripts/{transcriptId}
// @Summary Get transcript
// @Tags Transcripts
// @Produce json
// @Param transcriptId path string true "Transcript ID"
// @Success 200 {object} models.Transcript
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transcripts/{transcriptId} [get]
func (h *TranscriptsHandler) Get(c *gin.Context) {
	transcript, err := h.transcripts.Get(c.Request.Context(), c.Param("transcriptId"))
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to get transcript", err))
		return
	}
	if transcript == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Code:      "NOT_FOUND",
			Message:   "transcript not found",
			Details:   c.Param("transcriptId"),
			RequestID: middleware.GetRequestID(c),
		})
		return
	}
	c.JSON(http.StatusOK, transcript)
}
