package handler

import (
	"errors"
	"net/http"

	"outreach-server/internal/apierrors"
	"outreach-server/internal/messages/processor"
	"outreach-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.MessageProcessor
	logger    *observability.Logger
}

func New(processor processor.MessageProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleListMessages handles GET /api/protected/messages
func (h *Handler) HandleListMessages(c *gin.Context) {
	ctx := c.Request.Context()

	threads, err := h.processor.ListThreads(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": threads})
}

// HandleMarkReplyRead handles POST /api/protected/replies/:reply_id/read
func (h *Handler) HandleMarkReplyRead(c *gin.Context) {
	ctx := c.Request.Context()

	replyID, err := uuid.Parse(c.Param("reply_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid reply ID format")
		return
	}

	reply, err := h.processor.MarkReplyRead(ctx, replyID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrReplyNotFound):
		apierrors.NotFound(c, "Reply not found")
	case errors.Is(err, processor.ErrMessageNotFound):
		apierrors.NotFound(c, "Message not found")
	default:
		apierrors.InternalError(c, err)
	}
}
