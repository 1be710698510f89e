package handler

import (
	"errors"
	"net/http"

	"outreach-server/internal/apierrors"
	"outreach-server/internal/chat/processor"
	"outreach-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.ChatProcessor
	logger    *observability.Logger
}

func New(processor processor.ChatProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

type ChatRequest struct {
	Prompt string `json:"prompt" binding:"max=8000"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// HandleChat handles POST /api/protected/chat and /api/protected/minichat
func (h *Handler) HandleChat(c *gin.Context) {
	ctx := c.Request.Context()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	reply, err := h.processor.Chat(ctx, req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, processor.ErrEmptyPrompt):
			apierrors.BadRequest(c, "PROMPT_REQUIRED", "Prompt is required")
		case errors.Is(err, processor.ErrNotConfigured):
			apierrors.ServiceUnavailable(c, "CHAT_UNAVAILABLE", "Chat is not configured", err)
		case errors.Is(err, processor.ErrProviderFailed):
			apierrors.ServiceUnavailable(c, "CHAT_UNAVAILABLE", "Chat is temporarily unavailable", err)
		default:
			apierrors.InternalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}
