package handler

import (
	"errors"
	"net/http"

	"outreach-server/internal/access"
	"outreach-server/internal/apierrors"
	"outreach-server/internal/observability"
	"outreach-server/internal/settings/processor"
	"outreach-server/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.SettingsProcessor
	logger    *observability.Logger
}

func New(processor processor.SettingsProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

type SettingValue struct {
	Key   string `json:"key" binding:"required,max=100"`
	Value string `json:"value" binding:"max=1000"`
}

type UpdateSettingsRequest struct {
	Settings []SettingValue `json:"settings" binding:"required,min=1,dive"`
}

// HandleListSettings handles GET /api/protected/settings
func (h *Handler) HandleListSettings(c *gin.Context) {
	ctx := c.Request.Context()

	settings, err := h.processor.ListSettings(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// HandleUpdateSettings handles PUT /api/protected/settings
func (h *Handler) HandleUpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := access.CallerID(c)
	if !ok {
		apierrors.Unauthorized(c, "User ID not found in context")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	updates := make([]store.SettingUpdate, 0, len(req.Settings))
	for _, s := range req.Settings {
		updates = append(updates, store.SettingUpdate{Key: s.Key, Value: s.Value})
	}

	settings, err := h.processor.UpdateSettings(ctx, updates, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrSettingNotFound):
		apierrors.NotFound(c, "Setting not found")
	case errors.Is(err, processor.ErrInvalidValue):
		apierrors.BadRequest(c, "INVALID_VALUE", err.Error())
	case errors.Is(err, processor.ErrNoUpdates):
		apierrors.BadRequest(c, "INVALID_INPUT", "No settings to update")
	default:
		apierrors.InternalError(c, err)
	}
}
