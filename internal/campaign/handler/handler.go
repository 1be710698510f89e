package handler

import (
	"errors"
	"net/http"

	"outreach-server/internal/access"
	"outreach-server/internal/apierrors"
	"outreach-server/internal/campaign/processor"
	"outreach-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.CampaignProcessor
	logger    *observability.Logger
}

func New(processor processor.CampaignProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CreateCampaignRequest represents the HTTP request for creating a campaign
type CreateCampaignRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

// UpdateCampaignStatusRequest represents the HTTP request for updating campaign status
type UpdateCampaignStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active paused completed archived"`
}

// HandleCreateCampaign creates a new campaign
func (h *Handler) HandleCreateCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	campaign, err := h.processor.CreateCampaign(ctx, userID, processor.CreateCampaignParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

// HandleListCampaigns lists campaigns, optionally filtered by status
func (h *Handler) HandleListCampaigns(c *gin.Context) {
	ctx := c.Request.Context()

	var status *string
	if statusStr := c.Query("status"); statusStr != "" {
		status = &statusStr
	}

	campaigns, err := h.processor.ListCampaigns(ctx, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

// HandleGetCampaign retrieves a campaign with its drafts
func (h *Handler) HandleGetCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}

	campaign, err := h.processor.GetCampaign(ctx, campaignID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// HandleUpdateCampaignStatus moves a campaign to a new status
func (h *Handler) HandleUpdateCampaignStatus(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}

	var req UpdateCampaignStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	campaign, err := h.processor.UpdateCampaignStatus(ctx, campaignID, userID, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// HandleDeleteCampaign deletes a campaign
func (h *Handler) HandleDeleteCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteCampaign(ctx, campaignID, userID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) getUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := access.CallerID(c)
	if !ok {
		apierrors.Unauthorized(c, "User ID not found in context")
		return uuid.UUID{}, false
	}
	return userID, true
}

func (h *Handler) getCampaignID(c *gin.Context) (uuid.UUID, bool) {
	campaignIDStr := c.Param("campaign_id")
	campaignID, err := uuid.Parse(campaignIDStr)
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid campaign ID format")
		return uuid.UUID{}, false
	}
	return campaignID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrCampaignNotFound):
		apierrors.NotFound(c, "Campaign not found")
	case errors.Is(err, processor.ErrNameAlreadyExists):
		apierrors.Conflict(c, "NAME_EXISTS", "A campaign with this name already exists")
	case errors.Is(err, processor.ErrNameRequired):
		apierrors.BadRequest(c, "INVALID_INPUT", "Campaign name is required")
	case errors.Is(err, processor.ErrInvalidCampaignStatus):
		apierrors.BadRequest(c, "INVALID_STATUS", "Invalid campaign status")
	case errors.Is(err, processor.ErrInvalidTransition):
		apierrors.Conflict(c, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, processor.ErrStatusChanged):
		apierrors.Conflict(c, "STATUS_CHANGED", "The campaign was updated by someone else. Refresh and try again.")
	default:
		apierrors.InternalError(c, err)
	}
}
