package handler

import (
	"context"
	"errors"
	"net/http"

	"outreach-server/internal/access"
	"outreach-server/internal/apierrors"
	"outreach-server/internal/drafts/processor"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.DraftProcessor
	logger    *observability.Logger
}

func New(processor processor.DraftProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

type CreateDraftRequest struct {
	AnalysisID string `json:"analysis_id" binding:"required,uuid"`
}

// CreateProposalRequest is the body accepted by /create-proposal. The creator
// is always the caller; userId is accepted and ignored.
type CreateProposalRequest struct {
	AnalysisID string `json:"analysisId" binding:"required,uuid"`
	UserID     string `json:"userId"`
}

type UpdateDraftRequest struct {
	FBMessage    string `json:"fb_message" binding:"required,max=5000"`
	EmailSubject string `json:"email_subject" binding:"required,max=255"`
	EmailBody    string `json:"email_body" binding:"required,max=20000"`
}

type SetCampaignRequest struct {
	CampaignID *string `json:"campaign_id" binding:"omitempty,uuid"`
}

// HandleListCandidates handles GET /api/protected/drafts/candidates
func (h *Handler) HandleListCandidates(c *gin.Context) {
	ctx := c.Request.Context()

	candidates, err := h.processor.ListCandidates(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// HandleCreateDraft handles POST /api/protected/drafts
func (h *Handler) HandleCreateDraft(c *gin.Context) {
	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}
	h.createDraft(c, req.AnalysisID, http.StatusCreated)
}

// HandleCreateProposal handles POST /api/protected/create-proposal
func (h *Handler) HandleCreateProposal(c *gin.Context) {
	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}
	h.createDraft(c, req.AnalysisID, http.StatusOK)
}

func (h *Handler) createDraft(c *gin.Context, rawAnalysisID string, status int) {
	ctx := c.Request.Context()

	userID, ok := h.getCallerID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(rawAnalysisID)
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid analysis ID format")
		return
	}

	draft, err := h.processor.CreateDraft(ctx, analysisID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(status, draft)
}

// HandleListDrafts handles GET /api/protected/drafts
func (h *Handler) HandleListDrafts(c *gin.Context) {
	ctx := c.Request.Context()

	var params store.ListDraftsParams
	if status := c.Query("status"); status != "" {
		params.Status = &status
	}
	if raw := c.Query("campaign_id"); raw != "" {
		campaignID, err := uuid.Parse(raw)
		if err != nil {
			apierrors.BadRequest(c, "INVALID_INPUT", "Invalid campaign ID format")
			return
		}
		params.CampaignID = &campaignID
	}

	drafts, err := h.processor.ListDrafts(ctx, params)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

// HandleGetDraft handles GET /api/protected/drafts/:draft_id
func (h *Handler) HandleGetDraft(c *gin.Context) {
	ctx := c.Request.Context()

	draftID, ok := h.getDraftID(c)
	if !ok {
		return
	}

	draft, err := h.processor.GetDraft(ctx, draftID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// HandleUpdateDraft handles PUT /api/protected/drafts/:draft_id
func (h *Handler) HandleUpdateDraft(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getCallerID(c)
	if !ok {
		return
	}
	draftID, ok := h.getDraftID(c)
	if !ok {
		return
	}

	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	draft, err := h.processor.UpdateContent(ctx, draftID, userID, processor.UpdateContentParams{
		FBMessage:    req.FBMessage,
		EmailSubject: req.EmailSubject,
		EmailBody:    req.EmailBody,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// HandleSetCampaign handles PUT /api/protected/drafts/:draft_id/campaign
func (h *Handler) HandleSetCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getCallerID(c)
	if !ok {
		return
	}
	draftID, ok := h.getDraftID(c)
	if !ok {
		return
	}

	var req SetCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	var campaignID *uuid.UUID
	if req.CampaignID != nil {
		id, err := uuid.Parse(*req.CampaignID)
		if err != nil {
			apierrors.BadRequest(c, "INVALID_INPUT", "Invalid campaign ID format")
			return
		}
		campaignID = &id
	}

	draft, err := h.processor.SetCampaign(ctx, draftID, userID, campaignID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// HandleApproveDraft handles POST /api/protected/drafts/:draft_id/approve
func (h *Handler) HandleApproveDraft(c *gin.Context) {
	h.review(c, h.processor.Approve)
}

// HandleRejectDraft handles POST /api/protected/drafts/:draft_id/reject
func (h *Handler) HandleRejectDraft(c *gin.Context) {
	h.review(c, h.processor.Reject)
}

// HandleSendDraft handles POST /api/protected/drafts/:draft_id/send
func (h *Handler) HandleSendDraft(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getCallerID(c)
	if !ok {
		return
	}
	draftID, ok := h.getDraftID(c)
	if !ok {
		return
	}

	result, err := h.processor.Send(ctx, draftID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft":   result.Draft,
		"message": result.Message,
	})
}

type reviewFunc func(ctx context.Context, id, reviewerID uuid.UUID) (store.Draft, error)

func (h *Handler) review(c *gin.Context, fn reviewFunc) {
	ctx := c.Request.Context()

	userID, ok := h.getCallerID(c)
	if !ok {
		return
	}
	draftID, ok := h.getDraftID(c)
	if !ok {
		return
	}

	draft, err := fn(ctx, draftID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *Handler) getCallerID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := access.CallerID(c)
	if !ok {
		apierrors.Unauthorized(c, "User ID not found in context")
		return uuid.UUID{}, false
	}
	return userID, true
}

func (h *Handler) getDraftID(c *gin.Context) (uuid.UUID, bool) {
	draftID, err := uuid.Parse(c.Param("draft_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid draft ID format")
		return uuid.UUID{}, false
	}
	return draftID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrDraftNotFound):
		apierrors.NotFound(c, "Draft not found")
	case errors.Is(err, processor.ErrAnalysisNotFound):
		apierrors.NotFound(c, "Analysis not found")
	case errors.Is(err, processor.ErrCampaignNotFound):
		apierrors.NotFound(c, "Campaign not found")
	case errors.Is(err, processor.ErrDraftExists):
		apierrors.Conflict(c, "DRAFT_EXISTS", "A draft already exists for this analysis")
	case errors.Is(err, processor.ErrInvalidTransition):
		apierrors.Conflict(c, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, processor.ErrStatusChanged):
		apierrors.Conflict(c, "STATUS_CHANGED", "The draft was updated by someone else. Refresh and try again.")
	case errors.Is(err, processor.ErrNotEditable):
		apierrors.Conflict(c, "NOT_EDITABLE", "Only pending or approved drafts can be edited")
	default:
		apierrors.InternalError(c, err)
	}
}
