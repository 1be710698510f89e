package handler

import (
	"errors"
	"net/http"

	"outreach-server/internal/access"
	"outreach-server/internal/analysis/processor"
	"outreach-server/internal/apierrors"
	"outreach-server/internal/clients/pagemeta"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.AnalysisProcessor
	logger    *observability.Logger
}

func New(processor processor.AnalysisProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CreateAnalysisRequest represents the HTTP request for analyzing a page
type CreateAnalysisRequest struct {
	URL string `json:"url" binding:"required,max=2048"`
}

// AnalyzePageRequest is the body accepted by the /analyze path
type AnalyzePageRequest struct {
	PageURL  string `json:"pageUrl" binding:"required,max=2048"`
	PageName string `json:"pageName" binding:"max=255"`
}

// AnalyzePageResponse is the flattened result returned by the /analyze path
type AnalyzePageResponse struct {
	OverallScore int               `json:"overall_score"`
	Issues       store.Issues      `json:"issues"`
	Suggestions  store.Suggestions `json:"suggestions"`
	Rationale    string            `json:"rationale"`
	NeedDecision string            `json:"need_decision"`
	AnalysisID   uuid.UUID         `json:"analysis_id"`
	PageID       uuid.UUID         `json:"page_id"`
	Metadata     pagemeta.Metadata `json:"metadata"`
}

// HandleCreateAnalysis handles POST /api/protected/analyses
func (h *Handler) HandleCreateAnalysis(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getCallerID(c)
	if !ok {
		return
	}

	var req CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	result, err := h.processor.Analyze(ctx, processor.AnalyzeParams{URL: req.URL, AnalyzedBy: userID})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// HandleAnalyzePage handles POST /api/protected/analyze
func (h *Handler) HandleAnalyzePage(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getCallerID(c)
	if !ok {
		return
	}

	var req AnalyzePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	result, err := h.processor.Analyze(ctx, processor.AnalyzeParams{
		URL:        req.PageURL,
		PageName:   req.PageName,
		AnalyzedBy: userID,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, AnalyzePageResponse{
		OverallScore: result.Analysis.OverallScore,
		Issues:       result.Analysis.Issues,
		Suggestions:  result.Analysis.Suggestions,
		Rationale:    result.Analysis.Rationale,
		NeedDecision: result.Analysis.NeedDecision,
		AnalysisID:   result.Analysis.ID,
		PageID:       result.Page.ID,
		Metadata:     result.Metadata,
	})
}

// HandleListAnalyses handles GET /api/protected/analyses
func (h *Handler) HandleListAnalyses(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getCallerID(c)
	if !ok {
		return
	}

	analyses, err := h.processor.ListAnalyses(ctx, userID, access.CallerPrincipal(c), c.Query("scope") == "all")
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

// HandleGetAnalysis handles GET /api/protected/analyses/:analysis_id
func (h *Handler) HandleGetAnalysis(c *gin.Context) {
	ctx := c.Request.Context()

	analysisID, ok := h.getAnalysisID(c)
	if !ok {
		return
	}

	analysis, err := h.processor.GetAnalysis(ctx, analysisID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// HandleDeleteAnalysis handles DELETE /api/protected/analyses/:analysis_id
func (h *Handler) HandleDeleteAnalysis(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getCallerID(c)
	if !ok {
		return
	}
	analysisID, ok := h.getAnalysisID(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteAnalysis(ctx, analysisID, userID, access.CallerPrincipal(c)); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) getCallerID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := access.CallerID(c)
	if !ok {
		apierrors.Unauthorized(c, "User ID not found in context")
		return uuid.UUID{}, false
	}
	return userID, true
}

func (h *Handler) getAnalysisID(c *gin.Context) (uuid.UUID, bool) {
	analysisID, err := uuid.Parse(c.Param("analysis_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid analysis ID format")
		return uuid.UUID{}, false
	}
	return analysisID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrURLRequired):
		apierrors.BadRequest(c, "URL_REQUIRED", "Page URL is required")
	case errors.Is(err, processor.ErrAnalysisNotFound):
		apierrors.NotFound(c, "Analysis not found")
	case errors.Is(err, processor.ErrForbidden):
		apierrors.Forbidden(c, "FORBIDDEN", "You can only delete your own analyses")
	default:
		apierrors.InternalError(c, err)
	}
}
