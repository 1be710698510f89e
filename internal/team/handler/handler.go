package handler

import (
	"context"
	"errors"
	"net/http"

	"outreach-server/internal/access"
	"outreach-server/internal/apierrors"
	"outreach-server/internal/observability"
	"outreach-server/internal/store"
	"outreach-server/internal/team/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.TeamProcessor
	logger    *observability.Logger
}

func New(processor processor.TeamProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin moderator analyst sales"`
}

// DeleteUserRequest is the body accepted by /delete-user
type DeleteUserRequest struct {
	UserIDToDelete string `json:"user_id_to_delete" binding:"required,uuid"`
}

type teamAction func(ctx context.Context, adminID, userID uuid.UUID) (store.User, error)

// HandleListUsers handles GET /api/protected/team
func (h *Handler) HandleListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.processor.ListUsers(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// HandleApproveUser handles POST /api/protected/team/:user_id/approve
func (h *Handler) HandleApproveUser(c *gin.Context) {
	h.act(c, h.processor.Approve)
}

// HandleRejectUser handles POST /api/protected/team/:user_id/reject
func (h *Handler) HandleRejectUser(c *gin.Context) {
	h.act(c, h.processor.Reject)
}

// HandleBanUser handles POST /api/protected/team/:user_id/ban
func (h *Handler) HandleBanUser(c *gin.Context) {
	h.act(c, h.processor.Ban)
}

// HandleUnbanUser handles POST /api/protected/team/:user_id/unban
func (h *Handler) HandleUnbanUser(c *gin.Context) {
	h.act(c, h.processor.Unban)
}

// HandleDeleteUser handles DELETE /api/protected/team/:user_id
func (h *Handler) HandleDeleteUser(c *gin.Context) {
	h.act(c, h.processor.Delete)
}

// HandleChangeRole handles PUT /api/protected/team/:user_id/role
func (h *Handler) HandleChangeRole(c *gin.Context) {
	ctx := c.Request.Context()

	adminID, ok := h.getCallerID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	user, err := h.processor.ChangeRole(ctx, adminID, userID, req.Role)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// HandleDeleteUserByBody handles POST /api/protected/delete-user
func (h *Handler) HandleDeleteUserByBody(c *gin.Context) {
	ctx := c.Request.Context()

	adminID, ok := h.getCallerID(c)
	if !ok {
		return
	}

	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}
	userID, err := uuid.Parse(req.UserIDToDelete)
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid user ID format")
		return
	}

	if _, err := h.processor.Delete(ctx, adminID, userID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) act(c *gin.Context, fn teamAction) {
	ctx := c.Request.Context()

	adminID, ok := h.getCallerID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	user, err := fn(ctx, adminID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) getCallerID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := access.CallerID(c)
	if !ok {
		apierrors.Unauthorized(c, "User ID not found in context")
		return uuid.UUID{}, false
	}
	return userID, true
}

func (h *Handler) getUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		apierrors.BadRequest(c, "INVALID_INPUT", "Invalid user ID format")
		return uuid.UUID{}, false
	}
	return userID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, processor.ErrSelfAction):
		apierrors.Forbidden(c, "SELF_ACTION", "You cannot change your own account")
	case errors.Is(err, processor.ErrInvalidRole):
		apierrors.BadRequest(c, "INVALID_ROLE", "Invalid role")
	case errors.Is(err, processor.ErrInvalidTransition):
		apierrors.Conflict(c, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, processor.ErrUserNotActive):
		apierrors.Conflict(c, "USER_NOT_ACTIVE", "Only active users can change role")
	case errors.Is(err, processor.ErrUserNotPending):
		apierrors.Conflict(c, "USER_NOT_PENDING", "Only pending users can be rejected")
	case errors.Is(err, processor.ErrStatusChanged):
		apierrors.Conflict(c, "STATUS_CHANGED", "The user was updated by someone else. Refresh and try again.")
	default:
		apierrors.InternalError(c, err)
	}
}
