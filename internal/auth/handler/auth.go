package handler

import (
	"errors"
	"net/http"
	"strings"

	"outreach-server/internal/access"
	"outreach-server/internal/apierrors"
	"outreach-server/internal/auth/processor"
	"outreach-server/internal/observability"

	"github.com/gin-gonic/gin"
)

const claimsContextKey = "Token-Claims"

type Handler struct {
	authProcessor processor.AuthProcessor
	logger        *observability.Logger
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,max=200"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func New(authProcessor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, logger: logger}
}

// HandleSignup handles POST /api/auth/signup
func (h *Handler) HandleSignup(c *gin.Context) {
	ctx := c.Request.Context()

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	user, err := h.authProcessor.Signup(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"message": "Account created. An admin must approve it before you can sign in.",
	})
}

// HandleSignIn handles POST /api/auth/signin
func (h *Handler) HandleSignIn(c *gin.Context) {
	ctx := c.Request.Context()

	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	session, err := h.authProcessor.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// HandleSignOut handles POST /api/protected/signout
func (h *Handler) HandleSignOut(c *gin.Context) {
	ctx := c.Request.Context()

	raw, ok := c.Get(claimsContextKey)
	claims, isClaims := raw.(processor.BaseClaims)
	if !ok || !isClaims {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		return
	}

	if err := h.authProcessor.SignOut(ctx, claims); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleSession handles GET /api/protected/session
func (h *Handler) HandleSession(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := access.CallerID(c)
	if !ok {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		return
	}

	session, err := h.authProcessor.GetSession(ctx, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// HandleJWTMiddleware admits requests that carry a live token for an active user.
func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	tokenHeader := c.GetHeader("Authorization")

	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
		return
	}
	tokenString := strings.TrimPrefix(tokenHeader, "Bearer ")

	user, claims, err := h.authProcessor.Authenticate(ctx, tokenString)
	if err != nil {
		h.handleError(c, err)
		return
	}

	access.SetCaller(c, user.ID, access.Principal{Role: access.Role(user.Role), Status: user.Status})
	c.Set(claimsContextKey, claims)
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: user.ID.String()},
		observability.Field{Key: "user_role", Value: user.Role},
	)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, processor.ErrEmailAlreadyExists):
		apierrors.Conflict(c, "EMAIL_EXISTS", "An account with this email already exists")
	case errors.Is(err, processor.ErrInvalidCredentials):
		apierrors.Unauthorized(c, processor.ErrInvalidCredentials.Error())
	case errors.Is(err, processor.ErrProfileUnavailable):
		apierrors.Unauthorized(c, processor.ErrProfileUnavailable.Error())
	case errors.Is(err, processor.ErrAccountBanned):
		apierrors.Forbidden(c, "ACCOUNT_BANNED", processor.ErrAccountBanned.Error())
	case errors.Is(err, processor.ErrAccountPending):
		apierrors.Forbidden(c, "ACCOUNT_PENDING", processor.ErrAccountPending.Error())
	case errors.Is(err, processor.ErrExpiredToken):
		apierrors.Unauthorized(c, "Session expired, please sign in again")
	case errors.Is(err, processor.ErrRevokedToken),
		errors.Is(err, processor.ErrInvalidJWTToken),
		errors.Is(err, processor.ErrParseJWTToken):
		apierrors.Unauthorized(c, "Authorization token is missing or invalid")
	default:
		apierrors.InternalError(c, err)
	}
}
