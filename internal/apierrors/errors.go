package apierrors

import (
	"net/http"
	"strconv"

	"outreach-server/internal/observability"

	"github.com/gin-gonic/gin"
)

// Codes shared by every handler. Feature handlers add their own
// (INVALID_TRANSITION, SELF_ACTION, ...) as plain strings.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeRateLimited  = "RATE_LIMIT_EXCEEDED"
	CodeInternal     = "INTERNAL_ERROR"
)

const internalMessage = "An internal error occurred. Please try again later."

var logger = observability.NewLogger()

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respond(c *gin.Context, statusCode int, code, message string) {
	ctx := observability.WithFields(c.Request.Context(),
		observability.Field{Key: "status_code", Value: statusCode},
		observability.Field{Key: "error_code", Value: code},
		observability.Field{Key: "error_message", Value: message},
	)
	logger.Info(ctx, "API error response")

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: c.GetHeader("X-Request-ID"),
	})
}

// respondWithCause logs err, which never reaches the client
func respondWithCause(c *gin.Context, statusCode int, code, message string, err error) {
	logger.Error(c.Request.Context(), message, err)
	respond(c, statusCode, code, message)
}

func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, CodeNotFound, message)
}

func BadRequest(c *gin.Context, code, message string) {
	respond(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden covers both capability failures and the account status gate
func Forbidden(c *gin.Context, code, message string) {
	respond(c, http.StatusForbidden, code, message)
}

// Conflict is used for duplicates and for state transitions that no longer apply
func Conflict(c *gin.Context, code, message string) {
	respond(c, http.StatusConflict, code, message)
}

func TooManyRequests(c *gin.Context, message string, retryAfterSeconds int) {
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	respond(c, http.StatusTooManyRequests, CodeRateLimited, message)
}

// ServiceUnavailable reports an unconfigured or failing upstream provider
func ServiceUnavailable(c *gin.Context, code, message string, internalErr error) {
	respondWithCause(c, http.StatusServiceUnavailable, code, message, internalErr)
}

// InternalError sends a sanitized 500
func InternalError(c *gin.Context, internalErr error) {
	respondWithCause(c, http.StatusInternalServerError, CodeInternal, internalMessage, internalErr)
}
