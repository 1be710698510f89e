package access

import (
	"outreach-server/internal/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// gin context keys set by the JWT middleware
const (
	ContextUserID = "User-ID"
	ContextRole   = "User-Role"
	ContextStatus = "User-Status"
)

func SetCaller(c *gin.Context, id uuid.UUID, p Principal) {
	c.Set(ContextUserID, id.String())
	c.Set(ContextRole, string(p.Role))
	c.Set(ContextStatus, p.Status)
}

// CallerID returns the authenticated user id, or false outside the protected group.
func CallerID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func CallerPrincipal(c *gin.Context) Principal {
	return Principal{
		Role:   Role(c.GetString(ContextRole)),
		Status: c.GetString(ContextStatus),
	}
}

// Require aborts with 401 when no caller is set and 403 unless the caller
// satisfies capability.
func Require(capability Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CallerID(c); !ok {
			apierrors.Unauthorized(c, "Authentication required")
			return
		}
		if !capability(CallerPrincipal(c)) {
			apierrors.Forbidden(c, "FORBIDDEN", "You do not have permission to perform this action")
			return
		}
		c.Next()
	}
}
