package ratelimit

import (
	"fmt"
	"strconv"

	"outreach-server/internal/apierrors"
	"outreach-server/internal/observability"

	"github.com/gin-gonic/gin"
)

// Middleware limits requests by the signed-in user, falling back to the
// client IP. It must run after the auth middleware. A failing limiter lets
// the request through.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id := observability.GetRealClientIP(c)
		if userID, ok := c.Get("User-ID"); ok {
			id = fmt.Sprint(userID)
		}
		ctx = observability.WithFields(ctx,
			observability.Field{Key: "rate_limit_key", Value: id},
			observability.Field{Key: "rate_limit_rpm", Value: s.limit},
		)

		result, err := s.Check(ctx, id)
		if err != nil {
			s.logger.Error(ctx, "rate limit check failed", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			s.logger.Warn(ctx, "rate limit exceeded")
			apierrors.TooManyRequests(c, "Rate limit exceeded", (result.RetryAfterMs+999)/1000)
			return
		}

		c.Next()
	}
}
