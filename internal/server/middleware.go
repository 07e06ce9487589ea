package server

import (
	"crypto/subtle"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminRequired gates admin routes behind a shared token. When no token
// is configured the routes are disabled outright.
func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.AdminToken == "" {
			AbortWithError(c, ErrForbidden)
			return
		}

		token := strings.TrimSpace(c.GetHeader("X-Admin-Token"))
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminToken)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Next()
	}
}

// GenerateRateLimit throttles the public generation endpoint per
// business. Without redis the limiter is absent and requests pass.
func (s *Server) GenerateRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil {
			c.Next()
			return
		}

		slug := strings.TrimSpace(c.Param("slug"))
		key := "ratelimit:generate:" + slug

		res, err := s.limiter.Allow(c.Request.Context(), key, s.cfg.GenerateRate, s.cfg.GenerateBurst)
		if err != nil {
			// Redis trouble must not take the endpoint down.
			s.log.Warn("generate rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !res.Allowed {
			retryAfter := int64(res.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			AbortWithError(c, ErrRateLimited)
			return
		}

		c.Next()
	}
}
