package api

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/jobconnect/pipeline/internal/logger"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	actorIDKey   = "actor_id"
	actorRoleKey = "actor_role"
)

func authMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := ParseToken(secret, token)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeAuth).
				Debugf("rejected token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		role, err := models.ToRole(claims.Role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown role"})
			return
		}

		c.Set(actorIDKey, claims.UserID)
		c.Set(actorRoleKey, role)
		c.Next()
	}
}

func actorID(c *gin.Context) int64 {
	return c.GetInt64(actorIDKey)
}

func actorRole(c *gin.Context) models.Role {
	return c.MustGet(actorRoleKey).(models.Role)
}

type actorLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newActorLimiter(perSecond float32, burst int) *actorLimiter {
	return &actorLimiter{
		limiters: make(map[int64]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (l *actorLimiter) get(actor int64) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[actor]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[actor] = limiter
	}
	return limiter
}

// rateLimitMiddleware runs after auth so each actor gets its own bucket.
func rateLimitMiddleware(limiter *actorLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.get(actorID(c)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
