package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openshelf/bookstore-api/pkg/auth"
	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/logger"
	"github.com/openshelf/bookstore-api/pkg/models"
	"github.com/openshelf/bookstore-api/pkg/redis"
)

const (
	requestIDKey = "request_id"
	userKey      = "current_user"
)

// RequestID tags every request with a UUID, echoed back in X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.L().Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// RateLimit enforces a per-client fixed window. Redis errors fail open.
func RateLimit(limiter *redis.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.L().Warn("rate limiter unavailable", zap.Error(err))
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				global.NewErrorBody(http.StatusTooManyRequests, "Too many requests", c.Request.URL.Path, nil))
			return
		}
		c.Next()
	}
}

// Auth resolves the bearer token into the current user and stores it on the
// context for the handlers downstream.
func Auth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				global.NewErrorBody(http.StatusUnauthorized, "Missing or invalid Authorization header", c.Request.URL.Path, nil))
			return
		}

		user, err := svc.ResolveAccessToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				global.NewErrorBody(http.StatusUnauthorized, "Invalid or expired token", c.Request.URL.Path, nil))
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// AdminOnly requires Auth to have run first.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				global.NewErrorBody(http.StatusForbidden, "Access denied", c.Request.URL.Path, nil))
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
