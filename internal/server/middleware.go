package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ctxUserIDKey = "netdesk.user_id"

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	access := log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		access.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// requireAuth resolves the bearer token and stashes the operator's user ID
// on the request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userID, err := s.authSvc.VerifyToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}
