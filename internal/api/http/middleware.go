package http

import (
	"net/http"
	"time"

	"monad-minesweeper/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	walletHeader = "X-Wallet-Address"
	sessionKey   = "session"
)

func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// RequireOwner loads the session named in the path and rejects callers whose
// wallet header does not match the session's player.
func RequireOwner(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := rm.Get(c.Param("id"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if !s.OwnedBy(c.GetHeader(walletHeader)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "wallet does not own this session"})
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
