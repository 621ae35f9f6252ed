package http

import (
	"net/http"

	"monad-minesweeper/internal/api/ws"
	"monad-minesweeper/internal/chain"
	"monad-minesweeper/internal/config"
	"monad-minesweeper/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(rm *session.Manager, hub *ws.Hub, sub chain.Submitter, cfg config.Config, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// WebSocket for FE notifications
	r.GET("/ws", hub.HandleWS)

	// --- SESSION ENDPOINTS ---
	r.POST("/session", CreateSessionHandler(rm))
	r.GET("/session/:id", BoardHandler(rm))

	owned := r.Group("/session/:id", RequireOwner(rm))
	owned.DELETE("", EndSessionHandler(rm))

	// --- GAME ENDPOINTS ---
	owned.POST("/start", StartHandler(rm, cfg.Game))
	owned.POST("/reveal", RevealHandler(rm))
	owned.POST("/flag", FlagHandler(rm))

	// --- SCORE ENDPOINTS ---
	r.POST("/api/update-player-data", UpdatePlayerDataHandler(sub))

	// --- CONFIG ENDPOINTS ---
	r.GET("/config", GetConfigHandler(cfg.Game))

	return r
}
