package http

import (
	"errors"
	"net/http"

	"monad-minesweeper/internal/config"
	"monad-minesweeper/internal/game"
	"monad-minesweeper/internal/session"

	"github.com/gin-gonic/gin"
)

// @Summary Open a game session
// @Description Requires a connected wallet; resolves the player's username
// @Tags Session
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Wallet"
// @Success 200 {object} map[string]interface{}
// @Router /session [post]
func CreateSessionHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		_ = c.ShouldBindJSON(&req)
		if req.WalletAddress == "" {
			req.WalletAddress = c.GetHeader(walletHeader)
		}
		s, err := rm.CreateSession(c.Request.Context(), req.WalletAddress)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		view, _ := rm.View(s.ID)
		c.JSON(http.StatusOK, gin.H{
			"sessionId": s.ID,
			"player":    s.Player,
			"username":  s.Username,
			"board":     view,
		})
	}
}

// @Summary Current board
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Router /session/{id} [get]
func BoardHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := rm.View(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"board": view})
	}
}

// @Summary End a session
// @Tags Session
// @Param id path string true "Session ID"
// @Success 204
// @Router /session/{id} [delete]
func EndSessionHandler(rm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := rm.End(currentSession(c).ID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary Start a round
// @Description Mine count must lie in the configured range
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body StartRequest true "Mine count"
// @Success 200 {object} map[string]interface{}
// @Router /session/{id}/start [post]
func StartHandler(rm *session.Manager, cfg config.Game) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		view, err := rm.Start(currentSession(c).ID, req.MineCount)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"board": view})
		case errors.Is(err, game.ErrAlreadyPlaying):
			c.JSON(http.StatusOK, gin.H{"board": view, "ignored": true})
		case errors.Is(err, game.ErrInvalidMineCount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "mines range: " + cfg.Mines.String(), "board": view})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

// @Summary Reveal a cell
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body CellRequest true "Cell"
// @Success 200 {object} map[string]interface{}
// @Router /session/{id}/reveal [post]
func RevealHandler(rm *session.Manager) gin.HandlerFunc {
	return cellHandler(rm.Reveal)
}

// @Summary Toggle a flag
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body CellRequest true "Cell"
// @Success 200 {object} map[string]interface{}
// @Router /session/{id}/flag [post]
func FlagHandler(rm *session.Manager) gin.HandlerFunc {
	return cellHandler(rm.Flag)
}

func cellHandler(action func(id string, row, col int) (session.Move, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		mv, err := action(currentSession(c).ID, req.Row, req.Col)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"board": mv.Board, "result": mv.Result})
		case errors.Is(err, game.ErrInvalidCellAction):
			// disallowed clicks are ignored, not reported
			c.JSON(http.StatusOK, gin.H{"board": mv.Board, "result": mv.Result, "ignored": true})
		case errors.Is(err, game.ErrOutOfBounds):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, session.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}
