package http

import (
	"net/http"

	"monad-minesweeper/internal/config"

	"github.com/gin-gonic/gin"
)

// GetConfigHandler returns the board constants the client renders with
// @Summary Game settings
// @Description Board size, valid mine range and the score per mine
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config [get]
func GetConfigHandler(cfg config.Game) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"boardSize":    cfg.BoardSize,
			"minMines":     cfg.Mines.Min,
			"maxMines":     cfg.Mines.Max,
			"scorePerMine": cfg.ScorePerMine,
		})
	}
}
