package http

import (
	"errors"
	"net/http"

	"monad-minesweeper/internal/chain"

	"github.com/gin-gonic/gin"
)

// UpdatePlayerDataHandler signs and sends updatePlayerData for a player
// @Summary Save a score on chain
// @Tags Score
// @Accept json
// @Produce json
// @Param request body UpdatePlayerDataRequest true "Player and score"
// @Success 200 {object} chain.Receipt
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/update-player-data [post]
func UpdatePlayerDataHandler(sub chain.Submitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdatePlayerDataRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.PlayerAddress == "" || req.ScoreAmount == nil || *req.ScoreAmount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": chain.ErrInvalidSubmission.Error()})
			return
		}

		rec, err := sub.SubmitScore(c.Request.Context(), req.PlayerAddress, *req.ScoreAmount)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, rec)
		case errors.Is(err, chain.ErrInvalidSubmission):
			c.JSON(http.StatusBadRequest, gin.H{"error": rec.Error})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": rec.Error})
		}
	}
}
