package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BattleRequest struct {
	EntryFee int64 `json:"entry_fee" binding:"required,min=1"`
}

func (h *Handler) BattleStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req BattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry fee"})
		return
	}

	outcome, err := h.Battle.Start(c.Request.Context(), userID, req.EntryFee)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"battle": outcome})
}

func (h *Handler) BattleHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	battles, err := h.Battle.History(c.Request.Context(), userID, limit)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"battles": battles})
}
