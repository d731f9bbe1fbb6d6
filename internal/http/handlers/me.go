package handlers

import (
	"net/http"
	"strconv"

	"nftgame/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	// energy is derived lazily; the stored column may be stale
	status, err := h.Energy.Status(ctx, userID)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"username":     user.Username,
		"gold_balance": user.GoldBalance,
		"usd_balance":  user.USDBalance,
		"energy":       status.Energy,
		"max_energy":   status.MaxEnergy,
		"is_admin":     user.IsAdmin,
		"created_at":   user.CreatedAt,
	})
}

func (h *Handler) History(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	var txs []*domain.Transaction
	var err error
	if txType := c.Query("type"); txType != "" {
		txs, err = h.Ledger.HistoryByType(c.Request.Context(), userID, txType, limit)
	} else {
		txs, err = h.Ledger.History(c.Request.Context(), userID, limit)
	}
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
