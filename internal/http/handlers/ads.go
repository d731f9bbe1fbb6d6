package handlers

import (
	"net/http"

	"nftgame/internal/domain"

	"github.com/gin-gonic/gin"
)

type WatchAdRequest struct {
	Provider string `json:"provider" binding:"required"`
	AdToken  string `json:"ad_token" binding:"required"`
}

// AdToken issues a signed single-use token for the requested provider
func (h *Handler) AdToken(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	provider := domain.AdProvider(c.Query("provider"))
	token, err := h.Ads.IssueToken(userID, provider)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// AdStatus reports how many rewarded views remain in the current UTC
// day.
func (h *Handler) AdStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	remaining, err := h.Ads.RemainingToday(c.Request.Context(), userID)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"remaining": remaining})
}

// AdWatch records a completed ad view and credits the reward
func (h *Handler) AdWatch(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req WatchAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.Ads.Watch(c.Request.Context(), userID, domain.AdProvider(req.Provider), req.AdToken)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"reward":    result.Reward,
		"remaining": result.Remaining,
	})
}
