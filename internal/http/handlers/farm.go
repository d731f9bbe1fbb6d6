package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) FarmStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	stats, err := h.Farm.Stats(c.Request.Context(), userID)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) FarmClaim(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	result, err := h.Farm.Claim(c.Request.Context(), userID)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
