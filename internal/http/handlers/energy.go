package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type BuyEnergyRequest struct {
	Amount int `json:"amount" binding:"required,min=1"`
}

func (h *Handler) EnergyBuy(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req BuyEnergyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	if err := h.Energy.Buy(c.Request.Context(), userID, req.Amount); err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) EnergyStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	status, err := h.Energy.Status(c.Request.Context(), userID)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
