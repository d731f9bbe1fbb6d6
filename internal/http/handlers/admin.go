package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SetConfigRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// GetConfig lists stored config overrides (admin only)
func (h *Handler) GetConfig(c *gin.Context) {
	configs, err := h.Config.List(c.Request.Context())
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"configs": configs})
}

// SetConfig upserts one key (admin only)
func (h *Handler) SetConfig(c *gin.Context) {
	var req SetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	cfg, err := h.Config.Set(c.Request.Context(), req.Key, req.Value)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": cfg})
}
