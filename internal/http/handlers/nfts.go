package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MyNFTs returns the user's owned assets
func (h *Handler) MyNFTs(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	nfts, err := h.NFTRepo.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nfts": nfts})
}

// NFTCatalog returns the unowned catalog assets
func (h *Handler) NFTCatalog(c *gin.Context) {
	nfts, err := h.NFTRepo.ListCatalog(c.Request.Context())
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nfts": nfts})
}
