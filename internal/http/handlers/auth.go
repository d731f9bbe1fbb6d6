package handlers

import (
	"errors"
	"net/http"

	"nftgame/internal/domain"
	"nftgame/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
			return
		}
		econError(c, err)
		return
	}

	token, err := service.GenerateJWT(user.ID, user.IsAdmin)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  userView(user),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		econError(c, err)
		return
	}

	token, err := service.GenerateJWT(user.ID, user.IsAdmin)
	if err != nil {
		econError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userView(user),
	})
}

func userView(u *domain.User) gin.H {
	return gin.H{
		"id":           u.ID,
		"email":        u.Email,
		"username":     u.Username,
		"gold_balance": u.GoldBalance,
		"usd_balance":  u.USDBalance,
		"energy":       u.Energy,
		"max_energy":   u.MaxEnergy,
		"is_admin":     u.IsAdmin,
		"created_at":   u.CreatedAt,
	}
}
