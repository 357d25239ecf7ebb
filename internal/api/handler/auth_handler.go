package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkwise/internal/domain"
	"parkwise/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(as *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var dto domain.RegisterDriverDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		failMsg(c, "Missing required fields")
		return
	}

	driver, err := h.authService.Register(c.Request.Context(), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account created", "driver_id": driver.ID})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var dto domain.LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		failMsg(c, "Email and password required")
		return
	}

	driver, err := h.authService.Login(c.Request.Context(), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"driver_id": driver.ID,
		"full_name": driver.FullName,
		"email":     driver.Email,
	})
}
