package controllers

import (
	"net/http"
	"time"

	"capster-board/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// AuthController issues staff tokens against a single shared password hash.
type AuthController struct {
	passwordHash string
	secret       string
	expiry       time.Duration
}

func NewAuthController(passwordHash, secret string, expiry time.Duration) *AuthController {
	return &AuthController{passwordHash: passwordHash, secret: secret, expiry: expiry}
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	// Check password
	if !utils.CheckPasswordHash(input.Password, ac.passwordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// Generate token
	token, err := utils.GenerateToken("staff", ac.secret, ac.expiry)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.SetCookie(
		"token",
		token,
		int(ac.expiry.Seconds()),
		"/",
		"",
		true,
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(ac.expiry.Seconds()),
	})
}
