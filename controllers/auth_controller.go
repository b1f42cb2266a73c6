package controllers

import (
	"net/http"

	"alertwatch/config"
	"alertwatch/services"
	"alertwatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthController bundles the token configuration and the injected
// refresh-token blacklist used by logout and refresh.
type AuthController struct {
	cfg       config.Config
	blacklist *services.TokenBlacklist
}

func NewAuthController(cfg config.Config, blacklist *services.TokenBlacklist) *AuthController {
	return &AuthController{cfg: cfg, blacklist: blacklist}
}

type RegisterInput struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// Register creates an account and immediately issues a token pair.
func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Password != input.PasswordConfirm {
		c.JSON(http.StatusBadRequest, gin.H{"password_confirm": "Passwords do not match"})
		return
	}
	if err := utils.ValidatePassword(input.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"password": err.Error()})
		return
	}

	user, err := services.RegisterUser(input.Username, input.Email, input.Password, input.FirstName, input.LastName)
	if err != nil {
		switch err {
		case services.ErrUsernameTaken:
			c.JSON(http.StatusBadRequest, gin.H{"username": err.Error()})
		case services.ErrEmailTaken:
			c.JSON(http.StatusBadRequest, gin.H{"email": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	tokens, err := utils.GenerateTokenPair(user.ID, a.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	utils.Logger.Info("new user registered",
		zap.String("username", user.Username),
		zap.Uint("user_id", user.ID),
	)

	c.JSON(http.StatusCreated, gin.H{
		"user":    userResponse(user),
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
	})
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a token pair.
func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.AuthenticateUser(input.Username, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": services.ErrInvalidCredentials.Error()})
		return
	}

	tokens, err := utils.GenerateTokenPair(user.ID, a.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	utils.Logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.Uint("user_id", user.ID),
	)

	c.JSON(http.StatusOK, gin.H{
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
	})
}

type refreshInput struct {
	Refresh string `json:"refresh"`
}

// Logout revokes the supplied refresh token so it can never be
// exchanged again. Requires an authenticated caller.
func (a *AuthController) Logout(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Refresh token is required"})
		return
	}

	claims, err := utils.ParseToken(input.Refresh, a.cfg)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh || claims.ExpiresAt == nil || a.blacklist.IsRevoked(claims.ID) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid or expired refresh token"})
		return
	}

	a.blacklist.Revoke(claims.ID, claims.ExpiresAt.Time)

	user := currentUser(c)
	utils.Logger.Info("user logged out",
		zap.String("username", user.Username),
		zap.Uint("user_id", user.ID),
	)

	c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out"})
}

// RefreshToken exchanges a valid, unrevoked refresh token for a new
// access token.
func (a *AuthController) RefreshToken(c *gin.Context) {
	var input refreshInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"refresh": "This field is required."})
		return
	}

	claims, err := utils.ParseToken(input.Refresh, a.cfg)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh || a.blacklist.IsRevoked(claims.ID) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}

	access, err := utils.GenerateAccessToken(claims.UserID, a.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

type verifyInput struct {
	Token string `json:"token"`
}

// VerifyToken checks signature and expiry of any token type.
func (a *AuthController) VerifyToken(c *gin.Context) {
	var input verifyInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"token": "This field is required."})
		return
	}

	if _, err := utils.ParseToken(input.Token, a.cfg); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
