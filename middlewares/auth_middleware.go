package middlewares

import (
	"net/http"
	"strings"

	"alertwatch/config"
	"alertwatch/services"
	"alertwatch/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer access token and loads the
// requesting user into the context.
func AuthMiddleware(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Given token not valid for any token type"})
			return
		}

		// Refresh tokens cannot be used to authenticate requests.
		if claims.TokenType != utils.TokenTypeAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Given token not valid for any token type"})
			return
		}

		user, err := services.FindUserByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "User not found"})
			return
		}

		c.Set("currentUser", user)
		c.Set("userID", user.ID)

		c.Next()
	}
}
