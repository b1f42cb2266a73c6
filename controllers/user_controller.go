package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /user/profile: the authenticated caller's own account.
func GetProfile(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, userResponse(user))
}
