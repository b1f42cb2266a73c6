package controllers

import (
	"alertwatch/models"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) *models.User {
	v, _ := c.Get("currentUser")
	user, _ := v.(*models.User)
	return user
}

func userResponse(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}
}

func alertResponse(a *models.Alert) gin.H {
	return gin.H{
		"id":         a.ID,
		"title":      a.Title,
		"severity":   a.Severity,
		"status":     a.Status,
		"created_at": a.CreatedAt,
		"owner":      a.OwnerID,
	}
}

func evidenceResponse(e *models.Evidence) gin.H {
	return gin.H{
		"id":          e.ID,
		"alert":       e.AlertID,
		"source":      e.Source,
		"summary":     e.Summary,
		"is_reviewed": e.IsReviewed,
		"created_at":  e.CreatedAt,
		"reviewed_by": e.ReviewedByID,
		"reviewed_at": e.ReviewedAt,
	}
}
