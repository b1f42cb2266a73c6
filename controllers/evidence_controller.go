package controllers

import (
	"net/http"
	"strconv"
	"time"

	"alertwatch/config"
	"alertwatch/models"
	"alertwatch/services"
	"alertwatch/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EvidenceInput struct {
	Alert   uint   `json:"alert" binding:"required"`
	Source  string `json:"source"`
	Summary string `json:"summary" binding:"required"`
}

// POST /evidences: attaches evidence to an alert the caller can access.
func CreateEvidence(c *gin.Context) {
	user := currentUser(c)

	var input EvidenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Source == "" {
		input.Source = models.SourceWeb
	}
	if !models.ValidSource(input.Source) {
		c.JSON(http.StatusBadRequest, gin.H{"source": `"` + input.Source + `" is not a valid choice.`})
		return
	}

	var alert models.Alert
	if err := config.DB.First(&alert, input.Alert).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if !services.CanAccess(user, &alert) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	evidence := models.Evidence{
		AlertID: alert.ID,
		Source:  input.Source,
		Summary: input.Summary,
	}
	if err := config.DB.Create(&evidence).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, evidenceResponse(&evidence))
}

// GET /evidences
func ListEvidences(c *gin.Context) {
	user := currentUser(c)

	scope := func() *gorm.DB {
		q := config.DB.Model(&models.Evidence{})
		if !user.IsAdmin() {
			q = q.Joins("JOIN alerts ON alerts.id = evidences.alert_id").
				Where("alerts.owner_id = ?", user.ID)
		}
		return q
	}

	var count int64
	if err := scope().Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page, size := utils.PageParams(c)

	var evidences []models.Evidence
	if err := scope().Order("evidences.created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&evidences).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := make([]gin.H, 0, len(evidences))
	for i := range evidences {
		results = append(results, evidenceResponse(&evidences[i]))
	}

	c.JSON(http.StatusOK, utils.NewPage(c, count, page, size, results))
}

// GET /evidences/:id
func GetEvidence(c *gin.Context) {
	evidence, ok := fetchEvidence(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, evidenceResponse(evidence))
}

// DELETE /evidences/:id
func DeleteEvidence(c *gin.Context) {
	evidence, ok := fetchEvidence(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(evidence).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// PATCH & PUT /evidences/:id: the review toggle. The body must carry
// exactly one field, is_reviewed; anything else is rejected with the
// stored record untouched.
func ReviewEvidence(c *gin.Context) {
	user := currentUser(c)

	evidence, ok := fetchEvidence(c)
	if !ok {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	raw, present := body["is_reviewed"]
	if !present || len(body) != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Only is_reviewed field can be updated"})
		return
	}
	reviewed, isBool := raw.(bool)
	if !isBool {
		c.JSON(http.StatusBadRequest, gin.H{"is_reviewed": "Must be a valid boolean."})
		return
	}

	switch {
	case reviewed && !evidence.IsReviewed:
		// The reviewer is whoever performs the action, not necessarily
		// the alert's owner.
		now := time.Now()
		updates := map[string]any{
			"is_reviewed":    true,
			"reviewed_by_id": user.ID,
			"reviewed_at":    now,
		}
		if err := config.DB.Model(evidence).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		evidence.IsReviewed = true
		evidence.ReviewedByID = &user.ID
		evidence.ReviewedAt = &now

		services.EmitReviewEvent(user.ID, evidence.ID)

	case !reviewed && evidence.IsReviewed:
		updates := map[string]any{
			"is_reviewed":    false,
			"reviewed_by_id": nil,
			"reviewed_at":    nil,
		}
		if err := config.DB.Model(evidence).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		evidence.IsReviewed = false
		evidence.ReviewedByID = nil
		evidence.ReviewedAt = nil

	default:
		// State already matches; reviewer and timestamp stay untouched.
	}

	c.JSON(http.StatusOK, evidenceResponse(evidence))
}

// fetchEvidence loads the evidence with its parent alert and runs the
// access check, reporting 404 for both missing and denied records.
func fetchEvidence(c *gin.Context) (*models.Evidence, bool) {
	user := currentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}

	var evidence models.Evidence
	if err := config.DB.Preload("Alert").First(&evidence, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}
	if !services.CanAccess(user, &evidence) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}
	return &evidence, true
}
