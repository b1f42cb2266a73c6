package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"alertwatch/config"
	"alertwatch/models"
	"alertwatch/services"
	"alertwatch/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AlertInput struct {
	Title    string `json:"title" binding:"required,max=200"`
	Severity string `json:"severity"`
	Status   string `json:"status"`
}

// POST /alerts
func CreateAlert(c *gin.Context) {
	user := currentUser(c)

	var input AlertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Severity == "" {
		input.Severity = models.SeverityMedium
	}
	if input.Status == "" {
		input.Status = models.StatusOpen
	}
	if !models.ValidSeverity(input.Severity) {
		c.JSON(http.StatusBadRequest, gin.H{"severity": `"` + input.Severity + `" is not a valid choice.`})
		return
	}
	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"status": `"` + input.Status + `" is not a valid choice.`})
		return
	}

	// Owner is always the caller; client-supplied owner values are ignored.
	alert := models.Alert{
		Title:    input.Title,
		Severity: input.Severity,
		Status:   input.Status,
		OwnerID:  user.ID,
	}
	if err := config.DB.Create(&alert).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, alertResponse(&alert))
}

// GET /alerts
func ListAlerts(c *gin.Context) {
	user := currentUser(c)

	severity := c.Query("severity")
	if severity != "" && !models.ValidSeverity(severity) {
		c.JSON(http.StatusBadRequest, gin.H{"severity": `"` + severity + `" is not a valid choice.`})
		return
	}
	status := c.Query("status")
	if status != "" && !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"status": `"` + status + `" is not a valid choice.`})
		return
	}
	search := c.Query("search")

	scope := func() *gorm.DB {
		q := config.DB.Model(&models.Alert{})
		if !user.IsAdmin() {
			q = q.Where("owner_id = ?", user.ID)
		}
		if severity != "" {
			q = q.Where("severity = ?", severity)
		}
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if search != "" {
			q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
		}
		return q
	}

	var count int64
	if err := scope().Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page, size := utils.PageParams(c)

	var alerts []models.Alert
	if err := scope().Order(alertOrdering(c)).
		Offset((page - 1) * size).
		Limit(size).
		Find(&alerts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	counts, err := evidenceCounts(alerts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results := make([]gin.H, 0, len(alerts))
	for i := range alerts {
		item := alertResponse(&alerts[i])
		item["evidences_count"] = counts[alerts[i].ID]
		results = append(results, item)
	}

	c.JSON(http.StatusOK, utils.NewPage(c, count, page, size, results))
}

// GET /alerts/:id
func GetAlert(c *gin.Context) {
	alert, ok := fetchAlert(c, true)
	if !ok {
		return
	}

	evidences := make([]gin.H, 0, len(alert.Evidences))
	for i := range alert.Evidences {
		evidences = append(evidences, evidenceResponse(&alert.Evidences[i]))
	}

	resp := alertResponse(alert)
	resp["evidences"] = evidences
	c.JSON(http.StatusOK, resp)
}

type AlertUpdateInput struct {
	Title    *string `json:"title"`
	Severity *string `json:"severity"`
	Status   *string `json:"status"`
}

// PUT & PATCH /alerts/:id. Owner and created_at stay immutable; a full
// update resets omitted fields to their defaults, a partial update only
// touches the fields present in the body.
func UpdateAlert(c *gin.Context) {
	alert, ok := fetchAlert(c, false)
	if !ok {
		return
	}

	var input AlertUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	partial := c.Request.Method == http.MethodPatch
	if !partial {
		if input.Title == nil || *input.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"title": "This field is required."})
			return
		}
		if input.Severity == nil {
			def := models.SeverityMedium
			input.Severity = &def
		}
		if input.Status == nil {
			def := models.StatusOpen
			input.Status = &def
		}
	}

	updates := map[string]any{}
	if input.Title != nil {
		if *input.Title == "" || len(*input.Title) > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"title": "Ensure this field has between 1 and 200 characters."})
			return
		}
		updates["title"] = *input.Title
	}
	if input.Severity != nil {
		if !models.ValidSeverity(*input.Severity) {
			c.JSON(http.StatusBadRequest, gin.H{"severity": `"` + *input.Severity + `" is not a valid choice.`})
			return
		}
		updates["severity"] = *input.Severity
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"status": `"` + *input.Status + `" is not a valid choice.`})
			return
		}
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		if err := config.DB.Model(alert).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, alertResponse(alert))
}

// DELETE /alerts/:id: removes the alert and all of its evidence.
func DeleteAlert(c *gin.Context) {
	alert, ok := fetchAlert(c, false)
	if !ok {
		return
	}

	if err := config.DB.Select("Evidences").Delete(alert).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /alerts/:id/evidences: paginated evidence for one alert.
func ListAlertEvidences(c *gin.Context) {
	alert, ok := fetchAlert(c, false)
	if !ok {
		return
	}

	scope := func() *gorm.DB {
		return config.DB.Model(&models.Evidence{}).Where("alert_id = ?", alert.ID)
	}

	var count int64
	if err := scope().Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page, size := utils.PageParams(c)

	var evidences []models.Evidence
	if err := scope().Order("created_at DESC").
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

// fetchAlert loads the alert from the path id and runs the access
// check. Missing records and denied access are both reported as 404.
func fetchAlert(c *gin.Context, withEvidences bool) (*models.Alert, bool) {
	user := currentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}

	q := config.DB
	if withEvidences {
		q = q.Preload("Evidences", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})
	}

	var alert models.Alert
	if err := q.First(&alert, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}
	if !services.CanAccess(user, &alert) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}
	return &alert, true
}

func alertOrdering(c *gin.Context) string {
	ordering := c.Query("ordering")
	field := strings.TrimPrefix(ordering, "-")
	switch field {
	case "created_at", "severity", "status":
	default:
		// Unknown ordering fields fall back to the default.
		return "created_at DESC"
	}
	if strings.HasPrefix(ordering, "-") {
		return field + " DESC"
	}
	return field + " ASC"
}

func evidenceCounts(alerts []models.Alert) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(alerts))
	if len(alerts) == 0 {
		return counts, nil
	}

	ids := make([]uint, 0, len(alerts))
	for i := range alerts {
		ids = append(ids, alerts[i].ID)
	}

	var rows []struct {
		AlertID uint
		Total   int64
	}
	err := config.DB.Model(&models.Evidence{}).
		Select("alert_id, COUNT(*) AS total").
		Where("alert_id IN ?", ids).
		Group("alert_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.AlertID] = row.Total
	}
	return counts, nil
}
