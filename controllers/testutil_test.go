package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alertwatch/config"
	"alertwatch/models"
	"alertwatch/routes"
	"alertwatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:        "test-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		RateLimitEnabled: false,
	}
}

// setupRouter wires the full router against a fresh in-memory database.
func setupRouter(t *testing.T) (*gin.Engine, config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Alert{},
		&models.Evidence{},
	))

	config.DB = db
	cfg := testConfig()
	return routes.SetupRouter(cfg), cfg
}

func createUser(t *testing.T, username string, admin bool) *models.User {
	t.Helper()
	hashed, err := utils.HashPassword("s3cure-pass")
	require.NoError(t, err)

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hashed,
		IsStaff:  admin,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return &user
}

func accessToken(t *testing.T, cfg config.Config, user *models.User) string {
	t.Helper()
	pair, err := utils.GenerateTokenPair(user.ID, cfg)
	require.NoError(t, err)
	return pair.Access
}

func createAlert(t *testing.T, owner *models.User, title, severity string, createdAt time.Time) *models.Alert {
	t.Helper()
	alert := models.Alert{
		Title:     title,
		Severity:  severity,
		Status:    models.StatusOpen,
		OwnerID:   owner.ID,
		CreatedAt: createdAt,
	}
	require.NoError(t, config.DB.Create(&alert).Error)
	return &alert
}

func createEvidence(t *testing.T, alert *models.Alert, source, summary string, createdAt time.Time) *models.Evidence {
	t.Helper()
	evidence := models.Evidence{
		AlertID:   alert.ID,
		Source:    source,
		Summary:   summary,
		CreatedAt: createdAt,
	}
	require.NoError(t, config.DB.Create(&evidence).Error)
	return &evidence
}

// doJSON performs a request with an optional bearer token and JSON body
// and decodes the JSON response into a map.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && w.Code != http.StatusNoContent {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func resultIDs(t *testing.T, page map[string]any) []uint {
	t.Helper()
	raw, ok := page["results"].([]any)
	require.True(t, ok, "expected results array, got %v", page)
	ids := make([]uint, 0, len(raw))
	for _, item := range raw {
		m := item.(map[string]any)
		ids = append(ids, uint(m["id"].(float64)))
	}
	return ids
}
