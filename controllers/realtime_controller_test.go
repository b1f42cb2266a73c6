package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"alertwatch/models"
	"alertwatch/services"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditStreamDeniedForNonAdmins(t *testing.T) {
	r, cfg := setupRouter(t)
	user := createUser(t, "user1", false)

	ts := httptest.NewServer(r)
	defer ts.Close()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws/audit"
	header := http.Header{"Authorization": {"Bearer " + accessToken(t, cfg, user)}}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	if conn != nil {
		conn.Close()
	}
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuditStreamReceivesReviewEvents(t *testing.T) {
	r, cfg := setupRouter(t)
	user := createUser(t, "user1", false)
	admin := createUser(t, "admin", true)

	alert := createAlert(t, user, "Watched", models.SeverityHigh, time.Now())
	evidence := createEvidence(t, alert, models.SourceWeb, "watched", time.Now())

	ts := httptest.NewServer(r)
	defer ts.Close()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws/audit"
	header := http.Header{"Authorization": {"Bearer " + accessToken(t, cfg, admin)}}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	// Give the handler a moment to register the client with the hub.
	time.Sleep(50 * time.Millisecond)

	w, _ := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/evidences/%d", evidence.ID),
		accessToken(t, cfg, user), map[string]any{"is_reviewed": true})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event services.ReviewEvent
	require.NoError(t, json.Unmarshal(msg, &event))
	assert.Equal(t, "evidence.reviewed", event.Kind)
	assert.Equal(t, evidence.ID, event.EvidenceID)
	assert.Equal(t, user.ID, event.ReviewerID)
}
