package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/maxarisa/family-health-app/config"
	"github.com/maxarisa/family-health-app/utils"
)

var routerDBSeq atomic.Int64

type noopMailer struct{}

var _ utils.Mailer = noopMailer{}

func (noopMailer) SendFamilyInvite(to, familyName, token string) error { return nil }
func (noopMailer) SendResetCode(to, code string) error                 { return nil }
func (noopMailer) SendVerificationEmail(to, token string) error        { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "router-test-secret")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:routertest%d?mode=memory&cache=shared", routerDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	return SetupRouter(db, noopMailer{}, nil)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
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

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", body)
	return data
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w, body := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRegisterLoginAndDashboardFlow(t *testing.T) {
	r := newTestRouter(t)

	// Register without age, height, or weight.
	w, body := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "flow@example.com",
		"password": "flow-password",
		"name":     "Flow",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", body["status"])

	w, body = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "flow@example.com",
		"password": "flow-password",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := dataOf(t, body)["token"].(string)
	require.NotEmpty(t, token)

	// The optional fields come back as nulls, not zeroes.
	w, body = doJSON(t, r, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user, ok := dataOf(t, body)["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "flow@example.com", user["email"])
	assert.Nil(t, user["age"])
	assert.Nil(t, user["height"])
	assert.Nil(t, user["currentWeight"])
	assert.NotContains(t, user, "passwordHash")

	w, _ = doJSON(t, r, http.MethodPost, "/health-logs/water", token, gin.H{
		"amount": 500,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, body = doJSON(t, r, http.MethodGet, "/health-logs/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	water, ok := dataOf(t, body)["water"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 500.0, water["current"])
	assert.Equal(t, 2000.0, water["goal"])
}

func TestGoalProgressFlow(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "goal-flow@example.com",
		"password": "goal-password",
		"name":     "Goal Flow",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token, _ := dataOf(t, body)["token"].(string)
	require.NotEmpty(t, token)

	w, body = doJSON(t, r, http.MethodPost, "/goals", token, gin.H{
		"type":        "water_intake",
		"targetValue": 2000,
		"targetDate":  "2030-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	goal, ok := dataOf(t, body)["goal"].(map[string]interface{})
	require.True(t, ok)
	goalID := goal["ID"]
	if goalID == nil {
		goalID = goal["id"]
	}
	require.NotNil(t, goalID)

	for _, amount := range []float64{800, 700} {
		w, _ = doJSON(t, r, http.MethodPost, "/health-logs/water", token, gin.H{
			"amount": amount,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	path := fmt.Sprintf("/goals/%v/progress", goalID)
	w, body = doJSON(t, r, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, body)
	progress, ok := data["progress"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 75.0, progress, 0.01)
	assert.Equal(t, "active", data["status"])
	assert.Equal(t, 1500.0, data["currentValue"])
}

func TestAuthRequiredOnProtectedRoutes(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/health-logs/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "error", body["status"])

	w, _ = doJSON(t, r, http.MethodGet, "/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateAndDeleteLogOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "http-logs@example.com",
		"password": "logs-password",
		"name":     "Logs",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token, _ := dataOf(t, body)["token"].(string)

	w, body = doJSON(t, r, http.MethodPost, "/health-logs/water", token, gin.H{
		"amount": 250,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	log, ok := dataOf(t, body)["log"].(map[string]interface{})
	require.True(t, ok)
	logID := log["ID"]
	if logID == nil {
		logID = log["id"]
	}
	require.NotNil(t, logID)

	// The kind disambiguates ids across the per-metric tables.
	path := fmt.Sprintf("/health-logs/%v", logID)
	w, _ = doJSON(t, r, http.MethodPut, path, token, gin.H{"amount": 400})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = doJSON(t, r, http.MethodPut, path+"?type=water", token, gin.H{"amount": 400})
	require.Equal(t, http.StatusOK, w.Code)
	updated, ok := dataOf(t, body)["log"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 400.0, updated["amount"])

	w, _ = doJSON(t, r, http.MethodDelete, path+"?type=water", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, path+"?type=water", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
