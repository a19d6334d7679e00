package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"subscriptionservice/internal/database/dbtest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := dbtest.Open(t)
	return NewRouter(db, zaptest.NewLogger(t), Options{TokenValidity: time.Hour})
}

func doJSON(t *testing.T, r http.Handler, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func login(t *testing.T, r http.Handler, serviceID, password string) string {
	t.Helper()
	w, body := doJSON(t, r, "/api/auth/login", gin.H{"service_id": serviceID, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func TestRouter_SubscriptionLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, "/api/auth/register", gin.H{"service_id": "svcA", "password": "p1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "svcA", body["service_id"])

	tok := login(t, r, "svcA", "p1")
	assert.Equal(t, tok, login(t, r, "svcA", "p1"), "unexpired token is reused")

	req := gin.H{"service_id": "svcA", "token_id": tok, "phone_number": "+15551234"}

	w, body = doJSON(t, r, "/api/subscription/subscribe", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	subID, _ := body["subscription_id"].(string)
	require.NotEmpty(t, subID)

	w, body = doJSON(t, r, "/api/subscription/status", req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "subscribed", body["status"])
	assert.NotNil(t, body["subscription_date"])

	w, body = doJSON(t, r, "/api/subscription/subscribe", req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_SUBSCRIBED", body["code"])
	assert.Equal(t, "Already subscribed", body["message"])

	w, body = doJSON(t, r, "/api/subscription/unsubscribe", req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Unsubscribed successfully", body["message"])

	w, body = doJSON(t, r, "/api/subscription/status", req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "not_subscribed", body["status"])
	v, present := body["subscription_date"]
	assert.True(t, present)
	assert.Nil(t, v)

	w, body = doJSON(t, r, "/api/subscription/unsubscribe", req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_SUBSCRIBED", body["code"])

	w, body = doJSON(t, r, "/api/subscription/subscribe", req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, subID, body["subscription_id"])

	w, body = doJSON(t, r, "/api/subscription/list", gin.H{"service_id": "svcA", "token_id": tok})
	require.Equal(t, http.StatusOK, w.Code)
	subs, _ := body["subscriptions"].([]any)
	require.Len(t, subs, 1)

	w, _ = doJSON(t, r, "/api/subscription/delete", req)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, r, "/api/subscription/delete", req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Subscription not found", body["message"])

	w, body = doJSON(t, r, "/api/subscription/list", gin.H{"service_id": "svcA", "token_id": tok})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No subscriptions found", body["message"])
}

func TestRouter_AuthErrors(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, "/api/auth/register", gin.H{"service_id": "svcA", "password": "p1"})
	require.Equal(t, http.StatusCreated, w.Code)

	cases := []struct {
		name   string
		path   string
		body   any
		status int
		code   string
	}{
		{name: "duplicate register", path: "/api/auth/register", body: gin.H{"service_id": "svcA", "password": "x"}, status: http.StatusConflict, code: "DUPLICATE_SERVICE"},
		{name: "register missing password", path: "/api/auth/register", body: gin.H{"service_id": "svcB"}, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "login unknown service", path: "/api/auth/login", body: gin.H{"service_id": "ghost", "password": "p1"}, status: http.StatusBadRequest, code: "INVALID_SERVICE"},
		{name: "login wrong password", path: "/api/auth/login", body: gin.H{"service_id": "svcA", "password": "nope"}, status: http.StatusUnauthorized, code: "INVALID_CREDENTIALS"},
		{name: "subscribe unknown token", path: "/api/subscription/subscribe", body: gin.H{"service_id": "svcA", "token_id": "bogus", "phone_number": "+1"}, status: http.StatusUnauthorized, code: "INVALID_TOKEN"},
		{name: "subscribe missing phone", path: "/api/subscription/subscribe", body: gin.H{"service_id": "svcA", "token_id": "bogus"}, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "status unknown service", path: "/api/subscription/status", body: gin.H{"service_id": "ghost", "token_id": "bogus", "phone_number": "+1"}, status: http.StatusBadRequest, code: "INVALID_SERVICE"},
		{name: "list bad range type", path: "/api/subscription/list", body: gin.H{"service_id": "svcA", "token_id": "t", "from": "yesterday"}, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := doJSON(t, r, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.Equal(t, tc.code, body["code"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestRouter_MalformedJSON(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/subscription/subscribe", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// Drive one login so the counter has a sample to expose.
	doJSON(t, r, "/api/auth/login", gin.H{"service_id": "ghost", "password": "x"})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "subscription_service_login_attempts_total")
	assert.Contains(t, w.Body.String(), "subscription_service_http_request_duration_seconds")
}
