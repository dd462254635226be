package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "lostfound.dev/device-finder-service/pkg/testing"

	"lostfound.dev/device-finder-service/pkg/auth"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/db"
	"lostfound.dev/device-finder-service/pkg/finder"
	"lostfound.dev/device-finder-service/pkg/models"
)

func setupTestServer() *RestfulServer {
	core := finder.Finder{
		Db:   *db.GetInstance(db.UseMemorySqliteDialector()),
		Feed: finder.NewFeed(),
	}
	core.WithServices(finder.ServiceOpts{
		Device:   core.GetIDevice(),
		Command:  core.GetICommand(),
		Activity: core.GetIActivity(),
	})

	rs := &RestfulServer{
		Server: gin.Default(),
		Core:   &core,
		Auth:   auth.NewService(core.Db, []byte("test-secret"), time.Hour),
		// default we use no limiter, if need, later assign it rs.RateLimiterStore = finder.NewRateLimiterStore(...)
	}

	rs.Setup()

	return rs
}

func doJSON(rs *RestfulServer, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func signUpTestUser(t *testing.T, rs *RestfulServer) string {
	t.Helper()

	email := fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])
	w := doJSON(rs, "POST", "/auth/signup", "", CredentialsRequest{Email: email, Password: "hunter22"})
	require.Equal(t, http.StatusOK, w.Code, "signup failed: %s", w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

func registerTestDevice(t *testing.T, rs *RestfulServer, token string) string {
	t.Helper()

	deviceID := uuid.NewString()
	w := doJSON(rs, "POST", "/devices/"+deviceID+"/register", token,
		RegisterDeviceRequest{Name: "My Phone", Platform: "android"})
	require.Equal(t, http.StatusOK, w.Code, "register failed: %s", w.Body.String())
	return deviceID
}

func TestHealthCheck(t *testing.T) {
	rs := setupTestServer()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequireSession(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()

	// no token
	w := doJSON(rs, "GET", "/devices", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	w = doJSON(rs, "GET", "/devices", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestSignUpAndSignIn(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	email := fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])

	w := doJSON(rs, "POST", "/auth/signup", "", CredentialsRequest{Email: email, Password: "hunter22"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, "POST", "/auth/signin", "", CredentialsRequest{Email: email, Password: "hunter22"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, email, resp["email"])
	assert.NotEmpty(t, resp["token"])
}

func TestSignUpAndSignIn_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()

	{
		// empty payload should be rejected
		w := doJSON(rs, "POST", "/auth/signup", "", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		// malformed email surfaces the fixed friendly string
		w := doJSON(rs, "POST", "/auth/signup", "",
			CredentialsRequest{Email: "not-an-email", Password: "hunter22"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please enter a valid email address.")
	}

	{
		email := fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])
		w := doJSON(rs, "POST", "/auth/signup", "", CredentialsRequest{Email: email, Password: "hunter22"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(rs, "POST", "/auth/signin", "", CredentialsRequest{Email: email, Password: "wrong-password"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Incorrect password. Please try again.")
	}
}

func TestRegisterDeviceAndList(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	token := signUpTestUser(t, rs)
	deviceID := registerTestDevice(t, rs, token)

	w := doJSON(rs, "GET", "/devices", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var views []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, deviceID, views[0]["DeviceID"])
	assert.Equal(t, true, views[0]["online"])
	assert.Equal(t, "Just now", views[0]["last_seen_text"])
}

func TestRegisterDevice_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	token := signUpTestUser(t, rs)

	{
		// unsupported platform is rejected
		w := doJSON(rs, "POST", "/devices/"+uuid.NewString()+"/register", token,
			RegisterDeviceRequest{Name: "My Phone", Platform: "windows"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		// re-registering someone else's installation is forbidden
		deviceID := registerTestDevice(t, rs, token)
		otherToken := signUpTestUser(t, rs)

		w := doJSON(rs, "POST", "/devices/"+deviceID+"/register", otherToken,
			RegisterDeviceRequest{Name: "Hijacked", Platform: "android"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
}

func TestHeartbeat(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	token := signUpTestUser(t, rs)
	deviceID := registerTestDevice(t, rs, token)

	w := doJSON(rs, "POST", "/devices/"+deviceID+"/heartbeat", token,
		HeartbeatRequest{AlertIdle: true})
	assert.Equal(t, http.StatusOK, w.Code)

	// heartbeating a device you don't own is forbidden
	otherToken := signUpTestUser(t, rs)
	w = doJSON(rs, "POST", "/devices/"+deviceID+"/heartbeat", otherToken,
		HeartbeatRequest{AlertIdle: true})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCommandLifecycle(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	token := signUpTestUser(t, rs)
	deviceID := registerTestDevice(t, rs, token)

	// send a ring command
	w := doJSON(rs, "POST", "/devices/"+deviceID+"/commands", token,
		SendCommandRequest{Type: "ring"})
	require.Equal(t, http.StatusOK, w.Code)

	var command models.Command
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &command))
	assert.Equal(t, models.CommandPending, command.Status)

	// the agent polls it back
	w = doJSON(rs, "GET", "/devices/"+deviceID+"/commands/pending", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var pending []models.Command
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, command.CommandID, pending[0].CommandID)

	// and acks it executed
	w = doJSON(rs, "POST", "/commands/"+command.CommandID+"/ack", token,
		AckCommandRequest{Status: "executed"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, "GET", "/devices/"+deviceID+"/commands/pending", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Empty(t, pending)

	// the send shows up in the activity feed
	w = doJSON(rs, "GET", "/activities", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var activities []models.Activity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &activities))
	require.Len(t, activities, 1)
	assert.Equal(t, models.CommandRing, activities[0].Action)
	assert.Equal(t, "My Phone", activities[0].DeviceName)
}

func TestSendCommand_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	token := signUpTestUser(t, rs)
	deviceID := registerTestDevice(t, rs, token)

	{
		// unsupported type is rejected before dispatch
		w := doJSON(rs, "POST", "/devices/"+deviceID+"/commands", token,
			SendCommandRequest{Type: "explode"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		// commanding an unknown device is not found
		w := doJSON(rs, "POST", "/devices/"+uuid.NewString()+"/commands", token,
			SendCommandRequest{Type: "ring"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	{
		// commanding someone else's device is forbidden
		otherToken := signUpTestUser(t, rs)
		w := doJSON(rs, "POST", "/devices/"+deviceID+"/commands", otherToken,
			SendCommandRequest{Type: "ring"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "You don't have permission to perform this action.")
	}
}

func TestAckCommand_Ownership(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	token := signUpTestUser(t, rs)
	deviceID := registerTestDevice(t, rs, token)

	w := doJSON(rs, "POST", "/devices/"+deviceID+"/commands", token,
		SendCommandRequest{Type: "ring"})
	require.Equal(t, http.StatusOK, w.Code)

	var command models.Command
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &command))

	otherToken := signUpTestUser(t, rs)
	w = doJSON(rs, "POST", "/commands/"+command.CommandID+"/ack", otherToken,
		AckCommandRequest{Status: "failed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// unknown command
	w = doJSON(rs, "POST", "/commands/"+uuid.NewString()+"/ack", token,
		AckCommandRequest{Status: "executed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenameDevice(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	token := signUpTestUser(t, rs)
	deviceID := registerTestDevice(t, rs, token)

	w := doJSON(rs, "PATCH", "/devices/"+deviceID+"/name", token,
		RenameRequest{Name: "Backup Phone"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, "GET", "/devices", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Backup Phone", views[0]["Name"])
}

func TestRenameDevice_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServer()
	token := signUpTestUser(t, rs)
	deviceID := registerTestDevice(t, rs, token)

	{
		// empty payload should be rejected
		w := doJSON(rs, "PATCH", "/devices/"+deviceID+"/name", token, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	{
		// over the length limit
		w := doJSON(rs, "PATCH", "/devices/"+deviceID+"/name", token,
			RenameRequest{Name: strings.Repeat("x", finder.MaxDeviceNameLen+1)})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid value provided.")
	}
}

func setupTestServerWithLimiter(limiter *finder.RateLimiterStore) *RestfulServer {
	core := finder.Finder{
		Db:   *db.GetInstance(db.UseMemorySqliteDialector()),
		Feed: finder.NewFeed(),
	}
	core.WithServices(finder.ServiceOpts{
		Device:   core.GetIDevice(),
		Command:  core.GetICommand(),
		Activity: core.GetIActivity(),
	})

	rs := &RestfulServer{
		Server:           gin.Default(),
		Core:             &core,
		Auth:             auth.NewService(core.Db, []byte("test-secret"), time.Hour),
		RateLimiterStore: limiter,
	}

	rs.Setup()

	return rs
}

func TestDeviceRoutesWithLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs := setupTestServerWithLimiter(finder.NewRateLimiterStore(2, 2))
	token := signUpTestUser(t, rs)
	deviceID := uuid.NewString()

	// burst of 2 allowed, third is limited
	for i := 0; i < 3; i++ {
		w := doJSON(rs, "POST", "/devices/"+deviceID+"/register", token,
			RegisterDeviceRequest{Name: "My Phone", Platform: "android"})
		if i < 2 {
			require.Equal(t, http.StatusOK, w.Code, "request %d should be allowed", i+1)
		} else {
			require.Equal(t, http.StatusTooManyRequests, w.Code, "request %d should be rate limited", i+1)
		}
	}

	// raising the device's limit opens the gate again
	w := doJSON(rs, "POST", "/devices/"+deviceID+"/limiter", token,
		LimiterRequest{Rate: 100, Burst: 100})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(rs, "POST", "/devices/"+deviceID+"/heartbeat", token,
		HeartbeatRequest{AlertIdle: true})
	assert.Equal(t, http.StatusOK, w.Code)
}
