package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
	"github.com/yungbote/skillbridge-backend/internal/realtime"
)

type testServer struct {
	app *App
	srv *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := chdirTemp(t)
	t.Setenv("DATABASE_URL", "sqlite:///"+filepath.ToSlash(filepath.Join(dir, "e2e.db")))
	t.Setenv("SECRET_KEY", "e2e-secret")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	a, err := New(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, a.Bus.StartForwarder(ctx, a.Hub.Broadcast))

	srv := httptest.NewServer(a.Server.Engine)
	t.Cleanup(func() {
		srv.Close()
		cancel()
		a.Close()
	})
	return &testServer{app: a, srv: srv}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, "login %s: %v", email, body)
	tok, _ := body["access_token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func (ts *testServer) dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.srv.URL, "http") + "/ws/notifications" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) realtime.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f realtime.Frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Healthy", body["message"])

	status, body = ts.do(t, http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "up", body["database"])

	resp, err := ts.srv.Client().Get(ts.srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterThenMe(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "new@example.com", "password": "s3cret!", "full_name": "New Person",
	})
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, "bearer", body["token_type"])
	tok := body["access_token"].(string)

	status, body = ts.do(t, http.MethodGet, "/users/me", "Bearer "+tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "new@example.com", body["email"])
	assert.Equal(t, "New Person", body["full_name"])
	assert.Equal(t, false, body["is_mentor"])

	// Scheme matching is case-insensitive.
	status, _ = ts.do(t, http.MethodGet, "/users/me", "bearer "+tok, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = ts.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "new@example.com", "password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", body["error"].(map[string]any)["message"])

	req, err := http.NewRequest(http.MethodGet, ts.srv.URL+"/notifications", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var notes []struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "Welcome to SkillBridge, New Person!", notes[0].Message)
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	ts := newTestServer(t)

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req, err := http.NewRequest(http.MethodGet, ts.srv.URL+"/users/me", nil)
		require.NoError(t, err)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := ts.srv.Client().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"), "header %q", header)
	}

	status, _ := ts.do(t, http.MethodGet, "/modules/abc", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSeededLearningFlow(t *testing.T) {
	ts := newTestServer(t)
	tok := "Bearer " + ts.login(t, "demo@example.com", "demo1234")

	req, err := http.NewRequest(http.MethodGet, ts.srv.URL+"/modules", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", tok)
	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	var modules []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&modules))
	resp.Body.Close()
	require.NotEmpty(t, modules)
	assert.Equal(t, "Intro to SkillBridge", modules[0].Title)

	req, err = http.NewRequest(http.MethodGet, fmt.Sprintf("%s/modules/%d/lessons", ts.srv.URL, modules[0].ID), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", tok)
	resp, err = ts.srv.Client().Do(req)
	require.NoError(t, err)
	var lessons []struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lessons))
	resp.Body.Close()
	require.Len(t, lessons, 2)

	status, body := ts.do(t, http.MethodGet, "/modules/999999", tok, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Module not found", body["error"].(map[string]any)["message"])

	status, body = ts.do(t, http.MethodPost, fmt.Sprintf("/lessons/%d/complete", lessons[0].ID), tok, nil)
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, float64(50), body["progress_percent"])
	assert.Equal(t, "in_progress", body["progress_status"])

	status, body = ts.do(t, http.MethodPost, fmt.Sprintf("/lessons/%d/complete", lessons[1].ID), tok, nil)
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, float64(100), body["progress_percent"])
	assert.Equal(t, "completed", body["progress_status"])
	assert.NotNil(t, body["certificate_id"])

	status, _ = ts.do(t, http.MethodGet, "/lessons/abc/complete", tok, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, body = ts.do(t, http.MethodPost, "/lessons/abc/complete", tok, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_id", body["error"].(map[string]any)["code"])
}

func TestWebSocketFlow(t *testing.T) {
	ts := newTestServer(t)
	raw := ts.login(t, "demo@example.com", "demo1234")

	conn := ts.dial(t, "?token="+raw)
	welcome := readFrame(t, conn)
	require.Equal(t, realtime.FrameWelcome, welcome.Type)
	require.NotZero(t, welcome.UserID)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	pong := readFrame(t, conn)
	assert.Equal(t, realtime.FrameNotification, pong.Type)
	assert.Equal(t, "pong", pong.Message)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	ack := readFrame(t, conn)
	assert.Equal(t, realtime.FrameAck, ack.Type)
	require.NotNil(t, ack.Received)
	assert.Equal(t, "hello", *ack.Received)

	// A mentorship request to the demo mentor is pushed to the mentor's socket.
	mentorTok := ts.login(t, "mentor@example.com", "mentor1234")
	mentorConn := ts.dial(t, "?token="+mentorTok)
	mentorWelcome := readFrame(t, mentorConn)
	require.Equal(t, realtime.FrameWelcome, mentorWelcome.Type)

	status, body := ts.do(t, http.MethodPost, "/mentorship/requests", "Bearer "+raw, map[string]any{
		"mentor_id": mentorWelcome.UserID,
		"message":   "Could you review my resume?",
	})
	require.Equal(t, http.StatusOK, status, "%v", body)

	pushed := readFrame(t, mentorConn)
	assert.Equal(t, realtime.FrameNotification, pushed.Type)
	assert.NotZero(t, pushed.NotificationID)
	assert.Equal(t, "Demo User requested mentorship", pushed.Message)
}

func TestWebSocketRejectsBadTokens(t *testing.T) {
	ts := newTestServer(t)

	for query, want := range map[string]string{
		"":                "token required",
		"?token=garbage":  "invalid token",
		"?token=%20%20%20": "token required",
	} {
		conn := ts.dial(t, query)
		f := readFrame(t, conn)
		assert.Equal(t, realtime.FrameError, f.Type, "query %q", query)
		assert.Equal(t, want, f.Message, "query %q", query)

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, _, err := conn.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.ClosePolicyViolation), "query %q: %v", query, err)
	}
}

func TestUsageDocument(t *testing.T) {
	ts := newTestServer(t)
	status, body := ts.do(t, http.MethodGet, "/ws/usage", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["query"], "token=")
}
