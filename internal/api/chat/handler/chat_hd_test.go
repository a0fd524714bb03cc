package chatHandler

import (
	"EmployeeAssistant/internal/api/chat"
	"EmployeeAssistant/internal/entity"
	"EmployeeAssistant/internal/middleware"
	jwtPkg "EmployeeAssistant/pkg/jwt"
	"EmployeeAssistant/pkg/nlp"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatService struct {
	lastLogin *entity.UserLoginData
	lastReq   chat.SendMessageRequest
	sendErr   error
	resetErr  error
	resetID   string

	// outlastDeadline makes SendMessage finish only after its context expires.
	outlastDeadline bool
}

func (f *fakeChatService) HandleTurn(context.Context, chat.Turn) chat.TurnResult {
	return chat.TurnResult{}
}

func (f *fakeChatService) SendMessage(c context.Context, login *entity.UserLoginData, req chat.SendMessageRequest) (chat.SendMessageResponse, error) {
	if f.outlastDeadline {
		<-c.Done()
	}
	f.lastLogin = login
	f.lastReq = req
	if f.sendErr != nil {
		return chat.SendMessageResponse{}, f.sendErr
	}
	return chat.SendMessageResponse{
		SessionID: "s-1",
		Response: chat.ResponseEnvelope{
			Success: true,
			Intent:  nlp.IntentGreeting,
			Message: "Hello!",
		},
	}, nil
}

func (f *fakeChatService) ResetSession(_ context.Context, login *entity.UserLoginData, sessionID string) error {
	f.lastLogin = login
	f.resetID = sessionID
	return f.resetErr
}

func (f *fakeChatService) ListIntents() chat.IntentListResponse {
	return chat.IntentListResponse{
		General: []chat.IntentSummary{{ID: nlp.IntentGreeting, Name: "Greeting"}},
	}
}

func setup(t *testing.T, opts ...func(h *ChatHandler)) (*fiber.App, *fakeChatService) {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	logger, _ := test.NewNullLogger()
	svc := &fakeChatService{}
	app := fiber.New()
	h := New(logger, validator.New(), middleware.New(logger), svc)
	for _, opt := range opts {
		opt(h)
	}
	h.Start(app)
	return app, svc
}

func bearer(t *testing.T, id string) string {
	t.Helper()
	token, _, err := jwtPkg.Sign(map[string]interface{}{"id": id, "email": id + "@example.com", "username": id}, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func postMessage(t *testing.T, app *fiber.App, body string, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func TestSendMessage(t *testing.T) {
	app, svc := setup(t)

	res := postMessage(t, app, `{"session_id":"abc","message":"hello"}`, "")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Nil(t, svc.lastLogin)
	assert.Equal(t, "abc", svc.lastReq.SessionID)

	body, _ := io.ReadAll(res.Body)
	var out chat.SendMessageResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "s-1", out.SessionID)
	assert.Equal(t, "Hello!", out.Response.Message)
	assert.Contains(t, string(body), `"requires_auth":false`)
}

func TestSendMessage_WithToken(t *testing.T) {
	app, svc := setup(t)

	res := postMessage(t, app, `{"message":"how many leaves"}`, bearer(t, "E001"))
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	require.NotNil(t, svc.lastLogin)
	assert.Equal(t, "E001", svc.lastLogin.ID)

	res = postMessage(t, app, `{"message":"hello"}`, "Bearer not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestSendMessage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		sendErr error
		status  int
	}{
		{name: "missing message", body: `{"session_id":"abc"}`, status: fiber.StatusBadRequest},
		{name: "malformed body", body: `{"message":`, status: fiber.StatusBadRequest},
		{name: "forbidden session", body: `{"message":"hi"}`, sendErr: chat.ErrSessionForbidden, status: fiber.StatusForbidden},
		{name: "store down", body: `{"message":"hi"}`, sendErr: chat.ErrSessionStore, status: fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, svc := setup(t)
			svc.sendErr = tt.sendErr

			res := postMessage(t, app, tt.body, "")
			assert.Equal(t, tt.status, res.StatusCode)
		})
	}
}

func TestSendMessage_PastDeadline(t *testing.T) {
	shortTimeout := func(h *ChatHandler) { h.sendTimeout = 20 * time.Millisecond }

	tests := []struct {
		name       string
		sendErr    error
		wantStatus int
	}{
		{name: "completed turn is reported", wantStatus: fiber.StatusOK},
		{name: "turn aborted by deadline", sendErr: context.DeadlineExceeded, wantStatus: fiber.StatusRequestTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, svc := setup(t, shortTimeout)
			svc.outlastDeadline = true
			svc.sendErr = tt.sendErr

			res := postMessage(t, app, `{"session_id":"abc","message":"hello"}`, "")
			assert.Equal(t, tt.wantStatus, res.StatusCode)
		})
	}
}

func TestListIntents(t *testing.T) {
	app, _ := setup(t)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/chat/intents", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), `"greeting"`)
}

func TestResetSession(t *testing.T) {
	app, svc := setup(t)

	req := httptest.NewRequest(http.MethodDelete, "/chat/sessions/abc", nil)
	req.Header.Set("Authorization", bearer(t, "E002"))
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, res.StatusCode)
	assert.Equal(t, "abc", svc.resetID)
	assert.Equal(t, "E002", svc.lastLogin.ID)

	svc.resetErr = chat.ErrSessionNotFound
	res, err = app.Test(httptest.NewRequest(http.MethodDelete, "/chat/sessions/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app, _ := setup(t)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/chat/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, res.StatusCode)
}

func TestDecodeFrame(t *testing.T) {
	req := decodeFrame([]byte(`{"session_id":"abc","message":"hello"}`))
	assert.Equal(t, chat.SendMessageRequest{SessionID: "abc", Message: "hello"}, req)

	req = decodeFrame([]byte("  who is my manager?  "))
	assert.Equal(t, chat.SendMessageRequest{Message: "who is my manager?"}, req)

	req = decodeFrame([]byte(`{not json`))
	assert.Equal(t, "{not json", req.Message)
}
