package middleware

import (
	jwtPkg "EmployeeAssistant/pkg/jwt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestApp(t *testing.T, guard func(m Middleware) fiber.Handler) *fiber.App {
	t.Helper()
	t.Setenv(AccessTokenSecret, "test-secret")

	logger, _ := test.NewNullLogger()
	m := New(logger)

	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Get("/whoami", guard(m), func(c *fiber.Ctx) error {
		user, err := jwtPkg.GetUserLoginData(c)
		if err != nil {
			return c.SendString("anonymous")
		}
		return c.SendString(user.ID)
	})
	return app
}

func signedToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	token, _, err := jwtPkg.Sign(claims, time.Minute)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	return resp.StatusCode, string(buf[:n])
}

func TestTokenMiddleware(t *testing.T) {
	app := newTestApp(t, func(m Middleware) fiber.Handler { return m.NewTokenMiddleware })
	valid := signedToken(t, map[string]interface{}{"id": "E001", "email": "priya@example.com", "username": "Priya"})
	missingClaims := signedToken(t, map[string]interface{}{"id": "E001"})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "E001"},
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
		{name: "missing claims", header: "Bearer " + missingClaims, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, tt.header)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, body)
			}
		})
	}
}

func TestOptionalTokenMiddleware(t *testing.T) {
	app := newTestApp(t, func(m Middleware) fiber.Handler { return m.NewOptionalTokenMiddleware })
	valid := signedToken(t, map[string]interface{}{"id": "E002", "email": "", "username": "Arjun"})

	status, body := doRequest(t, app, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	status, body = doRequest(t, app, "Bearer "+valid)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "E002", body)

	status, _ = doRequest(t, app, "Bearer tampered")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(RequestIDKey), 26)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDKey, "fixed-id")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", resp.Header.Get(RequestIDKey))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDKey, "bad id with spaces")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(RequestIDKey), 26)
}

func TestRateLimiter(t *testing.T) {
	logger, _ := test.NewNullLogger()
	m := &middleware{rateLimitter: newRateLimiter(0, 1), log: logger}

	app := fiber.New()
	app.Use(m.NewRateLimiter)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	r := newRateLimiter(1, 1)
	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	first := r.GetLimiterFrom("10.0.0.1")
	r.GetLimiterFrom("10.0.0.2")
	assert.Same(t, first, r.GetLimiterFrom("10.0.0.1"))
	assert.Equal(t, 2, r.size())

	clock = clock.Add(limiterIdleTTL + time.Minute)
	r.GetLimiterFrom("10.0.0.3")
	assert.Equal(t, 1, r.size())
	assert.NotSame(t, first, r.GetLimiterFrom("10.0.0.1"))
}

func TestRateLimiterFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "7")
	r := rateLimiterFromEnv()
	assert.Equal(t, rate.Limit(5), r.rate)
	assert.Equal(t, 7, r.burstSize)

	t.Setenv("RATE_LIMIT_RPS", "nope")
	t.Setenv("RATE_LIMIT_BURST", "-1")
	r = rateLimiterFromEnv()
	assert.Equal(t, rate.Limit(defaultRatePerSecond), r.rate)
	assert.Equal(t, defaultBurst, r.burstSize)
}

func TestSanitizeRequestBody(t *testing.T) {
	assert.JSONEq(t, `{"employee_id":"E001","password":"[SECRET]"}`,
		sanitizeRequestBody([]byte(`{"employee_id":"E001","password":"pass123"}`)))
	assert.JSONEq(t, `{"message":"/login [SECRET]"}`,
		sanitizeRequestBody([]byte(`{"message":"/login E001 pass123"}`)))
	assert.JSONEq(t, `{"message":"how many leaves do I have"}`,
		sanitizeRequestBody([]byte(`{"message":"how many leaves do I have"}`)))
	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody([]byte("plain")))
}
