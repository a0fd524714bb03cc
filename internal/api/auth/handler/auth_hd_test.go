package authHandler

import (
	"EmployeeAssistant/internal/api/auth"
	"EmployeeAssistant/internal/middleware"
	jwtPkg "EmployeeAssistant/pkg/jwt"
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

type fakeAuthService struct {
	loginErr error
	meErr    error
	meID     string
}

func (f *fakeAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if f.loginErr != nil {
		return auth.LoginResponse{}, f.loginErr
	}
	return auth.LoginResponse{
		AccessToken: "token",
		Employee:    auth.EmployeeProfile{EmployeeID: req.EmployeeID, Name: "Priya Sharma"},
	}, nil
}

func (f *fakeAuthService) Me(_ context.Context, employeeID string) (auth.EmployeeProfile, error) {
	f.meID = employeeID
	if f.meErr != nil {
		return auth.EmployeeProfile{}, f.meErr
	}
	return auth.EmployeeProfile{EmployeeID: employeeID, Name: "Priya Sharma"}, nil
}

func setup(t *testing.T, svc *fakeAuthService) *fiber.App {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	logger, _ := test.NewNullLogger()
	app := fiber.New()
	New(logger, svc, validator.New(), middleware.New(logger)).Start(app)
	return app
}

func TestHandleLogin(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		loginErr error
		status   int
	}{
		{name: "success", body: `{"employee_id":"E001","password":"pass123"}`, status: fiber.StatusOK},
		{name: "missing password", body: `{"employee_id":"E001"}`, status: fiber.StatusBadRequest},
		{name: "malformed", body: `{"employee_id":`, status: fiber.StatusBadRequest},
		{name: "bad credentials", body: `{"employee_id":"E001","password":"x"}`, loginErr: auth.ErrInvalidCredentials, status: fiber.StatusUnauthorized},
		{name: "unknown employee", body: `{"employee_id":"E9","password":"x"}`, loginErr: auth.ErrEmployeeNotFound, status: fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setup(t, &fakeAuthService{loginErr: tt.loginErr})

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.StatusCode)
		})
	}
}

func TestHandleMe(t *testing.T) {
	svc := &fakeAuthService{}
	app := setup(t, svc)

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	token, _, err := jwtPkg.Sign(map[string]interface{}{"id": "E001", "email": "priya@example.com", "username": "Priya Sharma"}, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "E001", svc.meID)

	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), `"name":"Priya Sharma"`)
}
