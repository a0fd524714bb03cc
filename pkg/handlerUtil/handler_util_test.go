package handlerUtil

import (
	"EmployeeAssistant/internal/api/chat"
	"EmployeeAssistant/internal/api/hr"
	"EmployeeAssistant/pkg/response"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler_Handle(t *testing.T) {
	logger, _ := test.NewNullLogger()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "wrapped session not found", err: fmt.Errorf("load: %w", chat.ErrSessionNotFound), wantStatus: http.StatusNotFound, wantCode: "SESSION_NOT_FOUND"},
		{name: "forbidden session", err: chat.ErrSessionForbidden, wantStatus: http.StatusForbidden, wantCode: "SESSION_FORBIDDEN"},
		{name: "employee not found", err: hr.ErrEmployeeNotFound, wantStatus: http.StatusNotFound, wantCode: "EMPLOYEE_NOT_FOUND"},
		{name: "generic response error", err: response.NewError(http.StatusTeapot, "short and stout"), wantStatus: http.StatusTeapot},
		{name: "plain error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return New(logger).Handle(c, "req-1", tt.err, c.Path(), "test")
			})

			res, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.StatusCode)

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)
			var payload ErrorResponse
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, tt.wantCode, payload.Code)
			assert.NotEmpty(t, payload.Error)
		})
	}
}
