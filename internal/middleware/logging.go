package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var sensitiveFields = []string{
	"password", "token", "access_token", "secret", "key", "authorization", "credential",
}

type loggingMiddleware struct {
	logger *logrus.Logger
}

func newLoggingMiddleware(logger *logrus.Logger) *loggingMiddleware {
	return &loggingMiddleware{
		logger: logger,
	}
}

func (m *middleware) NewLoggingMiddleware(ctx *fiber.Ctx) error {
	return m.loggingMiddleware.handle(ctx, m.GetRequestID(ctx))
}

func (l *loggingMiddleware) handle(c *fiber.Ctx, requestID string) error {
	start := time.Now()

	err := c.Next()

	latency := time.Since(start)
	status := c.Response().StatusCode()

	fields := logrus.Fields{
		"request_id":    requestID,
		"method":        c.Method(),
		"path":          c.Path(),
		"status":        status,
		"latency_ms":    latency.Milliseconds(),
		"ip":            c.IP(),
		"user_agent":    c.Get("User-Agent"),
		"response_size": len(c.Response().Body()),
	}

	if body := c.Request().Body(); len(body) > 0 {
		fields["request_body"] = sanitizeRequestBody(body)
	}

	entry := l.logger.WithFields(fields)
	switch {
	case status >= 500:
		entry.Error("Server error")
	case status >= 400:
		entry.Warn("Client error")
	default:
		entry.Info("Success")
	}

	return err
}

func sanitizeRequestBody(body []byte) string {
	var jsonBody map[string]interface{}
	if err := json.Unmarshal(body, &jsonBody); err != nil {
		return "[non-JSON body]"
	}

	for _, field := range sensitiveFields {
		if _, exists := jsonBody[field]; exists {
			jsonBody[field] = "[SECRET]"
		}
	}

	// chat messages may carry "/login <id> <password>"
	if msg, ok := jsonBody["message"].(string); ok && strings.HasPrefix(strings.ToLower(strings.TrimSpace(msg)), "/login") {
		jsonBody["message"] = "/login [SECRET]"
	}

	sanitized, err := json.Marshal(jsonBody)
	if err != nil {
		return "[sanitization-failed]"
	}

	return string(sanitized)
}
