package middleware

import (
	jwtPkg "EmployeeAssistant/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
	UserLocalsKey     = "user"
)

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"path":       ctx.Path(),
			"error":      "Authorization header is missing",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	if err := m.authenticate(ctx); err != nil {
		return unauthorized(ctx)
	}

	return ctx.Next()
}

// NewOptionalTokenMiddleware lets anonymous requests through but still
// rejects a token that is present and invalid.
func (m *middleware) NewOptionalTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		return ctx.Next()
	}

	if err := m.authenticate(ctx); err != nil {
		return unauthorized(ctx)
	}

	return ctx.Next()
}

func (m *middleware) authenticate(ctx *fiber.Ctx) error {
	fields := logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"path":       ctx.Path(),
		"method":     ctx.Method(),
		"client_ip":  ctx.IP(),
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		fields["error"] = err.Error()
		m.log.WithFields(fields).Warn("Token verification failed")
		return err
	}

	user, err := jwtPkg.LoginDataFromToken(userToken)
	if err != nil {
		fields["error"] = err.Error()
		m.log.WithFields(fields).Warn("Token claims check")
		return err
	}

	ctx.Locals(UserLocalsKey, user)

	fields["employee_id"] = user.ID
	m.log.WithFields(fields).Debug("Authentication successful")
	return nil
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}
