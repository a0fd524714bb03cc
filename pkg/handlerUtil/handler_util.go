package handlerUtil

import (
	"EmployeeAssistant/internal/api/auth"
	"EmployeeAssistant/internal/api/chat"
	"EmployeeAssistant/internal/api/hr"
	"EmployeeAssistant/pkg/log"
	"EmployeeAssistant/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type domainError struct {
	err     error
	status  int
	code    string
	message string
}

var domainErrors = []domainError{
	// Auth domain errors
	{auth.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid employee id or password"},
	{auth.ErrEmployeeNotFound, fiber.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found"},
	{auth.ErrorInvalidToken, fiber.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token"},

	// HR domain errors
	{hr.ErrEmployeeNotFound, fiber.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found"},
	{hr.ErrCompanyInfoNotFound, fiber.StatusNotFound, "COMPANY_INFO_NOT_FOUND", "Company information not found"},
	{hr.ErrInvalidPhoneNumber, fiber.StatusBadRequest, "INVALID_PHONE", "Invalid phone number"},
	{hr.ErrStoreUnavailable, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Employee store unavailable"},

	// Chat domain errors
	{chat.ErrSessionNotFound, fiber.StatusNotFound, "SESSION_NOT_FOUND", "Chat session not found"},
	{chat.ErrSessionForbidden, fiber.StatusForbidden, "SESSION_FORBIDDEN", "Chat session belongs to another employee"},
	{chat.ErrEmptyMessage, fiber.StatusBadRequest, "EMPTY_MESSAGE", "Message must not be empty"},
	{chat.ErrSessionStore, fiber.StatusServiceUnavailable, "SESSION_STORE_UNAVAILABLE", "Chat session store unavailable"},
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	for _, de := range domainErrors {
		if errors.Is(err, de.err) {
			if de.status >= fiber.StatusInternalServerError {
				h.logger.WithFields(fields).Error(de.message)
			} else {
				h.logger.WithFields(fields).Warn(de.message)
			}
			return c.Status(de.status).JSON(ErrorResponse{
				Error: de.message,
				Code:  de.code,
			})
		}
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code
		h.logger.WithFields(fields).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(ErrorResponse{Error: err.Error()})
	}

	h.logger.WithFields(fields).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: message,
		Code:  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
