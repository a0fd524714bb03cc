package chatHandler

import (
	"EmployeeAssistant/internal/api/chat"
	"EmployeeAssistant/internal/entity"
	contextPkg "EmployeeAssistant/pkg/context"
	"EmployeeAssistant/pkg/handlerUtil"
	jwtPkg "EmployeeAssistant/pkg/jwt"
	"EmployeeAssistant/pkg/log"
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *ChatHandler) SendMessage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.sendTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req chat.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	// A turn that returns without error has already saved its session and
	// any HR write, so it is reported even when the deadline has passed.
	res, err := h.chatService.SendMessage(c, loginData(ctx), req)
	if errors.Is(err, context.DeadlineExceeded) {
		return errHandler.HandleRequestTimeout(ctx)
	}
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "send_message")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

func (h *ChatHandler) ListIntents(ctx *fiber.Ctx) error {
	return handlerUtil.New(h.log).HandleSuccess(ctx, fiber.StatusOK, h.chatService.ListIntents())
}

func (h *ChatHandler) ResetSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.resetTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Params("id")
	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	}).Debug("Resetting chat session")

	err := h.chatService.ResetSession(c, loginData(ctx), sessionID)
	if errors.Is(err, context.DeadlineExceeded) {
		return errHandler.HandleRequestTimeout(ctx)
	}
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "reset_session")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusNoContent, nil)
}

// loginData is nil for anonymous callers.
func loginData(ctx *fiber.Ctx) *entity.UserLoginData {
	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return nil
	}
	return &user
}
