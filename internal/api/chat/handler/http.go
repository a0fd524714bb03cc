package chatHandler

import (
	chatService "EmployeeAssistant/internal/api/chat/service"
	"EmployeeAssistant/internal/middleware"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService

	sendTimeout  time.Duration
	resetTimeout time.Duration
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	cs chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validator,
		middleware:  middleware,
		chatService: cs,

		sendTimeout:  30 * time.Second,
		resetTimeout: 5 * time.Second,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	chat := srv.Group("/chat", h.middleware.NewOptionalTokenMiddleware)
	chat.Post("/messages", h.SendMessage)
	chat.Get("/intents", h.ListIntents)
	chat.Delete("/sessions/:id", h.ResetSession)

	chat.Use("/ws", wsMiddleware)
	chat.Get("/ws", websocket.New(h.handleWebSocket))
}
