package chatHandler

import (
	"EmployeeAssistant/internal/api/chat"
	"EmployeeAssistant/internal/entity"
	"EmployeeAssistant/internal/middleware"
	contextPkg "EmployeeAssistant/pkg/context"
	"context"
	"strings"
	"time"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/oklog/ulid/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// handleWebSocket runs one conversation per connection. Frames are either a
// JSON SendMessageRequest or plain text; the session id is kept between frames.
func (h *ChatHandler) handleWebSocket(c *websocket.Conn) {
	sessionID := c.Query("session_id")
	var login *entity.UserLoginData
	if user, ok := c.Locals(middleware.UserLocalsKey).(entity.UserLoginData); ok {
		login = &user
	}

	h.log.Info("Chat WebSocket client connected")
	defer h.log.Info("Chat WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		h.log.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Chat WebSocket error: %v", err)
			} else {
				h.log.Info("Chat WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.TextMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		req := decodeFrame(message)
		if req.SessionID == "" {
			req.SessionID = sessionID
		}

		var reply any
		if err := h.validator.Struct(req); err != nil {
			reply = map[string]string{"error": "Validation failed: " + err.Error()}
		} else {
			res, err := h.sendFrame(login, req)
			if err != nil {
				h.log.Errorf("Error handling chat frame: %v", err)
				reply = map[string]string{"error": err.Error()}
			} else {
				sessionID = res.SessionID
				reply = res
			}
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(reply); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}

func (h *ChatHandler) sendFrame(login *entity.UserLoginData, req chat.SendMessageRequest) (chat.SendMessageResponse, error) {
	ctx := contextPkg.WithRequestID(context.Background(), ulid.Make().String())
	ctx, cancel := context.WithTimeout(ctx, h.sendTimeout)
	defer cancel()

	return h.chatService.SendMessage(ctx, login, req)
}

func decodeFrame(message []byte) chat.SendMessageRequest {
	var req chat.SendMessageRequest
	trimmed := strings.TrimSpace(string(message))
	if strings.HasPrefix(trimmed, "{") && json.Unmarshal(message, &req) == nil {
		return req
	}
	return chat.SendMessageRequest{Message: trimmed}
}
