package chatService

import (
	"EmployeeAssistant/internal/api/auth"
	"EmployeeAssistant/internal/api/chat"
	"EmployeeAssistant/internal/entity"
	contextPkg "EmployeeAssistant/pkg/context"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	cmdLogin  = "/login"
	cmdLogout = "/logout"
	cmdHelp   = "/help"
	cmdStatus = "/status"
)

const helpMessage = "Commands:\n" +
	"/login <id> <password>\n" +
	"/logout\n" +
	"/status\n" +
	"/help\n\n" +
	"Demo Users:\n" +
	"E001 / pass123\n" +
	"E002 / pass456\n" +
	"E003 / pass789"

type command struct {
	name string
	args []string
}

// parseCommand recognises the chat commands. Any other text starting with a
// slash is treated as an ordinary message.
func parseCommand(text string) (command, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, cmdLogin):
		return command{name: cmdLogin, args: strings.Fields(text)[1:]}, true
	case lower == cmdLogout, lower == cmdHelp, lower == cmdStatus:
		return command{name: lower}, true
	}
	return command{}, false
}

func (s *chatService) handleCommand(ctx context.Context, cmd command, turn chat.Turn) chat.TurnResult {
	switch cmd.name {
	case cmdLogin:
		return s.login(ctx, cmd.args, turn)
	case cmdLogout:
		return s.logout(turn)
	case cmdStatus:
		if turn.Caller == nil {
			return commandReply(turn.Session, true, "Not logged in.")
		}
		return commandReply(turn.Session, true, fmt.Sprintf("Logged in as %s (%s)", turn.Caller.Name, turn.Caller.EmployeeID))
	default:
		return commandReply(turn.Session, true, helpMessage)
	}
}

func (s *chatService) login(ctx context.Context, args []string, turn chat.Turn) chat.TurnResult {
	if len(args) < 2 {
		return commandReply(turn.Session, false, "Usage: /login <employee_id> <password>")
	}
	employeeID := args[0]

	res, err := s.auth.Login(ctx, auth.LoginRequest{EmployeeID: employeeID, Password: args[1]})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmployeeNotFound):
			return commandReply(turn.Session, false, fmt.Sprintf("Employee ID '%s' not found.", employeeID))
		case errors.Is(err, auth.ErrInvalidCredentials):
			return commandReply(turn.Session, false, "Invalid password.")
		default:
			s.log.WithFields(logrus.Fields{
				"request_id":  contextPkg.GetRequestID(ctx),
				"session_id":  turn.Session.ID,
				"employee_id": employeeID,
				"error":       err.Error(),
			}).Error("Chat login failed")
			return commandReply(turn.Session, false, "Login is unavailable right now. Please try again later.")
		}
	}

	turn.Session.EmployeeID = res.Employee.EmployeeID
	reply := commandReply(turn.Session, true, fmt.Sprintf("Welcome, %s!", res.Employee.Name))
	reply.Envelope.Data = map[string]any{"employee": res.Employee}
	reply.Login = &chat.LoginGrant{AccessToken: res.AccessToken, ExpiresAt: res.ExpiresAt}
	return reply
}

func (s *chatService) logout(turn chat.Turn) chat.TurnResult {
	if turn.Caller == nil {
		return commandReply(turn.Session, false, "No user is currently logged in.")
	}

	turn.Session.EmployeeID = ""
	turn.Session.State = entity.ConversationState{}
	return commandReply(turn.Session, true, fmt.Sprintf("Goodbye, %s!", turn.Caller.Name))
}

func commandReply(session entity.ChatSession, success bool, message string) chat.TurnResult {
	return chat.TurnResult{
		Envelope: chat.ResponseEnvelope{Success: success, Message: message},
		Session:  session,
	}
}
