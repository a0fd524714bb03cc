package chatService

import (
	"EmployeeAssistant/internal/api/auth"
	"EmployeeAssistant/internal/api/chat"
	"EmployeeAssistant/internal/api/hr"
	"EmployeeAssistant/internal/entity"
	contextPkg "EmployeeAssistant/pkg/context"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func newSessionID() string {
	return uuid.NewString()
}

func (s *chatService) SendMessage(ctx context.Context, login *entity.UserLoginData, req chat.SendMessageRequest) (chat.SendMessageResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return chat.SendMessageResponse{}, chat.ErrEmptyMessage
	}

	session, err := s.loadOrCreate(ctx, req.SessionID)
	if err != nil {
		return chat.SendMessageResponse{}, err
	}
	ctx = contextPkg.WithSessionID(ctx, session.ID)

	caller, err := s.resolveCaller(ctx, login, &session)
	if err != nil {
		return chat.SendMessageResponse{}, err
	}

	res := s.HandleTurn(ctx, chat.Turn{Text: text, Session: session, Caller: caller})

	res.Session.LastActivity = time.Now()
	if err := s.sessions.Save(ctx, res.Session); err != nil {
		return chat.SendMessageResponse{}, err
	}

	return chat.SendMessageResponse{
		SessionID: res.Session.ID,
		Response:  res.Envelope,
		Login:     res.Login,
	}, nil
}

func (s *chatService) ResetSession(ctx context.Context, login *entity.UserLoginData, sessionID string) error {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if session.Authenticated() && (login == nil || login.ID != session.EmployeeID) {
		return chat.ErrSessionForbidden
	}

	return s.sessions.Delete(ctx, sessionID)
}

// loadOrCreate keeps a client-chosen id alive across expiry: an unknown id
// starts a fresh session under the same id.
func (s *chatService) loadOrCreate(ctx context.Context, id string) (entity.ChatSession, error) {
	if id != "" {
		session, err := s.sessions.Get(ctx, id)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, chat.ErrSessionNotFound) {
			return entity.ChatSession{}, err
		}
	} else {
		id = s.newID()
	}

	now := time.Now()
	return entity.ChatSession{ID: id, CreatedAt: now, LastActivity: now}, nil
}

// resolveCaller picks the employee behind a turn: the bearer token when one
// was sent, else the employee bound to the session by /login.
func (s *chatService) resolveCaller(ctx context.Context, login *entity.UserLoginData, session *entity.ChatSession) (*entity.Employee, error) {
	fields := logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": session.ID,
	}

	if login != nil {
		if session.Authenticated() && session.EmployeeID != login.ID {
			fields["employee_id"] = login.ID
			s.log.WithFields(fields).Warn("Token does not match session owner")
			return nil, chat.ErrSessionForbidden
		}

		employee, err := s.hr.GetEmployee(ctx, login.ID)
		if err != nil {
			if errors.Is(err, hr.ErrEmployeeNotFound) {
				return nil, auth.ErrorInvalidToken
			}
			return nil, err
		}
		return &employee, nil
	}

	if !session.Authenticated() {
		return nil, nil
	}

	employee, err := s.hr.GetEmployee(ctx, session.EmployeeID)
	if err != nil {
		if errors.Is(err, hr.ErrEmployeeNotFound) {
			fields["employee_id"] = session.EmployeeID
			s.log.WithFields(fields).Warn("Session bound to unknown employee, unbinding")
			session.EmployeeID = ""
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}
