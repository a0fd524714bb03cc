package chat

import (
	"EmployeeAssistant/internal/entity"
	"EmployeeAssistant/pkg/nlp"
)

// ResponseEnvelope is the single reply shape of a chat turn.
type ResponseEnvelope struct {
	Success      bool           `json:"success"`
	Intent       nlp.IntentID   `json:"intent,omitempty"`
	IntentName   string         `json:"intent_name,omitempty"`
	Confidence   float64        `json:"confidence"`
	Entities     *nlp.EntityBag `json:"entities,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
	Message      string         `json:"message"`
	RequiresAuth bool           `json:"requires_auth"`
}

// Turn is one user message against a session snapshot. Caller is nil for
// anonymous turns.
type Turn struct {
	Text    string
	Session entity.ChatSession
	Caller  *entity.Employee
}

// TurnResult carries the reply and the session as it must be stored. Login
// is set only when the turn was a successful /login command.
type TurnResult struct {
	Envelope ResponseEnvelope
	Session  entity.ChatSession
	Login    *LoginGrant
}

type LoginGrant struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type SendMessageRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=64"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type SendMessageResponse struct {
	SessionID string           `json:"session_id"`
	Response  ResponseEnvelope `json:"response"`
	Login     *LoginGrant      `json:"login,omitempty"`
}

type IntentSummary struct {
	ID       nlp.IntentID `json:"intent_id"`
	Name     string       `json:"name"`
	Examples []string     `json:"examples,omitempty"`
}

type IntentListResponse struct {
	General          []IntentSummary `json:"general"`
	EmployeeSpecific []IntentSummary `json:"employee_specific"`
}
