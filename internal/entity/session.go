package entity

import "time"

type PendingAction string

const (
	PendingNone           PendingAction = ""
	PendingPhoneNumber    PendingAction = "awaiting_phone_number"
	PendingEmergencyPhone PendingAction = "awaiting_emergency_phone"
)

// ConversationState is the single pending-slot cursor of one chat session.
// The zero value is Idle.
type ConversationState struct {
	PendingAction  PendingAction     `json:"pending_action,omitempty"`
	CapturedFields map[string]string `json:"captured_fields,omitempty"`
	Attempts       int               `json:"attempts,omitempty"`
}

func (s ConversationState) Idle() bool {
	return s.PendingAction == PendingNone
}

func AwaitingSlot(action PendingAction, captured map[string]string) ConversationState {
	return ConversationState{PendingAction: action, CapturedFields: captured}
}

type ChatSession struct {
	ID           string            `json:"id"`
	EmployeeID   string            `json:"employee_id,omitempty"`
	State        ConversationState `json:"state"`
	CreatedAt    time.Time         `json:"created_at"`
	LastActivity time.Time         `json:"last_activity"`
}

func (s ChatSession) Authenticated() bool {
	return s.EmployeeID != ""
}
