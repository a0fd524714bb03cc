package hr

import (
	"EmployeeAssistant/internal/entity"
	"EmployeeAssistant/pkg/nlp"
)

// CapturedEmployeeID names the captured field that binds a pending flow to
// the employee who started it.
const CapturedEmployeeID = "employee_id"

// Request is one business call: the matched intent (or the flow being
// resumed), the raw turn text, the extracted entities and the caller.
type Request struct {
	Intent   nlp.IntentID
	Text     string
	Entities nlp.EntityBag
	User     *entity.Employee
	State    entity.ConversationState
}

// Result is what a business handler returns. A non-empty Next asks the
// orchestrator to keep the session waiting for that slot.
type Result struct {
	Success  bool                 `json:"success"`
	Data     map[string]any       `json:"data,omitempty"`
	Message  string               `json:"message"`
	Next     entity.PendingAction `json:"next_action,omitempty"`
	Captured map[string]string    `json:"-"`
}

func (r Result) NeedsInput() bool {
	return r.Next != entity.PendingNone
}

type LeaveRequestNotification struct {
	EmployeeID   string
	EmployeeName string
	LeaveType    string
	StartDate    string
	Days         int
}
