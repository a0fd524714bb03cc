package phrasing

import (
	"EmployeeAssistant/internal/entity"
	"EmployeeAssistant/pkg/nlp"
	"context"
	"errors"
)

var (
	// ErrSkipped is returned for intents whose business message is final.
	ErrSkipped     = errors.New("phrasing: intent is not sent for phrasing")
	ErrUnavailable = errors.New("phrasing: generative service is not configured")
	ErrEmptyReply  = errors.New("phrasing: generative service returned no text")
)

// Request is everything the renderer may mention in its reply.
type Request struct {
	Intent   nlp.IntentDefinition
	Entities nlp.EntityBag
	User     *entity.Employee
	State    entity.ConversationState
	Data     map[string]any
}

type Renderer interface {
	Render(ctx context.Context, req Request) (string, error)
}

var businessOnly = map[nlp.IntentID]struct{}{
	nlp.IntentLeaveRequest:           {},
	nlp.IntentUpdatePhone:            {},
	nlp.IntentEnterPhoneNumber:       {},
	nlp.IntentUpdateEmergencyContact: {},
}

// IsBusinessOnly reports whether the intent mutates records, in which case
// the handler's own message is always used.
func IsBusinessOnly(id nlp.IntentID) bool {
	_, ok := businessOnly[id]
	return ok
}
