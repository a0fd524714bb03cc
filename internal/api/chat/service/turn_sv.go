package chatService

import (
	"EmployeeAssistant/internal/api/chat"
	"EmployeeAssistant/internal/api/hr"
	"EmployeeAssistant/internal/entity"
	contextPkg "EmployeeAssistant/pkg/context"
	"EmployeeAssistant/pkg/metrics"
	"EmployeeAssistant/pkg/nlp"
	"EmployeeAssistant/pkg/phrasing"
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	loginRequiredMessage = "This information is private. Please login using /login <employee_id> <password>"
	notUnderstoodMessage = "I couldn't understand that. Could you rephrase?"
	giveUpMessage        = "I still couldn't use that, so I've cancelled this request. You can start again any time."
)

// resumeIntents names the intent a pending action reports in its envelope.
var resumeIntents = map[entity.PendingAction]nlp.IntentID{
	entity.PendingPhoneNumber:    nlp.IntentEnterPhoneNumber,
	entity.PendingEmergencyPhone: nlp.IntentUpdateEmergencyContact,
}

func (s *chatService) HandleTurn(ctx context.Context, turn chat.Turn) chat.TurnResult {
	start := time.Now()
	defer func() {
		metrics.ChatTurnDuration.Observe(time.Since(start).Seconds())
	}()

	turn.Text = strings.TrimSpace(turn.Text)

	if cmd, ok := parseCommand(turn.Text); ok {
		res := s.handleCommand(ctx, cmd, turn)
		s.record(ctx, turn, res, metrics.OutcomeCommand, start)
		return res
	}

	if !turn.Session.State.Idle() {
		if res, ok := s.resume(ctx, turn); ok {
			return res
		}
		turn.Session.State = entity.ConversationState{}
	}

	return s.matchAndDispatch(ctx, turn, start)
}

func (s *chatService) matchAndDispatch(ctx context.Context, turn chat.Turn, start time.Time) chat.TurnResult {
	match := s.matcher.Match(turn.Text, s.threshold)
	if !match.Matched() {
		res := s.fallback(ctx, turn)
		s.record(ctx, turn, res, metrics.OutcomeNoIntent, start)
		return res
	}

	def := *match.Intent
	entities := s.extractor.Extract(turn.Text)

	if def.IsPrivate() && turn.Caller == nil {
		res := chat.TurnResult{
			Envelope: chat.ResponseEnvelope{
				Success:      false,
				Intent:       def.ID,
				IntentName:   def.Name,
				Confidence:   match.Confidence,
				Entities:     &entities,
				Message:      loginRequiredMessage,
				RequiresAuth: true,
			},
			Session: turn.Session,
		}
		s.record(ctx, turn, res, metrics.OutcomeLoginNeeded, start)
		return res
	}

	result := s.hr.Handle(ctx, hr.Request{
		Intent:   def.ID,
		Text:     turn.Text,
		Entities: entities,
		User:     turn.Caller,
		State:    turn.Session.State,
	})

	return s.finish(ctx, turn, def, match.Confidence, entities, result, start)
}

// resume routes a turn to the flow waiting on the session's pending slot.
// It reports false when the pending state is stale and the turn should be
// handled as a fresh one.
func (s *chatService) resume(ctx context.Context, turn chat.Turn) (chat.TurnResult, bool) {
	start := time.Now()
	state := turn.Session.State
	fields := logrus.Fields{
		"request_id":     contextPkg.GetRequestID(ctx),
		"session_id":     turn.Session.ID,
		"pending_action": state.PendingAction,
	}

	intentID, known := resumeIntents[state.PendingAction]
	if !known || !s.hr.CanResume(state.PendingAction) {
		s.log.WithFields(fields).Warn("Dropping unknown pending action")
		return chat.TurnResult{}, false
	}
	def, ok := s.catalog.Get(intentID)
	if !ok {
		def = nlp.IntentDefinition{ID: intentID, Name: string(intentID), Category: nlp.CategoryEmployeeSpecific}
	}

	if turn.Caller == nil {
		turn.Session.State = entity.ConversationState{}
		res := chat.TurnResult{
			Envelope: chat.ResponseEnvelope{
				Success:      false,
				Intent:       def.ID,
				IntentName:   def.Name,
				Confidence:   1.0,
				Message:      loginRequiredMessage,
				RequiresAuth: true,
			},
			Session: turn.Session,
		}
		s.record(ctx, turn, res, metrics.OutcomeLoginNeeded, start)
		return res, true
	}

	if owner := state.CapturedFields[hr.CapturedEmployeeID]; owner != "" && owner != turn.Caller.EmployeeID {
		fields["owner"] = owner
		fields["caller"] = turn.Caller.EmployeeID
		s.log.WithFields(fields).Warn("Pending action belongs to another employee")
		return chat.TurnResult{}, false
	}

	entities := s.extractor.Extract(turn.Text)
	result := s.hr.Resume(ctx, hr.Request{
		Intent:   def.ID,
		Text:     turn.Text,
		Entities: entities,
		User:     turn.Caller,
		State:    state,
	})

	return s.finish(ctx, turn, def, 1.0, entities, result, start), true
}

func (s *chatService) finish(ctx context.Context, turn chat.Turn, def nlp.IntentDefinition, confidence float64, entities nlp.EntityBag, result hr.Result, start time.Time) chat.TurnResult {
	prev := turn.Session.State
	message := s.phrase(ctx, def, entities, turn.Caller, prev, result)
	success := result.Success
	data := result.Data

	next := nextState(prev, result)
	if next.Attempts >= s.maxAttempts {
		s.log.WithFields(logrus.Fields{
			"request_id":     contextPkg.GetRequestID(ctx),
			"session_id":     turn.Session.ID,
			"pending_action": next.PendingAction,
			"attempts":       next.Attempts,
		}).Info("Abandoning pending action after repeated failures")
		next = entity.ConversationState{}
		message = giveUpMessage
		success = false
		data = nil
	}
	turn.Session.State = next

	res := chat.TurnResult{
		Envelope: chat.ResponseEnvelope{
			Success:      success,
			Intent:       def.ID,
			IntentName:   def.Name,
			Confidence:   confidence,
			Entities:     &entities,
			Data:         data,
			Message:      message,
			RequiresAuth: def.IsPrivate(),
		},
		Session: turn.Session,
	}

	outcome := metrics.OutcomeAnswered
	switch {
	case !next.Idle():
		outcome = metrics.OutcomeAwaitingSlot
	case !success:
		outcome = metrics.OutcomeFailed
	}
	s.record(ctx, turn, res, outcome, start)
	return res
}

// nextState keeps the session waiting only when the handler asked for more
// input. Asking again for the same slot counts as a failed attempt.
func nextState(prev entity.ConversationState, result hr.Result) entity.ConversationState {
	if !result.NeedsInput() {
		return entity.ConversationState{}
	}

	next := entity.AwaitingSlot(result.Next, result.Captured)
	if prev.PendingAction == result.Next {
		next.Attempts = prev.Attempts + 1
	}
	return next
}

// phrase prefers generated text for successful, completed answers. Prompts
// and failures keep the handler's wording.
func (s *chatService) phrase(ctx context.Context, def nlp.IntentDefinition, entities nlp.EntityBag, caller *entity.Employee, state entity.ConversationState, result hr.Result) string {
	message := result.Message
	if message == "" {
		message = phrasing.Fallback(def.ID)
	}

	if !result.Success || result.NeedsInput() || s.renderer == nil {
		return message
	}

	text, err := s.renderer.Render(ctx, phrasing.Request{
		Intent:   def,
		Entities: entities,
		User:     caller,
		State:    state,
		Data:     result.Data,
	})
	if err != nil {
		return message
	}
	return text
}

func (s *chatService) fallback(ctx context.Context, turn chat.Turn) chat.TurnResult {
	def, ok := s.catalog.Get(nlp.IntentGeneralInquiry)
	if !ok {
		def = nlp.IntentDefinition{ID: nlp.IntentGeneralInquiry, Name: "General Inquiry", Category: nlp.CategoryGeneral}
	}

	empty := nlp.EmptyEntityBag()
	if s.renderer != nil {
		text, err := s.renderer.Render(ctx, phrasing.Request{
			Intent:   def,
			Entities: empty,
			User:     turn.Caller,
			State:    turn.Session.State,
		})
		if err == nil {
			return chat.TurnResult{
				Envelope: chat.ResponseEnvelope{
					Success:    true,
					Intent:     def.ID,
					IntentName: def.Name,
					Entities:   &empty,
					Message:    text,
				},
				Session: turn.Session,
			}
		}
	}

	return chat.TurnResult{
		Envelope: chat.ResponseEnvelope{
			Success: false,
			Message: notUnderstoodMessage,
		},
		Session: turn.Session,
	}
}

func (s *chatService) record(ctx context.Context, turn chat.Turn, res chat.TurnResult, outcome string, start time.Time) {
	intent := string(res.Envelope.Intent)
	if intent == "" {
		intent = "none"
	}
	metrics.ChatTurnsTotal.WithLabelValues(intent, outcome).Inc()

	fields := logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": turn.Session.ID,
		"intent":     intent,
		"confidence": res.Envelope.Confidence,
		"outcome":    outcome,
		"latency_ms": time.Since(start).Milliseconds(),
	}
	if turn.Caller != nil {
		fields["employee_id"] = turn.Caller.EmployeeID
	}
	s.log.WithFields(fields).Info("Chat turn handled")
}
