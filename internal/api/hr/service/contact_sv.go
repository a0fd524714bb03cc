package hrService

import (
	"EmployeeAssistant/internal/api/hr"
	hrRepository "EmployeeAssistant/internal/api/hr/repository"
	"EmployeeAssistant/internal/entity"
	contextPkg "EmployeeAssistant/pkg/context"
	"EmployeeAssistant/pkg/nlp"
	"EmployeeAssistant/pkg/phone"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

const invalidPhoneMessage = "Invalid phone number format. Please use +91 followed by 10 digits."

type phoneUpdate struct {
	action         entity.PendingAction
	prompt         string
	successMessage string
	dataKey        string
	update         func(ctx context.Context, c hrRepository.Client, employeeID, number string) error
}

var phoneNumberFlow = phoneUpdate{
	action:         entity.PendingPhoneNumber,
	prompt:         "Please provide the new phone number.",
	successMessage: "Phone number updated successfully to %s.",
	dataKey:        "updated_phone",
	update: func(ctx context.Context, c hrRepository.Client, employeeID, number string) error {
		return c.Employees.UpdatePhone(ctx, employeeID, number)
	},
}

var emergencyPhoneFlow = phoneUpdate{
	action:         entity.PendingEmergencyPhone,
	prompt:         "Please provide the new emergency contact phone number.",
	successMessage: "Emergency contact updated successfully to %s.",
	dataKey:        "updated_emergency_contact",
	update: func(ctx context.Context, c hrRepository.Client, employeeID, number string) error {
		return c.Employees.UpdateEmergencyContactPhone(ctx, employeeID, number)
	},
}

// phoneFlow serves both the first turn of a phone update and its resumption.
// A missing or invalid number keeps the session waiting on the same slot;
// a store failure ends the flow.
func (s *hrService) phoneFlow(flow phoneUpdate) handlerFunc {
	return func(ctx context.Context, req hr.Request) hr.Result {
		requestID := contextPkg.GetRequestID(ctx)
		user := req.User
		resuming := req.State.PendingAction == flow.action

		number := req.Entities.PhoneNumber
		if number == nil {
			number = nlp.ExtractPhoneNumber(req.Text)
		}

		if number == nil {
			return s.awaitNumber(flow, user, !resuming, flow.prompt)
		}

		if !phone.IsValidIndian(*number) {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"employee_id": user.EmployeeID,
				"flow":        flow.action,
			}).Debug("Rejected phone number")
			return s.awaitNumber(flow, user, false, invalidPhoneMessage)
		}

		formatted := phone.FormatIndian(*number)

		client, err := s.repo.NewClient(true)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to create repository client")
			return failure(storeFailureMessage(err))
		}
		defer client.Rollback()

		if err := flow.update(ctx, client, user.EmployeeID, formatted); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"employee_id": user.EmployeeID,
				"flow":        flow.action,
				"error":       err.Error(),
			}).Warn("Phone update failed")
			return failure(storeFailureMessage(err))
		}

		if err := client.Commit(); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to commit phone update")
			return failure(storeFailureMessage(err))
		}

		return success(fmt.Sprintf(flow.successMessage, formatted), map[string]any{
			"employee_name": user.Name,
			flow.dataKey:    formatted,
		})
	}
}

func (s *hrService) awaitNumber(flow phoneUpdate, user *entity.Employee, ok bool, message string) hr.Result {
	return hr.Result{
		Success: ok,
		Message: message,
		Data: map[string]any{
			"next_action": string(flow.action),
		},
		Next:     flow.action,
		Captured: map[string]string{hr.CapturedEmployeeID: user.EmployeeID},
	}
}

func storeFailureMessage(err error) string {
	switch {
	case errors.Is(err, hr.ErrEmployeeNotFound):
		return "Employee not found."
	case errors.Is(err, hr.ErrEmergencyContactNotFound):
		return "Employee or emergency contact not found."
	default:
		return "We could not save your change right now. Please try again later."
	}
}
