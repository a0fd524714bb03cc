package hrService

import (
	"EmployeeAssistant/internal/api/hr"
	"EmployeeAssistant/internal/entity"
	contextPkg "EmployeeAssistant/pkg/context"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultLeaveType = "casual"
	workDaysPerWeek  = 5
)

func (s *hrService) leaveBalance(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	balance := user.LeaveBalance
	if balance == nil {
		balance = entity.LeaveBalance{}
	}

	return success(fmt.Sprintf("%s, you have a total of %d leaves remaining. Breakdown: Sick (%d), Casual (%d), Earned (%d).",
		user.Name, balance.Total(), balance["sick"], balance["casual"], balance["earned"]),
		map[string]any{
			"employee_id":   user.EmployeeID,
			"name":          user.Name,
			"leave_balance": balance,
		})
}

func (s *hrService) leaveEligibility(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	leaveType := "general"
	if len(req.Entities.LeaveTypes) > 0 {
		leaveType = req.Entities.LeaveTypes[0]
	}

	available := user.LeaveBalance[leaveType]
	if leaveType == "general" {
		available = user.LeaveBalance.Total()
	}

	data := map[string]any{
		"employee_name":    user.Name,
		"leave_type":       leaveType,
		"available_leaves": available,
		"eligible":         available > 0,
	}

	if available > 0 {
		return success(fmt.Sprintf("Yes, you are eligible to take %s leave. You have %d %s leave(s) available.",
			leaveType, available, leaveType), data)
	}
	return success(fmt.Sprintf("Sorry, you do not have any %s leave available at the moment.", leaveType), data)
}

func (s *hrService) leaveRequest(ctx context.Context, req hr.Request) hr.Result {
	requestID := contextPkg.GetRequestID(ctx)
	user := req.User

	leaveType := defaultLeaveType
	if len(req.Entities.LeaveTypes) > 0 {
		leaveType = req.Entities.LeaveTypes[0]
	}

	startDate := "not specified"
	if len(req.Entities.Dates) > 0 {
		startDate = req.Entities.Dates[0]
	}

	days := 1
	switch {
	case req.Entities.LeaveDuration.Days != nil:
		days = *req.Entities.LeaveDuration.Days
	case req.Entities.LeaveDuration.Weeks != nil:
		days = *req.Entities.LeaveDuration.Weeks * workDaysPerWeek
	}

	now := time.Now()
	recordID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate leave record ID")
		return failure("Your leave request could not be submitted right now. Please try again later.")
	}

	record := entity.LeaveRecord{
		ID:          recordID,
		Type:        leaveType,
		StartDate:   startDate,
		Days:        days,
		Status:      entity.LeaveStatusPending,
		SubmittedAt: now,
	}

	client, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return failure("Your leave request could not be submitted right now. Please try again later.")
	}
	defer client.Rollback()

	if err := client.Employees.AddLeaveRecord(ctx, user.EmployeeID, record); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"session_id":  contextPkg.GetSessionID(ctx),
			"employee_id": user.EmployeeID,
			"error":       err.Error(),
		}).Warn("Failed to store leave request")
		return failure(storeFailureMessage(err))
	}

	if err := client.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit leave request")
		return failure("Your leave request could not be submitted right now. Please try again later.")
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"session_id":  contextPkg.GetSessionID(ctx),
		"employee_id": user.EmployeeID,
		"record_id":   recordID,
		"days":        days,
	}).Info("Leave request submitted")

	s.notifyHR(requestID, hr.LeaveRequestNotification{
		EmployeeID:   user.EmployeeID,
		EmployeeName: user.Name,
		LeaveType:    leaveType,
		StartDate:    startDate,
		Days:         days,
	})

	return success(fmt.Sprintf("Your %s leave request for %s (%d days) has been submitted for approval.", leaveType, startDate, days),
		map[string]any{
			"request_id":    recordID,
			"employee_id":   user.EmployeeID,
			"employee_name": user.Name,
			"leave_type":    leaveType,
			"start_date":    startDate,
			"duration_days": days,
			"status":        "pending_approval",
			"submitted_at":  now.Format(time.RFC3339),
		})
}

func (s *hrService) notifyHR(requestID string, n hr.LeaveRequestNotification) {
	if s.hrNotifyEmail == "" || s.smtpMailer == nil {
		return
	}

	subject := fmt.Sprintf("Leave request from %s (%s)", n.EmployeeName, n.EmployeeID)
	body := fmt.Sprintf("%s has requested %d day(s) of %s leave starting %s.", n.EmployeeName, n.Days, n.LeaveType, n.StartDate)

	go func() {
		if err := s.smtpMailer.SendMail(s.hrNotifyEmail, subject, body); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"employee_id": n.EmployeeID,
				"error":       err.Error(),
			}).Warn("Failed to notify HR about leave request")
		}
	}()
}

func (s *hrService) leaveHistory(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	if len(user.LeaveHistory) == 0 {
		return success("You have no leave history for this year.", nil)
	}

	total := 0
	for _, l := range user.LeaveHistory {
		total += l.Days
	}

	return success(fmt.Sprintf("You have taken %d leave days. Total records: %d", total, len(user.LeaveHistory)),
		map[string]any{
			"employee_name":      user.Name,
			"leave_history":      user.LeaveHistory,
			"total_leaves_taken": total,
		})
}

func (s *hrService) leaveApproval(_ context.Context, req hr.Request) hr.Result {
	user := req.User

	pending := make([]entity.LeaveRecord, 0)
	approved := make([]entity.LeaveRecord, 0)
	for _, l := range user.LeaveHistory {
		switch l.Status {
		case entity.LeaveStatusPending:
			pending = append(pending, l)
		case entity.LeaveStatusApproved:
			approved = append(approved, l)
		}
	}

	if len(pending) == 0 {
		return success(fmt.Sprintf("All your %d leave request(s) have been approved.", len(approved)),
			map[string]any{
				"employee_name":   user.Name,
				"approved_leaves": approved,
			})
	}

	parts := make([]string, 0, len(pending))
	for _, l := range pending {
		parts = append(parts, fmt.Sprintf("%s (%d days)", l.Type, l.Days))
	}

	return success(fmt.Sprintf("You have %d pending leave(s): %s", len(pending), strings.Join(parts, ", ")),
		map[string]any{
			"employee_name":   user.Name,
			"pending_leaves":  pending,
			"approved_leaves": approved,
		})
}
