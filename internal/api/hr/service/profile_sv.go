package hrService

import (
	"EmployeeAssistant/internal/api/hr"
	"context"
	"fmt"
	"strings"
)

const workingDaysPerYear = 250

func (s *hrService) myManager(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	data := map[string]any{
		"employee_name": user.Name,
		"manager":       user.Manager,
	}
	if user.Manager == "" {
		return success("You do not have a manager (you are the head).", data)
	}
	return success(fmt.Sprintf("Your manager is %s.", user.Manager), data)
}

func (s *hrService) myDepartment(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	return success(fmt.Sprintf("You work in the %s department.", user.Department),
		map[string]any{
			"employee_name": user.Name,
			"department":    user.Department,
		})
}

func (s *hrService) attendance(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	percentage := 0.0
	if user.AttendanceDays > 0 {
		percentage = float64(user.AttendanceDays) / workingDaysPerYear * 100
	}

	return success(fmt.Sprintf("You have been present for %d days (%.1f%% attendance).", user.AttendanceDays, percentage),
		map[string]any{
			"employee_name":         user.Name,
			"attendance_days":       user.AttendanceDays,
			"attendance_percentage": percentage,
		})
}

func (s *hrService) birthdayAnniversary(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	birthday := orDefault(user.Birthday, "Not provided")
	anniversary := orDefault(user.Anniversary, "Not provided")

	return success(fmt.Sprintf("Birthday: %s, Work Anniversary: %s", birthday, anniversary),
		map[string]any{
			"employee_name": user.Name,
			"birthday":      birthday,
			"anniversary":   anniversary,
		})
}

func (s *hrService) skills(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	return success("Your skills: "+strings.Join(user.Skills, ", "),
		map[string]any{
			"employee_name": user.Name,
			"skills":        user.Skills,
		})
}

func (s *hrService) appraisalCycle(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	cycle := orDefault(user.AppraisalCycle, "Not scheduled")
	return success("Your appraisal cycle: "+cycle,
		map[string]any{
			"employee_name":   user.Name,
			"appraisal_cycle": cycle,
		})
}

func (s *hrService) goals(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	lines := make([]string, 0, len(user.Goals))
	for _, g := range user.Goals {
		lines = append(lines, "• "+g)
	}

	return success("Your goals: "+strings.Join(lines, "\n"),
		map[string]any{
			"employee_name": user.Name,
			"goals":         user.Goals,
		})
}

func (s *hrService) myProfile(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	manager := orDefault(user.Manager, "Not assigned")

	return success(fmt.Sprintf("Hello %s! Your Employee ID is %s, you work in %s department, and your manager is %s.",
		user.Name, user.EmployeeID, user.Department, manager),
		map[string]any{
			"employee_name": user.Name,
			"profile_info": map[string]any{
				"employee_id": user.EmployeeID,
				"name":        user.Name,
				"department":  user.Department,
				"manager":     manager,
				"phone":       orDefault(user.Phone, "Not provided"),
				"email":       orDefault(user.Email, "Not provided"),
			},
		})
}

func (s *hrService) showEmergencyContact(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	contact := user.EmergencyContact
	if contact == nil {
		return success("You have no emergency contact on file.", map[string]any{"employee_name": user.Name})
	}

	return success(fmt.Sprintf("Your emergency contact is %s (%s), reachable at %s.", contact.Name, contact.Relation, contact.Phone),
		map[string]any{
			"employee_name":     user.Name,
			"emergency_contact": *contact,
		})
}
