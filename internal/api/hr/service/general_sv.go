package hrService

import (
	"EmployeeAssistant/internal/api/hr"
	"EmployeeAssistant/internal/entity"
	contextPkg "EmployeeAssistant/pkg/context"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const notAvailable = "Not available"

var greetings = []string{
	"Hello! I'm your Employee Self-Service assistant. How can I help you today?",
	"Hi there! I'm here to assist you with your employee-related queries.",
	"Greetings! I'm your ESS chatbot. What can I do for you?",
	"Hello! Welcome to the Employee Self-Service system. How may I assist you?",
}

var capabilities = []string{
	"leave balance and eligibility",
	"leave requests and history",
	"salary and payslip information",
	"profile and personal details",
	"company policies and benefits",
	"HR contact information",
	"phone number updates",
	"attendance records",
}

type policyEntry struct {
	key   string
	label string
	days  int
}

var leavePolicyTable = []policyEntry{
	{"annual_leave", "Annual Leave", 20},
	{"sick_leave", "Sick Leave", 10},
	{"casual_leave", "Casual Leave", 5},
	{"maternity_leave", "Maternity Leave", 90},
	{"paternity_leave", "Paternity Leave", 10},
}

type benefitEntry struct {
	key         string
	description string
}

var benefitTable = []benefitEntry{
	{"health_insurance", "Comprehensive health insurance coverage"},
	{"retirement_plan", "401(k) matching up to 5%"},
	{"pto", "Paid time off (20 days annually)"},
	{"professional_development", "Annual training budget of $2000"},
	{"remote_work", "Flexible remote work policy"},
}

func (s *hrService) greeting(_ context.Context, _ hr.Request) hr.Result {
	i := s.greetIdx.Add(1) - 1
	return success(greetings[i%uint64(len(greetings))], map[string]any{"greeting_type": "general"})
}

func (s *hrService) generalInquiry(_ context.Context, _ hr.Request) hr.Result {
	return success(fmt.Sprintf(
		"I can help you with various employee-related tasks including: %s. "+
			"You can ask me questions like 'How many leaves do I have?', 'What is my salary?', or 'Update my phone number'. "+
			"If you need help with something specific, just let me know!",
		strings.Join(capabilities, ", ")),
		map[string]any{"capabilities": append([]string(nil), capabilities...)})
}

func (s *hrService) leavePolicy(_ context.Context, _ hr.Request) hr.Result {
	policy := make(map[string]int, len(leavePolicyTable))
	lines := make([]string, 0, len(leavePolicyTable))
	for _, p := range leavePolicyTable {
		policy[p.key] = p.days
		lines = append(lines, fmt.Sprintf("• %s: %d days", p.label, p.days))
	}

	return success("Our leave policy includes:\n"+strings.Join(lines, "\n"), map[string]any{"policy": policy})
}

func (s *hrService) benefits(_ context.Context, _ hr.Request) hr.Result {
	data := make(map[string]string, len(benefitTable))
	lines := make([]string, 0, len(benefitTable))
	for _, b := range benefitTable {
		data[b.key] = b.description
		lines = append(lines, "• "+b.description)
	}

	return success("Here are the available employee benefits:\n"+strings.Join(lines, "\n"), map[string]any{"benefits": data})
}

func (s *hrService) holidays(ctx context.Context, _ hr.Request) hr.Result {
	info, ok := s.companyOrDefault(ctx)
	if !ok {
		return failure("Company information is unavailable right now. Please try again later.")
	}

	data := map[string]any{"holidays": info.Holidays}
	if len(info.Holidays) == 0 {
		return success("No company holidays are currently scheduled for this year.", data)
	}

	lines := make([]string, 0, len(info.Holidays))
	for _, h := range info.Holidays {
		lines = append(lines, "• "+h)
	}
	return success("Company holidays this year:\n"+strings.Join(lines, "\n"), data)
}

func (s *hrService) hrContact(ctx context.Context, _ hr.Request) hr.Result {
	info, ok := s.companyOrDefault(ctx)
	if !ok {
		return failure("Company information is unavailable right now. Please try again later.")
	}

	phone := orDefault(info.HRPhone, notAvailable)
	email := orDefault(info.HREmail, notAvailable)
	return success(fmt.Sprintf("HR Contact Information:\n• Phone: %s\n• Email: %s", phone, email),
		map[string]any{"hr_phone": phone, "hr_email": email})
}

func (s *hrService) companyInfo(ctx context.Context, _ hr.Request) hr.Result {
	info, ok := s.companyOrDefault(ctx)
	if !ok {
		return failure("Company information is unavailable right now. Please try again later.")
	}

	name := orDefault(info.Name, notAvailable)
	mission := orDefault(info.Mission, notAvailable)
	return success(fmt.Sprintf("Company Information:\n• Name: %s\n• Mission: %s", name, mission),
		map[string]any{"name": name, "mission": mission})
}

// companyOrDefault treats a missing company record as empty; only store
// failures report !ok.
func (s *hrService) companyOrDefault(ctx context.Context) (entity.CompanyInfo, bool) {
	info, err := s.CompanyInfo(ctx)
	if err == nil {
		return info, true
	}
	if errors.Is(err, hr.ErrCompanyInfoNotFound) {
		return entity.CompanyInfo{}, true
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"error":      err.Error(),
	}).Warn("Failed to load company info")
	return entity.CompanyInfo{}, false
}

func (s *hrService) CompanyInfo(ctx context.Context) (entity.CompanyInfo, error) {
	client, err := s.repo.NewClient(false)
	if err != nil {
		return entity.CompanyInfo{}, err
	}
	return client.Company.Get(ctx)
}

func (s *hrService) GetEmployee(ctx context.Context, employeeID string) (entity.Employee, error) {
	client, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Employee{}, err
	}
	return client.Employees.GetByID(ctx, employeeID)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
