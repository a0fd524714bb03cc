package hrService

import (
	"EmployeeAssistant/internal/api/hr"
	hrRepository "EmployeeAssistant/internal/api/hr/repository"
	"EmployeeAssistant/internal/entity"
	"EmployeeAssistant/pkg/nlp"
	"EmployeeAssistant/pkg/smtp"
	"EmployeeAssistant/pkg/utils"
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type IHRService interface {
	Handle(ctx context.Context, req hr.Request) hr.Result
	Resume(ctx context.Context, req hr.Request) hr.Result
	CanResume(action entity.PendingAction) bool
	MissingHandlers(catalog *nlp.Catalog) []nlp.IntentID
	GetEmployee(ctx context.Context, employeeID string) (entity.Employee, error)
	CompanyInfo(ctx context.Context) (entity.CompanyInfo, error)
}

type handlerFunc func(ctx context.Context, req hr.Request) hr.Result

type hrService struct {
	log           *logrus.Logger
	repo          hrRepository.Repository
	smtpMailer    smtp.ItfSmtp
	utils         utils.IUtils
	hrNotifyEmail string

	handlers map[nlp.IntentID]handlerFunc
	resumers map[entity.PendingAction]handlerFunc
	greetIdx atomic.Uint64
}

type Option func(*hrService)

// WithHRNotifyEmail enables a mail to HR for every submitted leave request.
func WithHRNotifyEmail(address string) Option {
	return func(s *hrService) {
		s.hrNotifyEmail = address
	}
}

func New(log *logrus.Logger, repo hrRepository.Repository, smtpMailer smtp.ItfSmtp, utils utils.IUtils, opts ...Option) IHRService {
	s := &hrService{
		log:        log,
		repo:       repo,
		smtpMailer: smtpMailer,
		utils:      utils,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handlers = map[nlp.IntentID]handlerFunc{
		nlp.IntentGreeting:       s.greeting,
		nlp.IntentGeneralInquiry: s.generalInquiry,
		nlp.IntentLeavePolicy:    s.leavePolicy,
		nlp.IntentHolidays:       s.holidays,
		nlp.IntentHRContact:      s.hrContact,
		nlp.IntentCompanyInfo:    s.companyInfo,
		nlp.IntentBenefits:       s.benefits,

		nlp.IntentLeaveBalance:           s.requireUser("check your leave balance", s.leaveBalance),
		nlp.IntentCheckLeaveEligibility:  s.requireUser("check your leave eligibility", s.leaveEligibility),
		nlp.IntentLeaveRequest:           s.requireUser("apply for leave", s.leaveRequest),
		nlp.IntentLeaveHistory:           s.requireUser("view leave history", s.leaveHistory),
		nlp.IntentLeaveApproval:          s.requireUser("check leave approval", s.leaveApproval),
		nlp.IntentMyManager:              s.requireUser("check your manager", s.myManager),
		nlp.IntentMyDepartment:           s.requireUser("check your department", s.myDepartment),
		nlp.IntentAttendance:             s.requireUser("check your attendance", s.attendance),
		nlp.IntentSalaryInfo:             s.requireUser("check your salary", s.salaryInfo),
		nlp.IntentPayslip:                s.requireUser("view payslips", s.payslip),
		nlp.IntentTaxInfo:                s.requireUser("view tax information", s.taxInfo),
		nlp.IntentBirthdayAnniversary:    s.requireUser("view your dates", s.birthdayAnniversary),
		nlp.IntentSkills:                 s.requireUser("view your skills", s.skills),
		nlp.IntentAppraisalCycle:         s.requireUser("check appraisal cycle", s.appraisalCycle),
		nlp.IntentGoalsObjectives:        s.requireUser("view your goals", s.goals),
		nlp.IntentMyProfile:              s.requireUser("view your profile information", s.myProfile),
		nlp.IntentUpdatePhone:            s.requireUser("update your phone number", s.phoneFlow(phoneNumberFlow)),
		nlp.IntentEnterPhoneNumber:       s.requireUser("update your phone number", s.phoneFlow(phoneNumberFlow)),
		nlp.IntentUpdateEmergencyContact: s.requireUser("update your emergency contact", s.phoneFlow(emergencyPhoneFlow)),
		nlp.IntentShowEmergencyContact:   s.requireUser("view your emergency contact", s.showEmergencyContact),
	}

	s.resumers = map[entity.PendingAction]handlerFunc{
		entity.PendingPhoneNumber:    s.requireUser("update your phone number", s.phoneFlow(phoneNumberFlow)),
		entity.PendingEmergencyPhone: s.requireUser("update your emergency contact", s.phoneFlow(emergencyPhoneFlow)),
	}

	return s
}

func (s *hrService) Handle(ctx context.Context, req hr.Request) hr.Result {
	handler, ok := s.handlers[req.Intent]
	if !ok {
		s.log.WithFields(logrus.Fields{
			"intent": req.Intent,
			"error":  hr.ErrUnhandledIntent.Error(),
		}).Error("Intent has no business handler")
		return failure(fmt.Sprintf("Intent %q is not implemented yet.", req.Intent))
	}
	return handler(ctx, req)
}

func (s *hrService) Resume(ctx context.Context, req hr.Request) hr.Result {
	resumer, ok := s.resumers[req.State.PendingAction]
	if !ok {
		s.log.WithFields(logrus.Fields{
			"pending_action": req.State.PendingAction,
			"error":          hr.ErrUnknownContinuation.Error(),
		}).Error("Pending action has no resume handler")
		return failure("I lost track of what we were doing. Please start again.")
	}
	return resumer(ctx, req)
}

func (s *hrService) CanResume(action entity.PendingAction) bool {
	_, ok := s.resumers[action]
	return ok
}

// MissingHandlers lists catalog intents with no registered business handler.
func (s *hrService) MissingHandlers(catalog *nlp.Catalog) []nlp.IntentID {
	var missing []nlp.IntentID
	for _, def := range catalog.All() {
		if _, ok := s.handlers[def.ID]; !ok {
			missing = append(missing, def.ID)
		}
	}
	return missing
}

func (s *hrService) requireUser(action string, next handlerFunc) handlerFunc {
	return func(ctx context.Context, req hr.Request) hr.Result {
		if req.User == nil {
			return failure(fmt.Sprintf("You must be logged in to %s.", action))
		}
		return next(ctx, req)
	}
}

func success(message string, data map[string]any) hr.Result {
	return hr.Result{Success: true, Data: data, Message: message}
}

func failure(message string) hr.Result {
	return hr.Result{Success: false, Message: message}
}
