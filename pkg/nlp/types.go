package nlp

type IntentID string

const (
	IntentGreeting               IntentID = "greeting"
	IntentGeneralInquiry         IntentID = "general_inquiry"
	IntentLeavePolicy            IntentID = "leave_policy"
	IntentHolidays               IntentID = "holidays"
	IntentHRContact              IntentID = "hr_contact"
	IntentCompanyInfo            IntentID = "company_info"
	IntentBenefits               IntentID = "benefits"
	IntentLeaveBalance           IntentID = "leave_balance"
	IntentCheckLeaveEligibility  IntentID = "check_leave_eligibility"
	IntentLeaveRequest           IntentID = "leave_request"
	IntentLeaveHistory           IntentID = "leave_history"
	IntentLeaveApproval          IntentID = "leave_approval"
	IntentMyManager              IntentID = "my_manager"
	IntentMyDepartment           IntentID = "my_department"
	IntentAttendance             IntentID = "attendance"
	IntentSalaryInfo             IntentID = "salary_info"
	IntentPayslip                IntentID = "payslip"
	IntentTaxInfo                IntentID = "tax_info"
	IntentBirthdayAnniversary    IntentID = "birthday_anniversary"
	IntentSkills                 IntentID = "skills"
	IntentAppraisalCycle         IntentID = "appraisal_cycle"
	IntentGoalsObjectives        IntentID = "goals_objectives"
	IntentMyProfile              IntentID = "my_profile"
	IntentUpdatePhone            IntentID = "update_phone"
	IntentEnterPhoneNumber       IntentID = "enter_phone_number"
	IntentUpdateEmergencyContact IntentID = "update_emergency_contact"
	IntentShowEmergencyContact   IntentID = "show_emergency_contact"
)

// KnownIntents lists every intent the assistant can dispatch, in catalog order.
var KnownIntents = []IntentID{
	IntentGreeting,
	IntentGeneralInquiry,
	IntentLeavePolicy,
	IntentHolidays,
	IntentHRContact,
	IntentCompanyInfo,
	IntentBenefits,
	IntentLeaveBalance,
	IntentCheckLeaveEligibility,
	IntentLeaveRequest,
	IntentLeaveHistory,
	IntentLeaveApproval,
	IntentMyManager,
	IntentMyDepartment,
	IntentAttendance,
	IntentSalaryInfo,
	IntentPayslip,
	IntentTaxInfo,
	IntentBirthdayAnniversary,
	IntentSkills,
	IntentAppraisalCycle,
	IntentGoalsObjectives,
	IntentMyProfile,
	IntentUpdatePhone,
	IntentEnterPhoneNumber,
	IntentUpdateEmergencyContact,
	IntentShowEmergencyContact,
}

func (i IntentID) String() string {
	return string(i)
}

type Category string

const (
	CategoryGeneral          Category = "general"
	CategoryEmployeeSpecific Category = "employee_specific"
)

type IntentDefinition struct {
	ID       IntentID `json:"intent_id" yaml:"intent_id"`
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Examples []string `json:"examples" yaml:"examples"`
}

// IsPrivate reports whether the intent needs an authenticated caller.
func (d IntentDefinition) IsPrivate() bool {
	return d.Category == CategoryEmployeeSpecific
}

// MatchResult is actionable only when Intent is non-nil. Score keeps the raw
// best score for diagnostics when nothing cleared the threshold.
type MatchResult struct {
	Intent     *IntentDefinition `json:"intent,omitempty"`
	Confidence float64           `json:"confidence"`
	Score      float64           `json:"score"`
}

func (m MatchResult) Matched() bool {
	return m.Intent != nil
}

type LeaveDuration struct {
	Days  *int     `json:"days"`
	Weeks *int     `json:"weeks"`
	Raw   []string `json:"raw"`
}

type NamedEntities struct {
	Persons []string `json:"persons"`
	Dates   []string `json:"dates"`
	Others  []string `json:"others"`
}

type EntityBag struct {
	Dates         []string      `json:"dates"`
	Months        []string      `json:"months"`
	LeaveDuration LeaveDuration `json:"leave_duration"`
	LeaveTypes    []string      `json:"leave_types"`
	PhoneNumber   *string       `json:"phone_number"`
	Numbers       []string      `json:"numbers"`
	NamedEntities NamedEntities `json:"named_entities"`
}

// EmptyEntityBag returns a bag with every collection empty and every optional unset.
func EmptyEntityBag() EntityBag {
	return EntityBag{
		Dates:  []string{},
		Months: []string{},
		LeaveDuration: LeaveDuration{
			Raw: []string{},
		},
		LeaveTypes: []string{},
		Numbers:    []string{},
		NamedEntities: NamedEntities{
			Persons: []string{},
			Dates:   []string{},
			Others:  []string{},
		},
	}
}

type IMatcher interface {
	Match(text string, threshold float64) MatchResult
}

type IExtractor interface {
	Extract(text string) EntityBag
}

// Tagger classifies spans of free text into named-entity labels.
type Tagger interface {
	Tag(text string) []TaggedSpan
}

type EntityLabel string

const (
	LabelPerson EntityLabel = "PERSON"
	LabelDate   EntityLabel = "DATE"
	LabelOther  EntityLabel = "OTHER"
)

type TaggedSpan struct {
	Text  string
	Label EntityLabel
}
