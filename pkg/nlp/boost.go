package nlp

import "strings"

var (
	capabilityWords = []string{"can", "do", "help", "capabilities", "features", "services", "provide", "assist"}
	questionWords   = []string{"what", "how", "tell"}
)

// boostRule adds bonus when any term occurs as a substring of the lowercased
// query. Rules are evaluated in order and only the first rule whose predicate
// accepts the intent is consulted.
type boostRule struct {
	ids      []IntentID
	prefixes []string
	terms    []string
	bonus    float64
}

func (r boostRule) applies(id IntentID) bool {
	for _, candidate := range r.ids {
		if candidate == id {
			return true
		}
	}
	for _, prefix := range r.prefixes {
		if strings.HasPrefix(string(id), prefix) {
			return true
		}
	}
	return false
}

func defaultBoostRules() []boostRule {
	return []boostRule{
		{
			ids:   []IntentID{IntentMyManager},
			terms: []string{"manager", "reporting", "report", "boss", "supervisor", "lead"},
			bonus: 0.6,
		},
		{
			ids:   []IntentID{IntentMyDepartment},
			terms: []string{"department", "team", "group", "division", "unit", "work"},
			bonus: 0.6,
		},
		{
			ids:   []IntentID{IntentGoalsObjectives},
			terms: []string{"goals", "objectives", "targets", "okr", "performance"},
			bonus: 0.6,
		},
		{
			ids:   []IntentID{IntentMyProfile},
			terms: []string{"profile", "information", "details", "info", "about", "myself", "who"},
			bonus: 0.6,
		},
		{
			ids:      []IntentID{IntentCheckLeaveEligibility},
			prefixes: []string{"leave_"},
			terms:    []string{"leave", "vacation", "holiday", "off", "absent", "sick", "casual", "annual"},
			bonus:    0.4,
		},
		{
			ids:      []IntentID{IntentPayslip},
			prefixes: []string{"salary"},
			terms:    []string{"salary", "pay", "wage", "compensation", "payslip", "earnings"},
			bonus:    0.5,
		},
		{
			prefixes: []string{"update_phone", "enter_phone"},
			terms:    []string{"phone", "number", "contact", "mobile", "update", "change"},
			bonus:    0.5,
		},
		{
			ids:      []IntentID{IntentShowEmergencyContact},
			prefixes: []string{"update_emergency", "enter_emergency"},
			terms:    []string{"emergency", "contact", "urgent", "backup"},
			bonus:    0.5,
		},
		{
			ids:   []IntentID{IntentGreeting},
			terms: []string{"hello", "hi", "hey", "good", "morning", "afternoon", "evening", "howdy", "sup"},
			bonus: 0.8,
		},
		{
			ids:   []IntentID{IntentCompanyInfo},
			terms: []string{"company", "organization", "about", "mission", "vision", "who", "what"},
			bonus: 0.5,
		},
		{
			ids:   []IntentID{IntentHRContact},
			terms: []string{"hr", "human", "resources", "contact", "reach", "call", "email"},
			bonus: 0.5,
		},
		{
			ids:   []IntentID{IntentBenefits},
			terms: []string{"benefits", "perks", "insurance", "health", "retirement", "pto"},
			bonus: 0.5,
		},
		{
			ids:   []IntentID{IntentHolidays},
			terms: []string{"holiday", "vacation", "calendar", "festive", "celebration"},
			bonus: 0.5,
		},
		{
			ids:   []IntentID{IntentAttendance},
			terms: []string{"attendance", "present", "absent", "working", "days"},
			bonus: 0.5,
		},
		{
			ids:   []IntentID{IntentSkills},
			terms: []string{"skills", "expertise", "competencies", "abilities", "talents"},
			bonus: 0.5,
		},
		{
			ids:   []IntentID{IntentAppraisalCycle},
			terms: []string{"appraisal", "review", "performance", "evaluation", "rating"},
			bonus: 0.5,
		},
		{
			ids:   []IntentID{IntentBirthdayAnniversary},
			terms: []string{"birthday", "anniversary", "celebration", "important", "dates"},
			bonus: 0.5,
		},
	}
}
