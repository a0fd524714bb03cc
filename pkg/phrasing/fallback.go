package phrasing

import "EmployeeAssistant/pkg/nlp"

const defaultFallback = "I'm here to help with your employee-related questions and make your work life easier. I can assist with leave management, salary information, company policies, and much more. For personal information, please log in first. What would you like to know?"

var fallbacks = map[nlp.IntentID]string{
	nlp.IntentGreeting:               "Hello! I'm your friendly Employee Self-Service assistant. I'm here to help you with all your work-related questions and tasks. How can I assist you today?",
	nlp.IntentLeavePolicy:            "We offer several types of leave including annual leave (usually 20 days), sick leave (10 days), casual leave (5 days), and maternity/paternity leave. Would you like me to explain any particular type in more detail?",
	nlp.IntentHolidays:               "We celebrate various national and cultural holidays throughout the year. Would you like me to show you the complete list of holidays for this year?",
	nlp.IntentHRContact:              "Our HR team can be reached by phone, email, or in person. I can provide the specific contact details if you'd like.",
	nlp.IntentCompanyInfo:            "We're committed to creating a positive work environment where every employee can thrive and grow. Is there a specific aspect of the company you'd like to know more about?",
	nlp.IntentBenefits:               "Our benefits package includes health insurance coverage, retirement savings plans, paid time off, and professional development opportunities. Would you like me to elaborate on any specific benefit?",
	nlp.IntentGeneralInquiry:         "I can help you with leave management, salary information, company policies, HR contacts, and much more. For personal details like your profile or leave balance, you'll need to log in first. What would you like to know?",
	nlp.IntentLeaveBalance:           "I can help you check your current leave balance once you're logged in, including annual, sick, and other leave types.",
	nlp.IntentCheckLeaveEligibility:  "I can check whether you're eligible for a particular type of leave once you're logged in.",
	nlp.IntentLeaveRequest:           "I can guide you through submitting a leave request once you're logged in, including dates and leave type.",
	nlp.IntentLeaveHistory:           "Your leave history shows all the leave you've taken this year. I can display it once you're logged in.",
	nlp.IntentLeaveApproval:          "I can show you the status of pending and approved leave requests once you're logged in.",
	nlp.IntentMyManager:              "I can tell you about your reporting manager once you're logged in.",
	nlp.IntentMyDepartment:           "I can display your department information once you're logged in.",
	nlp.IntentAttendance:             "I can show you your attendance record, including days present, once you're logged in.",
	nlp.IntentSalaryInfo:             "Your salary information is confidential. I can show you your current salary once you're logged in.",
	nlp.IntentPayslip:                "I can help you view your latest payslip once you're logged in.",
	nlp.IntentTaxInfo:                "I can show you your tax calculations and deductions once you're logged in.",
	nlp.IntentBirthdayAnniversary:    "I can show you your birthday and work anniversary once you're logged in.",
	nlp.IntentSkills:                 "I can display your skill set as recorded in our HR system once you're logged in.",
	nlp.IntentAppraisalCycle:         "I can show you the current appraisal cycle schedule once you're logged in.",
	nlp.IntentGoalsObjectives:        "I can display your current goals and objectives once you're logged in.",
	nlp.IntentMyProfile:              "I can show you your employee profile, including job and contact details, once you're logged in.",
	nlp.IntentUpdatePhone:            "I can help you update your phone number securely once you're logged in.",
	nlp.IntentEnterPhoneNumber:       "Please provide your new phone number as 10 digits, optionally prefixed with +91.",
	nlp.IntentUpdateEmergencyContact: "I can help you change your emergency contact details securely once you're logged in.",
	nlp.IntentShowEmergencyContact:   "I can display your current emergency contact details once you're logged in.",
}

// Fallback is the local template for an intent, used when neither the
// generative service nor the business handler produced a message.
func Fallback(id nlp.IntentID) string {
	if msg, ok := fallbacks[id]; ok {
		return msg
	}
	return defaultFallback
}
