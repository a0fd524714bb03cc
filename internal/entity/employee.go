package entity

import "time"

type Employee struct {
	EmployeeID       string            `json:"employee_id" db:"employee_id"`
	Name             string            `json:"name" db:"name"`
	Email            string            `json:"email" db:"email"`
	Password         string            `json:"password,omitempty" db:"password"`
	Department       string            `json:"department" db:"department"`
	Manager          string            `json:"manager" db:"manager"`
	Phone            string            `json:"phone" db:"phone"`
	Salary           float64           `json:"salary" db:"salary"`
	AttendanceDays   int               `json:"attendance_days" db:"attendance_days"`
	Birthday         string            `json:"birthday" db:"birthday"`
	Anniversary      string            `json:"anniversary" db:"anniversary"`
	AppraisalCycle   string            `json:"appraisal_cycle" db:"appraisal_cycle"`
	Skills           []string          `json:"skills" db:"skills"`
	Goals            []string          `json:"goals" db:"goals"`
	LeaveBalance     LeaveBalance      `json:"leave_balance" db:"leave_balance"`
	LeaveHistory     []LeaveRecord     `json:"leave_history" db:"-"`
	Payslips         []Payslip         `json:"payslips" db:"-"`
	TaxCalculation   TaxCalculation    `json:"tax_calculation" db:"tax_calculation"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty" db:"emergency_contact"`
}

// LeaveBalance is keyed by leave type tag, plus a "total" entry.
type LeaveBalance map[string]int

func (b LeaveBalance) Total() int {
	if total, ok := b["total"]; ok {
		return total
	}
	sum := 0
	for _, v := range b {
		sum += v
	}
	return sum
}

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

type LeaveRecord struct {
	ID          string      `json:"id,omitempty" db:"id"`
	Type        string      `json:"type" db:"type"`
	StartDate   string      `json:"start_date" db:"start_date"`
	Days        int         `json:"days" db:"days"`
	Status      LeaveStatus `json:"status" db:"status"`
	SubmittedAt time.Time   `json:"submitted_at,omitempty" db:"submitted_at"`
}

type Payslip struct {
	Month       string  `json:"month" db:"month"`
	GrossSalary float64 `json:"gross_salary" db:"gross_salary"`
	Deductions  float64 `json:"deductions" db:"deductions"`
	NetSalary   float64 `json:"net_salary" db:"net_salary"`
}

type TaxCalculation struct {
	Year        string  `json:"year"`
	GrossIncome float64 `json:"gross_income"`
	TaxDeducted float64 `json:"tax_deducted"`
	TaxRate     string  `json:"tax_rate"`
}

type EmergencyContact struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Phone    string `json:"phone"`
}

type CompanyInfo struct {
	Name     string   `json:"name" db:"name"`
	Mission  string   `json:"mission" db:"mission"`
	HRPhone  string   `json:"hr_phone" db:"hr_phone"`
	HREmail  string   `json:"hr_email" db:"hr_email"`
	Holidays []string `json:"holidays" db:"holidays"`
}
