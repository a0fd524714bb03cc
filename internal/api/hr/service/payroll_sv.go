package hrService

import (
	"EmployeeAssistant/internal/api/hr"
	"context"
	"fmt"
)

func (s *hrService) salaryInfo(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	monthly := user.Salary / 12

	return success(fmt.Sprintf("Your annual salary is %s (%s monthly).", s.utils.FormatAmount(user.Salary), s.utils.FormatAmount(monthly)),
		map[string]any{
			"employee_name":  user.Name,
			"annual_salary":  user.Salary,
			"monthly_salary": monthly,
		})
}

// payslip reports the first stored payslip, which the store keeps newest first.
func (s *hrService) payslip(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	if len(user.Payslips) == 0 {
		return success("No payslips available.", nil)
	}

	latest := user.Payslips[0]
	return success(fmt.Sprintf("Latest payslip (%s): Gross %s, Deductions %s, Net %s",
		latest.Month, s.utils.FormatAmount(latest.GrossSalary), s.utils.FormatAmount(latest.Deductions), s.utils.FormatAmount(latest.NetSalary)),
		map[string]any{
			"employee_name": user.Name,
			"payslips":      user.Payslips,
		})
}

func (s *hrService) taxInfo(_ context.Context, req hr.Request) hr.Result {
	user := req.User
	tax := user.TaxCalculation

	return success(fmt.Sprintf("Tax for %s: Gross income %s, Tax deducted %s (%s)",
		tax.Year, s.utils.FormatAmount(tax.GrossIncome), s.utils.FormatAmount(tax.TaxDeducted), tax.TaxRate),
		map[string]any{
			"employee_name": user.Name,
			"tax_info":      tax,
		})
}
