package hrRepository

const (
	queryGetEmployeeByID = `
SELECT employee_id, name, email, password, department, manager, phone, salary,
       attendance_days, birthday, anniversary, appraisal_cycle, skills, goals,
       leave_balance, tax_calculation, emergency_contact
FROM employees
    WHERE employee_id = :employee_id`

	queryGetLeaveRecords = `
SELECT id, type, start_date, days, status, submitted_at
FROM leave_records
    WHERE employee_id = :employee_id
ORDER BY submitted_at ASC`

	queryGetPayslips = `
SELECT month, gross_salary, deductions, net_salary
FROM payslips
    WHERE employee_id = :employee_id
ORDER BY issued_on DESC`

	queryUpdatePhone = `
UPDATE employees
SET phone = :phone,
    updated_at = :updated_at
    WHERE employee_id = :employee_id`

	queryUpdateEmergencyContactPhone = `
UPDATE employees
SET emergency_contact = jsonb_set(emergency_contact, '{phone}', to_jsonb(CAST(:phone AS text))),
    updated_at = :updated_at
    WHERE employee_id = :employee_id AND emergency_contact IS NOT NULL`

	queryCreateLeaveRecord = `
INSERT INTO leave_records (id, employee_id, type, start_date, days, status, submitted_at)
VALUES (:id, :employee_id, :type, :start_date, :days, :status, :submitted_at)`

	queryGetCompanyInfo = `
SELECT name, mission, hr_phone, hr_email, holidays
FROM company_info
LIMIT 1`
)
