package hrRepository

import (
	"EmployeeAssistant/internal/api/hr"
	"EmployeeAssistant/internal/entity"
	contextPkg "EmployeeAssistant/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type EmployeeDB struct {
	EmployeeID       string          `db:"employee_id"`
	Name             sql.NullString  `db:"name"`
	Email            sql.NullString  `db:"email"`
	Password         sql.NullString  `db:"password"`
	Department       sql.NullString  `db:"department"`
	Manager          sql.NullString  `db:"manager"`
	Phone            sql.NullString  `db:"phone"`
	Salary           sql.NullFloat64 `db:"salary"`
	AttendanceDays   sql.NullInt64   `db:"attendance_days"`
	Birthday         sql.NullString  `db:"birthday"`
	Anniversary      sql.NullString  `db:"anniversary"`
	AppraisalCycle   sql.NullString  `db:"appraisal_cycle"`
	Skills           pq.StringArray  `db:"skills"`
	Goals            pq.StringArray  `db:"goals"`
	LeaveBalance     []byte          `db:"leave_balance"`
	TaxCalculation   []byte          `db:"tax_calculation"`
	EmergencyContact []byte          `db:"emergency_contact"`
}

type LeaveRecordDB struct {
	ID          string         `db:"id"`
	Type        string         `db:"type"`
	StartDate   sql.NullString `db:"start_date"`
	Days        int            `db:"days"`
	Status      string         `db:"status"`
	SubmittedAt sql.NullTime   `db:"submitted_at"`
}

type PayslipDB struct {
	Month       string  `db:"month"`
	GrossSalary float64 `db:"gross_salary"`
	Deductions  float64 `db:"deductions"`
	NetSalary   float64 `db:"net_salary"`
}

func (r *employeeRepository) GetByID(c context.Context, employeeID string) (entity.Employee, error) {
	requestID := contextPkg.GetRequestID(c)
	var row EmployeeDB

	argsKV := map[string]interface{}{
		"employee_id": employeeID,
	}

	query, args, err := sqlx.Named(queryGetEmployeeByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID named query preparation err")
		return entity.Employee{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"employee_id": employeeID,
			}).Warn("GetByID no rows found")
			return entity.Employee{}, hr.ErrEmployeeNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID execution err")
		return entity.Employee{}, err
	}

	employee, err := r.makeEmployee(row)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"employee_id": employeeID,
			"error":       err.Error(),
		}).Error("GetByID failed to decode json columns")
		return entity.Employee{}, err
	}

	if employee.LeaveHistory, err = r.leaveRecords(c, argsKV); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID failed to load leave records")
		return entity.Employee{}, err
	}

	if employee.Payslips, err = r.payslips(c, argsKV); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByID failed to load payslips")
		return entity.Employee{}, err
	}

	return employee, nil
}

func (r *employeeRepository) leaveRecords(c context.Context, argsKV map[string]interface{}) ([]entity.LeaveRecord, error) {
	query, args, err := sqlx.Named(queryGetLeaveRecords, argsKV)
	if err != nil {
		return nil, err
	}

	var rows []LeaveRecordDB
	if err := sqlx.SelectContext(c, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, err
	}

	records := make([]entity.LeaveRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, entity.LeaveRecord{
			ID:          row.ID,
			Type:        row.Type,
			StartDate:   row.StartDate.String,
			Days:        row.Days,
			Status:      entity.LeaveStatus(row.Status),
			SubmittedAt: row.SubmittedAt.Time,
		})
	}
	return records, nil
}

func (r *employeeRepository) payslips(c context.Context, argsKV map[string]interface{}) ([]entity.Payslip, error) {
	query, args, err := sqlx.Named(queryGetPayslips, argsKV)
	if err != nil {
		return nil, err
	}

	var rows []PayslipDB
	if err := sqlx.SelectContext(c, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, err
	}

	payslips := make([]entity.Payslip, 0, len(rows))
	for _, row := range rows {
		payslips = append(payslips, entity.Payslip(row))
	}
	return payslips, nil
}

func (r *employeeRepository) UpdatePhone(c context.Context, employeeID string, phone string) error {
	return r.exec(c, "UpdatePhone", queryUpdatePhone, map[string]interface{}{
		"employee_id": employeeID,
		"phone":       phone,
		"updated_at":  time.Now(),
	}, hr.ErrEmployeeNotFound)
}

func (r *employeeRepository) UpdateEmergencyContactPhone(c context.Context, employeeID string, phone string) error {
	return r.exec(c, "UpdateEmergencyContactPhone", queryUpdateEmergencyContactPhone, map[string]interface{}{
		"employee_id": employeeID,
		"phone":       phone,
		"updated_at":  time.Now(),
	}, hr.ErrEmergencyContactNotFound)
}

func (r *employeeRepository) AddLeaveRecord(c context.Context, employeeID string, record entity.LeaveRecord) error {
	requestID := contextPkg.GetRequestID(c)

	err := r.exec(c, "AddLeaveRecord", queryCreateLeaveRecord, map[string]interface{}{
		"id":           record.ID,
		"employee_id":  employeeID,
		"type":         record.Type,
		"start_date":   record.StartDate,
		"days":         record.Days,
		"status":       string(record.Status),
		"submitted_at": record.SubmittedAt,
	}, nil)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		r.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"employee_id": employeeID,
		}).Warn("Leave record references unknown employee")
		return hr.ErrEmployeeNotFound
	}

	return err
}

// exec runs a named statement; when notFound is set, zero affected rows
// is reported as that error.
func (r *employeeRepository) exec(c context.Context, op string, namedQuery string, argsKV map[string]interface{}, notFound error) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Errorf("Failed to build SQL query for %s", op)
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Errorf("Database error in %s", op)
		return err
	}

	if notFound == nil {
		return nil
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  op,
		}).Warn("No rows affected")
		return notFound
	}

	return nil
}

func (r *employeeRepository) makeEmployee(row EmployeeDB) (entity.Employee, error) {
	employee := entity.Employee{
		EmployeeID:     row.EmployeeID,
		Name:           row.Name.String,
		Email:          row.Email.String,
		Password:       row.Password.String,
		Department:     row.Department.String,
		Manager:        row.Manager.String,
		Phone:          row.Phone.String,
		Salary:         row.Salary.Float64,
		AttendanceDays: int(row.AttendanceDays.Int64),
		Birthday:       row.Birthday.String,
		Anniversary:    row.Anniversary.String,
		AppraisalCycle: row.AppraisalCycle.String,
		Skills:         []string(row.Skills),
		Goals:          []string(row.Goals),
		LeaveBalance:   entity.LeaveBalance{},
	}

	if len(row.LeaveBalance) > 0 {
		if err := json.Unmarshal(row.LeaveBalance, &employee.LeaveBalance); err != nil {
			return entity.Employee{}, err
		}
	}

	if len(row.TaxCalculation) > 0 {
		if err := json.Unmarshal(row.TaxCalculation, &employee.TaxCalculation); err != nil {
			return entity.Employee{}, err
		}
	}

	if len(row.EmergencyContact) > 0 && string(row.EmergencyContact) != "null" {
		var contact entity.EmergencyContact
		if err := json.Unmarshal(row.EmergencyContact, &contact); err != nil {
			return entity.Employee{}, err
		}
		employee.EmergencyContact = &contact
	}

	return employee, nil
}
