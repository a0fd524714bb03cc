package hrRepository

import (
	"EmployeeAssistant/internal/api/hr"
	"EmployeeAssistant/internal/entity"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeColumns = []string{
	"employee_id", "name", "email", "password", "department", "manager", "phone", "salary",
	"attendance_days", "birthday", "anniversary", "appraisal_cycle", "skills", "goals",
	"leave_balance", "tax_calculation", "emergency_contact",
}

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger, _ := test.NewNullLogger()
	return New(sqlx.NewDb(db, "postgres"), logger), mock
}

func TestEmployeeRepository_GetByID(t *testing.T) {
	repo, mock := newMockRepository(t)
	submitted := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM employees\s+WHERE employee_id = \$1`).
		WithArgs("E001").
		WillReturnRows(sqlmock.NewRows(employeeColumns).AddRow(
			"E001", "Priya Sharma", "priya@example.com", "$2a$hash", "Engineering", "Rahul Mehta", "+91-9876543210", 85000.0,
			220, "1990-05-14", "2019-07-01", "Annual (March)", "{Go,Postgres}", "{\"Ship v2\"}",
			[]byte(`{"sick":5,"casual":3,"earned":10,"total":18}`),
			[]byte(`{"year":"2024","gross_income":85000,"tax_deducted":8500,"tax_rate":"10%"}`),
			[]byte(`{"name":"Anil Sharma","relation":"Father","phone":"+91-9123456789"}`),
		))
	mock.ExpectQuery(`FROM leave_records`).
		WithArgs("E001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "start_date", "days", "status", "submitted_at"}).
			AddRow("L1", "sick", "2025-03-02", 2, "approved", submitted))
	mock.ExpectQuery(`FROM payslips`).
		WithArgs("E001").
		WillReturnRows(sqlmock.NewRows([]string{"month", "gross_salary", "deductions", "net_salary"}).
			AddRow("March 2025", 7083.33, 708.33, 6375.0).
			AddRow("February 2025", 7083.33, 708.33, 6375.0))

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	emp, err := client.Employees.GetByID(context.Background(), "E001")
	require.NoError(t, err)

	assert.Equal(t, "Priya Sharma", emp.Name)
	assert.Equal(t, []string{"Go", "Postgres"}, emp.Skills)
	assert.Equal(t, []string{"Ship v2"}, emp.Goals)
	assert.Equal(t, 18, emp.LeaveBalance.Total())
	assert.Equal(t, "10%", emp.TaxCalculation.TaxRate)
	require.NotNil(t, emp.EmergencyContact)
	assert.Equal(t, "+91-9123456789", emp.EmergencyContact.Phone)
	require.Len(t, emp.LeaveHistory, 1)
	assert.Equal(t, entity.LeaveStatusApproved, emp.LeaveHistory[0].Status)
	require.Len(t, emp.Payslips, 2)
	assert.Equal(t, "March 2025", emp.Payslips[0].Month)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM employees`).
		WithArgs("E404").
		WillReturnRows(sqlmock.NewRows(employeeColumns))

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	_, err = client.Employees.GetByID(context.Background(), "E404")
	assert.ErrorIs(t, err, hr.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_UpdatePhone(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "updated", affected: 1},
		{name: "unknown employee", affected: 0, wantErr: hr.ErrEmployeeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)

			mock.ExpectBegin()
			mock.ExpectExec(`UPDATE employees\s+SET phone = \$1`).
				WithArgs("+91-9876543210", sqlmock.AnyArg(), "E001").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()

			client, err := repo.NewClient(true)
			require.NoError(t, err)

			err = client.Employees.UpdatePhone(context.Background(), "E001", "+91-9876543210")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			require.NoError(t, client.Commit())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEmployeeRepository_UpdateEmergencyContactPhone_NoContact(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`SET emergency_contact = jsonb_set`).
		WithArgs("+91-9123456789", sqlmock.AnyArg(), "E003").
		WillReturnResult(sqlmock.NewResult(0, 0))

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	err = client.Employees.UpdateEmergencyContactPhone(context.Background(), "E003", "+91-9123456789")
	assert.ErrorIs(t, err, hr.ErrEmergencyContactNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_AddLeaveRecord_UnknownEmployee(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`INSERT INTO leave_records`).
		WillReturnError(&pq.Error{Code: "23503"})

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	err = client.Employees.AddLeaveRecord(context.Background(), "E404", entity.LeaveRecord{
		ID: "L1", Type: "casual", StartDate: "Jan 15", Days: 1, Status: entity.LeaveStatusPending,
	})
	assert.ErrorIs(t, err, hr.ErrEmployeeNotFound)
}

func TestCompanyRepository_Get(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM company_info`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "mission", "hr_phone", "hr_email", "holidays"}).
			AddRow("Acme Corp", "Build useful things", "+91-8000000000", "hr@acme.example", "{\"Jan 26 - Republic Day\",\"Aug 15 - Independence Day\"}"))

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	info, err := client.Company.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", info.Name)
	assert.Equal(t, []string{"Jan 26 - Republic Day", "Aug 15 - Independence Day"}, info.Holidays)
}

func TestCompanyRepository_Get_Missing(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM company_info`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "mission", "hr_phone", "hr_email", "holidays"}))

	client, err := repo.NewClient(false)
	require.NoError(t, err)

	_, err = client.Company.Get(context.Background())
	assert.ErrorIs(t, err, hr.ErrCompanyInfoNotFound)
}
