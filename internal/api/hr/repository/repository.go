package hrRepository

import (
	"EmployeeAssistant/internal/entity"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

// Repository hands out clients over the employee record store. Writes to one
// record are serialised by the backing store (row locks in Postgres, a
// mutex in the file store).
type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db sqlx.ExtContext
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Employees: &employeeRepository{q: db, log: r.log},
		Company:   &companyRepository{q: db, log: r.log},
		Commit:    commitFunc,
		Rollback:  rollbackFunc,
	}, nil
}

type Client struct {
	Employees interface {
		GetByID(ctx context.Context, employeeID string) (entity.Employee, error)
		UpdatePhone(ctx context.Context, employeeID string, phone string) error
		UpdateEmergencyContactPhone(ctx context.Context, employeeID string, phone string) error
		AddLeaveRecord(ctx context.Context, employeeID string, record entity.LeaveRecord) error
	}

	Company interface {
		Get(ctx context.Context) (entity.CompanyInfo, error)
	}

	Commit   func() error
	Rollback func() error
}

type employeeRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type companyRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
