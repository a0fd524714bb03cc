package hrRepository

import (
	"EmployeeAssistant/internal/api/hr"
	"EmployeeAssistant/internal/entity"
	contextPkg "EmployeeAssistant/pkg/context"
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type CompanyInfoDB struct {
	Name     sql.NullString `db:"name"`
	Mission  sql.NullString `db:"mission"`
	HRPhone  sql.NullString `db:"hr_phone"`
	HREmail  sql.NullString `db:"hr_email"`
	Holidays pq.StringArray `db:"holidays"`
}

func (r *companyRepository) Get(c context.Context) (entity.CompanyInfo, error) {
	requestID := contextPkg.GetRequestID(c)
	var row CompanyInfoDB

	if err := r.q.QueryRowxContext(c, queryGetCompanyInfo).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Company info not configured")
			return entity.CompanyInfo{}, hr.ErrCompanyInfoNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Get company info execution err")
		return entity.CompanyInfo{}, err
	}

	return entity.CompanyInfo{
		Name:     row.Name.String,
		Mission:  row.Mission.String,
		HRPhone:  row.HRPhone.String,
		HREmail:  row.HREmail.String,
		Holidays: []string(row.Holidays),
	}, nil
}
