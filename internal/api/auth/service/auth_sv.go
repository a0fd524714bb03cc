package authService

import (
	"EmployeeAssistant/internal/api/auth"
	"EmployeeAssistant/internal/api/hr"
	"EmployeeAssistant/internal/entity"
	contextPkg "EmployeeAssistant/pkg/context"
	jwtPkg "EmployeeAssistant/pkg/jwt"
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *authService) Login(c context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	employee, err := s.getEmployee(c, req.EmployeeID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	if err := s.bcryptUtils.ComparePassword(employee.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"employee_id": req.EmployeeID,
			"error":       err.Error(),
		}).Warn("Password comparison failed")
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expired, err := jwtPkg.Sign(MakeClaims(employee), s.tokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign token")
		return auth.LoginResponse{}, auth.ErrFailedToSignToken
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"employee_id": employee.EmployeeID,
	}).Info("Token created")

	return auth.LoginResponse{
		AccessToken:      token,
		ExpiresAt:        expired,
		ExpiresInMinutes: time.Until(time.Unix(expired, 0)).Minutes(),
		Employee:         MakeProfile(employee),
	}, nil
}

func (s *authService) Me(c context.Context, employeeID string) (auth.EmployeeProfile, error) {
	employee, err := s.getEmployee(c, employeeID)
	if err != nil {
		return auth.EmployeeProfile{}, err
	}
	return MakeProfile(employee), nil
}

func (s *authService) getEmployee(c context.Context, employeeID string) (entity.Employee, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.hrRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Employee{}, err
	}

	employee, err := repo.Employees.GetByID(c, employeeID)
	if err != nil {
		if errors.Is(err, hr.ErrEmployeeNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"employee_id": employeeID,
			}).Warn("Login attempt for unknown employee")
			return entity.Employee{}, auth.ErrEmployeeNotFound
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get employee")
		return entity.Employee{}, err
	}

	return employee, nil
}

// MakeClaims is the token payload read back by the token middleware.
func MakeClaims(e entity.Employee) map[string]interface{} {
	return map[string]interface{}{
		"id":       e.EmployeeID,
		"email":    e.Email,
		"username": e.Name,
	}
}

func MakeProfile(e entity.Employee) auth.EmployeeProfile {
	return auth.EmployeeProfile{
		EmployeeID: e.EmployeeID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Manager:    e.Manager,
	}
}
