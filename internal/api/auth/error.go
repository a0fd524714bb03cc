package auth

import (
	"EmployeeAssistant/pkg/response"
	"net/http"
)

var (
	ErrInvalidCredentials = response.NewError(http.StatusUnauthorized, "employee id or password is wrong")
	ErrEmployeeNotFound   = response.NewError(http.StatusNotFound, "employee not found")
	ErrorInvalidToken     = response.NewError(http.StatusUnauthorized, "invalid token")
	ErrFailedToSignToken  = response.NewError(http.StatusInternalServerError, "failed to sign token")
)
