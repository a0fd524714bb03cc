package hr

import (
	"EmployeeAssistant/pkg/response"
	"net/http"
)

var (
	ErrEmployeeNotFound         = response.NewError(http.StatusNotFound, "employee not found")
	ErrCompanyInfoNotFound      = response.NewError(http.StatusNotFound, "company information not found")
	ErrEmergencyContactNotFound = response.NewError(http.StatusNotFound, "emergency contact not found")
	ErrInvalidPhoneNumber       = response.NewError(http.StatusBadRequest, "invalid phone number")
	ErrUnhandledIntent          = response.NewError(http.StatusNotImplemented, "no handler registered for intent")
	ErrUnknownContinuation      = response.NewError(http.StatusBadRequest, "no handler registered for pending action")
	ErrStoreUnavailable         = response.NewError(http.StatusServiceUnavailable, "employee store unavailable")
)
