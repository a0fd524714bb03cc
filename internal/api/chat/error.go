package chat

import (
	"EmployeeAssistant/pkg/response"
	"net/http"
)

var (
	ErrSessionNotFound  = response.NewError(http.StatusNotFound, "chat session not found")
	ErrSessionForbidden = response.NewError(http.StatusForbidden, "chat session belongs to another employee")
	ErrEmptyMessage     = response.NewError(http.StatusBadRequest, "message is empty")
	ErrSessionStore     = response.NewError(http.StatusServiceUnavailable, "chat session store unavailable")
)
