package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is not active")
	ErrHRAccessRequired = errors.New("hr role required")
	ErrInvalidToken     = errors.New("invalid or missing access token")
)
