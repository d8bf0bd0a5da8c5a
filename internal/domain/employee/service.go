package employee

import (
	"context"
)

// EmployeeService defines business logic for employee profiles.
type EmployeeService interface {
	// GetMyProfile retrieves the authenticated employee's own profile
	GetMyProfile(ctx context.Context) (EmployeeResponse, error)

	// ListEmployees retrieves all active employees (HR)
	ListEmployees(ctx context.Context) (ListEmployeesResponse, error)

	// UpdateSchedule replaces an employee's working schedule (HR)
	UpdateSchedule(ctx context.Context, req UpdateScheduleRequest) (EmployeeResponse, error)

	// UpdateWiFiCheck toggles the check-in location gate for an employee (HR)
	UpdateWiFiCheck(ctx context.Context, req UpdateWiFiCheckRequest) (EmployeeResponse, error)
}
