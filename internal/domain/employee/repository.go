package employee

import (
	"context"
)

// EmployeeRepository defines data access methods for employee profiles.
type EmployeeRepository interface {
	// GetByID retrieves an employee by ID with organization isolation
	GetByID(ctx context.Context, id string, orgID string) (Employee, error)

	// ListActive retrieves all active employees in the organization
	ListActive(ctx context.Context, orgID string) ([]Employee, error)

	// UpdateSchedule persists working days and daily hours
	UpdateSchedule(ctx context.Context, id string, orgID string, days WorkingDays, dailyHours string) error

	// UpdateWiFiCheck toggles the check-in location gate for one employee
	UpdateWiFiCheck(ctx context.Context, id string, orgID string, required bool) error
}
