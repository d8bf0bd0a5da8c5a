package salary

import (
	"context"
	"time"
)

// SalaryRepository defines data access methods for the salary ledger.
type SalaryRepository interface {
	// Create appends a ledger row. Existing rows are never updated.
	Create(ctx context.Context, record Record) (Record, error)

	// GetInForce returns the record governing the given date: latest
	// effective_from not after the date, created_at breaking ties.
	// Returns ErrNoSalaryInForce when the ledger has no such row.
	GetInForce(ctx context.Context, employeeID string, orgID string, date time.Time) (Record, error)

	// GetPending returns the latest record whose effective_from is after
	// the given date. Returns ErrSalaryRecordNotFound when none exists.
	GetPending(ctx context.Context, employeeID string, orgID string, after time.Time) (Record, error)

	// ListByEmployee retrieves the full ledger for an employee, newest
	// effective date first.
	ListByEmployee(ctx context.Context, employeeID string, orgID string) ([]Record, error)
}
