package salary

import (
	"context"
	"time"
)

// SalaryService defines business logic for the salary ledger.
type SalaryService interface {
	// RecordSalary appends a new ledger row (HR). When effective_from is
	// omitted it defaults to the first of next month.
	RecordSalary(ctx context.Context, req RecordSalaryRequest) (SalaryRecordResponse, error)

	// GetHistory retrieves the full ledger for an employee (HR)
	GetHistory(ctx context.Context, employeeID string) (SalaryHistoryResponse, error)

	// GetPendingSalary returns the latest future-dated change, if any (HR)
	GetPendingSalary(ctx context.Context, employeeID string) (PendingSalaryResponse, error)

	// GetCurrentSalary resolves the amount in force on the given date,
	// falling back to the profile base salary when the ledger is empty.
	GetCurrentSalary(ctx context.Context, employeeID string, date time.Time) (CurrentSalaryResponse, error)
}
