package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access methods for leave requests.
type LeaveRepository interface {
	// Create creates a new leave request
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	// GetByID retrieves a leave request by ID with organization isolation
	GetByID(ctx context.Context, id string, orgID string) (LeaveRequest, error)

	// Update persists status and reviewer fields
	Update(ctx context.Context, request LeaveRequest) error

	// List retrieves leave requests with filters and pagination
	List(ctx context.Context, filter LeaveRequestFilter, orgID string) ([]LeaveRequest, int64, error)

	// ListApprovedInRange retrieves approved requests overlapping the
	// inclusive date range for one employee.
	ListApprovedInRange(ctx context.Context, employeeID string, orgID string, from, to time.Time) ([]LeaveRequest, error)

	// GetBalance retrieves the employee's balance for one year, returning
	// ErrLeaveBalanceNotFound when no row exists yet
	GetBalance(ctx context.Context, employeeID string, orgID string, year int) (Balance, error)

	// DebitBalance consumes days from the year's balance, creating the row
	// with the default allowance on first use
	DebitBalance(ctx context.Context, employeeID string, orgID string, year int, days int) error
}
