package leave

import (
	"time"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

type LeaveType string

const (
	LeaveTypeAnnual LeaveType = "annual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeUnpaid LeaveType = "unpaid"
)

// Debits reports whether approved leave of this type consumes days from the
// yearly balance.
func (t LeaveType) Debits() bool {
	return t != LeaveTypeUnpaid
}

// LeaveRequest is a day-granular absence request. Approval touches only the
// leave balance; attendance records and earnings never read it.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	OrgID      string

	Type      LeaveType
	StartDate time.Time
	EndDate   time.Time
	Reason    string

	Status        LeaveRequestStatus
	ReviewerID    *string
	ReviewerNotes *string
	ReviewedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Days returns the inclusive length of the leave span in calendar days.
// Comparison is at day granularity.
func (l *LeaveRequest) Days() int {
	start := time.Date(l.StartDate.Year(), l.StartDate.Month(), l.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(l.EndDate.Year(), l.EndDate.Month(), l.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// DefaultAnnualAllowance is the yearly leave balance granted when no balance
// row exists yet for an employee.
const DefaultAnnualAllowance = 12

// Balance is the per-year leave allowance. Approving a debiting leave type
// consumes days from it; it is the only state leave approval mutates besides
// the request row itself.
type Balance struct {
	EmployeeID string
	OrgID      string
	Year       int
	TotalDays  int
	UsedDays   int
	UpdatedAt  time.Time
}

// Remaining returns the days still available this year.
func (b *Balance) Remaining() int {
	return b.TotalDays - b.UsedDays
}
