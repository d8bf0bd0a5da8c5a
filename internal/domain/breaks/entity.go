package breaks

import (
	"time"
)

type BreakRequestStatus string

const (
	BreakRequestStatusPending   BreakRequestStatus = "pending"
	BreakRequestStatusApproved  BreakRequestStatus = "approved"
	BreakRequestStatusRejected  BreakRequestStatus = "rejected"
	BreakRequestStatusCancelled BreakRequestStatus = "cancelled"
)

// BreakRequest is a proposal to add a break to an attendance record. The
// approved times may differ from the requested ones when HR adjusts them.
// Once processed (approved/rejected/cancelled) a request is immutable audit
// history; only pending requests may be deleted.
type BreakRequest struct {
	ID           string
	AttendanceID string
	EmployeeID   string
	OrgID        string

	RequestedStart time.Time
	RequestedEnd   time.Time

	ApprovedStart   *time.Time
	ApprovedEnd     *time.Time
	DurationMinutes *int

	// BreakID links to the embedded break appended on approval.
	BreakID *string

	Status        BreakRequestStatus
	Notes         *string
	ReviewerID    *string
	ReviewerNotes *string
	ReviewedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}
