package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include orgID parameter to prevent cross-organization data access.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID with organization isolation
	GetByID(ctx context.Context, id string, orgID string) (Attendance, error)

	// GetByEmployeeAndDate retrieves attendance for specific employee on specific date.
	// Used to prevent double check-in. Returns nil when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, orgID string) (*Attendance, error)

	// Update updates check-in/check-out/notes/work minutes on an existing
	// record and bumps its version.
	Update(ctx context.Context, attendance Attendance) error

	// UpdateBreaks replaces the record's break list and derived work
	// minutes, conditional on expectedVersion. Returns ErrVersionConflict
	// when the row moved on since it was read.
	UpdateBreaks(ctx context.Context, id string, orgID string, breaks BreakList, workMinutes int, expectedVersion int) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter, orgID string) ([]Attendance, int64, error)

	// GetMyAttendance retrieves attendance records for a specific employee
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter, orgID string) ([]Attendance, int64, error)

	// ListByEmployeeAndRange retrieves all records for an employee with
	// date in [from, to], unpaginated. Used by the earnings aggregation.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, orgID string) ([]Attendance, error)

	// HasRecordForDate reports whether any record exists for the employee
	// on the given local date.
	HasRecordForDate(ctx context.Context, employeeID string, date string, orgID string) (bool, error)

	// BulkCreateAbsences inserts zero-hour absence records. Used by the
	// nightly absence job.
	BulkCreateAbsences(ctx context.Context, absences []Attendance) error
}
