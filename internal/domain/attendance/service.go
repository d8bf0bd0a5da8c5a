package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn creates today's attendance record for the authenticated
	// employee, running the WiFi admission gate first when required.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's open attendance record
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// Backfill creates a complete attendance day on behalf of an employee (HR)
	Backfill(ctx context.Context, req BackfillRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// GetMyAttendance retrieves attendance records for authenticated employee
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (HR)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
