package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn           = errors.New("you have already checked in today")
	ErrNotCheckedIn               = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut          = errors.New("you have already checked out")
	ErrCheckOutBeforeCheckIn      = errors.New("check-out must be after check-in")
	ErrLocationVerificationFailed = errors.New("device network is not on the organization's allow-list")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrVersionConflict    = errors.New("attendance record was modified concurrently")
)
