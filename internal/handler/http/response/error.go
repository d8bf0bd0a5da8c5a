package response

import (
	"errors"
	"net/http"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/breaks"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/leave"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/org"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/salary"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open check-in for today", nil)
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out time must be after check-in time", nil)
	case errors.Is(err, attendance.ErrLocationVerificationFailed):
		Forbidden(w, "Location verification failed: network not admitted")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrVersionConflict):
		Conflict(w, "Attendance record was modified concurrently, please retry")

	// Break request domain errors
	case errors.Is(err, breaks.ErrBreakRequestNotFound):
		NotFound(w, "Break request not found")
	case errors.Is(err, breaks.ErrBreakRequestAlreadyProcessed):
		Conflict(w, "Break request has already been processed")
	case errors.Is(err, breaks.ErrBreakNotFound):
		NotFound(w, "Break not found on attendance record")
	case errors.Is(err, breaks.ErrOnlyPendingDeletable):
		Conflict(w, "Only pending break requests can be deleted")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")
	case errors.Is(err, employee.ErrHRAccessRequired):
		Forbidden(w, "HR role required")
	case errors.Is(err, employee.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing access token")

	// Organization domain errors
	case errors.Is(err, org.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")

	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrNoSalaryInForce):
		NotFound(w, "No salary in force for the given date")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInsufficientLeaveBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrLeaveBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
