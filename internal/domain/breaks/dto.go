package breaks

import (
	"strings"

	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
)

// ========================================
// BREAK REQUEST DTOs
// ========================================

type SubmitBreakRequestRequest struct {
	AttendanceID string  `json:"attendance_id"`
	StartTime    string  `json:"start_time"` // RFC3339
	EndTime      string  `json:"end_time"`   // RFC3339
	Notes        *string `json:"notes,omitempty"`
}

func (r *SubmitBreakRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	start, validStart := validator.IsValidDateTime(r.StartTime)
	if !validStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be an ISO8601 timestamp",
		})
	}

	end, validEnd := validator.IsValidDateTime(r.EndTime)
	if !validEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be an ISO8601 timestamp",
		})
	}

	if validStart && validEnd && !start.Before(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be before end_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ApproveBreakRequestRequest approves a pending request. Start/end default
// to the requested times when omitted; HR may override either.
type ApproveBreakRequestRequest struct {
	ID        string  `json:"-"`
	StartTime *string `json:"start_time,omitempty"` // RFC3339
	EndTime   *string `json:"end_time,omitempty"`   // RFC3339
	Notes     *string `json:"notes,omitempty"`
}

func (r *ApproveBreakRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartTime != nil {
		if _, valid := validator.IsValidDateTime(*r.StartTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be an ISO8601 timestamp",
			})
		}
	}

	if r.EndTime != nil {
		if _, valid := validator.IsValidDateTime(*r.EndTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectBreakRequestRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectBreakRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DirectAssignBreakRequest is the HR shortcut: the request is created
// already approved and the break lands on the record in the same operation.
type DirectAssignBreakRequest struct {
	AttendanceID string  `json:"attendance_id"`
	StartTime    string  `json:"start_time"` // RFC3339
	EndTime      string  `json:"end_time"`   // RFC3339
	Notes        *string `json:"notes,omitempty"`
}

func (r *DirectAssignBreakRequest) Validate() error {
	sub := SubmitBreakRequestRequest{
		AttendanceID: r.AttendanceID,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
	}
	return sub.Validate()
}

// EditApprovedBreakRequest revises an already-approved break's times. The
// embedded break is located by its stable ID, never by value equality.
type EditApprovedBreakRequest struct {
	ID        string  `json:"-"`
	StartTime string  `json:"start_time"` // RFC3339
	EndTime   string  `json:"end_time"`   // RFC3339
	Notes     *string `json:"notes,omitempty"`
}

func (r *EditApprovedBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	start, validStart := validator.IsValidDateTime(r.StartTime)
	if !validStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be an ISO8601 timestamp",
		})
	}

	end, validEnd := validator.IsValidDateTime(r.EndTime)
	if !validEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be an ISO8601 timestamp",
		})
	}

	if validStart && validEnd && !start.Before(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be before end_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakRequestResponse struct {
	ID              string             `json:"id"`
	AttendanceID    string             `json:"attendance_id"`
	EmployeeID      string             `json:"employee_id"`
	EmployeeName    *string            `json:"employee_name,omitempty"`
	RequestedStart  string             `json:"requested_start"`
	RequestedEnd    string             `json:"requested_end"`
	ApprovedStart   *string            `json:"approved_start,omitempty"`
	ApprovedEnd     *string            `json:"approved_end,omitempty"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"`
	BreakID         *string            `json:"break_id,omitempty"`
	Status          BreakRequestStatus `json:"status"`
	Notes           *string            `json:"notes,omitempty"`
	ReviewerID      *string            `json:"reviewer_id,omitempty"`
	ReviewerNotes   *string            `json:"reviewer_notes,omitempty"`
	ReviewedAt      *string            `json:"reviewed_at,omitempty"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at"`
}

type BreakRequestFilter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	AttendanceID *string `json:"attendance_id,omitempty"`
	Status       *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *BreakRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{"pending", "approved", "rejected", "cancelled"}
		if !validator.IsInSlice(strings.ToLower(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected, cancelled",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListBreakRequestResponse struct {
	TotalCount    int64                  `json:"total_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	TotalPages    int                    `json:"total_pages"`
	BreakRequests []BreakRequestResponse `json:"break_requests"`
}
