package leave

import (
	"strings"

	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE REQUEST DTOs
// ========================================

var validLeaveTypes = []string{"annual", "sick", "unpaid"}

type SubmitLeaveRequestRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

func (r *SubmitLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(strings.ToLower(r.Type), validLeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: annual, sick, unpaid",
		})
	}

	start, validStart := validator.IsValidDate(r.StartDate)
	if !validStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, validEnd := validator.IsValidDate(r.EndDate)
	if !validEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if validStart && validEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewLeaveRequestRequest struct {
	ID    string  `json:"-"`
	Notes *string `json:"notes,omitempty"`
}

type LeaveRequestResponse struct {
	ID            string             `json:"id"`
	EmployeeID    string             `json:"employee_id"`
	EmployeeName  *string            `json:"employee_name,omitempty"`
	Type          LeaveType          `json:"type"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	Reason        string             `json:"reason"`
	Status        LeaveRequestStatus `json:"status"`
	ReviewerID    *string            `json:"reviewer_id,omitempty"`
	ReviewerNotes *string            `json:"reviewer_notes,omitempty"`
	ReviewedAt    *string            `json:"reviewed_at,omitempty"`
	CreatedAt     string             `json:"created_at"`
	UpdatedAt     string             `json:"updated_at"`
}

type LeaveRequestFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveRequestFilter) Validate() error {
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
		validStatuses := []string{"pending", "approved", "rejected"}
		if !validator.IsInSlice(strings.ToLower(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveBalanceResponse struct {
	EmployeeID    string `json:"employee_id"`
	Year          int    `json:"year"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}

type ListLeaveRequestResponse struct {
	TotalCount    int64                  `json:"total_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	TotalPages    int                    `json:"total_pages"`
	LeaveRequests []LeaveRequestResponse `json:"leave_requests"`
}
