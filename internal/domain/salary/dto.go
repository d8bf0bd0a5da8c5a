package salary

import (
	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
)

// ========================================
// SALARY DTOs
// ========================================

var validDayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// RecordSalaryRequest appends a new ledger row. EffectiveFrom is optional;
// when omitted the raise takes effect on the first of next month, and an
// explicit date must itself be the first of a month. The
// schedule fields are optional and default to the schedule currently in
// force; a reason is mandatory whenever the pay terms actually change.
type RecordSalaryRequest struct {
	EmployeeID    string   `json:"employee_id"`
	Amount        string   `json:"amount"`                   // decimal string
	EffectiveFrom *string  `json:"effective_from,omitempty"` // YYYY-MM-DD
	WorkingDays   []string `json:"working_days,omitempty"`
	DailyHours    *string  `json:"daily_hours,omitempty"` // decimal string
	Reason        *string  `json:"reason,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

func (r *RecordSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount is required",
		})
	} else if amount, err := decimal.NewFromString(r.Amount); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a decimal number",
		})
	} else if amount.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must not be negative",
		})
	}

	if r.EffectiveFrom != nil {
		if date, valid := validator.IsValidDate(*r.EffectiveFrom); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_from",
				Message: "effective_from must be in YYYY-MM-DD format",
			})
		} else if date.Day() != 1 {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_from",
				Message: "effective_from must be the first day of a month",
			})
		}
	}

	for _, day := range r.WorkingDays {
		if !validator.IsInSlice(day, validDayNames) {
			errs = append(errs, validator.ValidationError{
				Field:   "working_days",
				Message: "working_days entries must be lowercase day names",
			})
			break
		}
	}

	if r.DailyHours != nil {
		if hours, err := decimal.NewFromString(*r.DailyHours); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "daily_hours",
				Message: "daily_hours must be a decimal number",
			})
		} else if hours.LessThanOrEqual(decimal.Zero) || hours.GreaterThan(decimal.NewFromInt(24)) {
			errs = append(errs, validator.ValidationError{
				Field:   "daily_hours",
				Message: "daily_hours must be between 0 and 24",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SalaryRecordResponse struct {
	ID             string           `json:"id"`
	EmployeeID     string           `json:"employee_id"`
	PreviousAmount string           `json:"previous_amount"`
	Amount         string           `json:"amount"`
	EffectiveFrom  string           `json:"effective_from"`
	Schedule       ScheduleSnapshot `json:"schedule"`
	Reason         *string          `json:"reason,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	CreatedBy      string           `json:"created_by"`
	CreatedAt      string           `json:"created_at"`
}

type SalaryHistoryResponse struct {
	EmployeeID string                 `json:"employee_id"`
	Records    []SalaryRecordResponse `json:"records"`
}

// PendingSalaryResponse carries the latest future-dated ledger row, or nil
// when no change is scheduled.
type PendingSalaryResponse struct {
	EmployeeID string                `json:"employee_id"`
	Pending    *SalaryRecordResponse `json:"pending"`
}

type CurrentSalaryResponse struct {
	EmployeeID    string `json:"employee_id"`
	Amount        string `json:"amount"`
	EffectiveFrom string `json:"effective_from"`
	Source        string `json:"source"` // "ledger" or "profile"
}
