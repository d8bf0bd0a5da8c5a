package employee

import (
	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
)

var validDayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// UpdateScheduleRequest replaces an employee's working-day set and daily
// hours. Past months keep the schedule snapshotted on the salary ledger.
type UpdateScheduleRequest struct {
	EmployeeID  string   `json:"-"`
	WorkingDays []string `json:"working_days"`
	DailyHours  string   `json:"daily_hours"` // decimal string
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.WorkingDays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "working_days",
			Message: "working_days must not be empty",
		})
	}
	seen := map[string]bool{}
	for _, day := range r.WorkingDays {
		if !validator.IsInSlice(day, validDayNames) {
			errs = append(errs, validator.ValidationError{
				Field:   "working_days",
				Message: "working_days entries must be lowercase day names",
			})
			break
		}
		if seen[day] {
			errs = append(errs, validator.ValidationError{
				Field:   "working_days",
				Message: "working_days must not contain duplicates",
			})
			break
		}
		seen[day] = true
	}

	if validator.IsEmpty(r.DailyHours) {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_hours",
			Message: "daily_hours is required",
		})
	} else if hours, err := decimal.NewFromString(r.DailyHours); err != nil {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateWiFiCheckRequest toggles the check-in location gate.
type UpdateWiFiCheckRequest struct {
	EmployeeID       string `json:"-"`
	RequireWiFiCheck bool   `json:"require_wifi_check"`
}

type EmployeeResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Role             Role     `json:"role"`
	WorkingDays      []string `json:"working_days"`
	DailyHours       string   `json:"daily_hours"`
	RequireWiFiCheck bool     `json:"require_wifi_check"`
	IsActive         bool     `json:"is_active"`
}

type ListEmployeesResponse struct {
	TotalCount int                `json:"total_count"`
	Employees  []EmployeeResponse `json:"employees"`
}
