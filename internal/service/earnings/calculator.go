package earnings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/timeutil"
)

var sixty = decimal.NewFromInt(60)

// MonthInputs is everything the month calculation reads. It is deliberately
// a plain value so the calculation stays a pure function.
type MonthInputs struct {
	Year  int
	Month time.Month

	WorkingDays employee.WorkingDays
	DailyHours  decimal.Decimal
	BaseSalary  decimal.Decimal

	MinimumValidHours float64

	Records []attendance.Attendance
}

// MonthBreakdown is the result of one month's earnings calculation.
type MonthBreakdown struct {
	ScheduledDays int
	ValidDays     int

	ExpectedHours decimal.Decimal
	WorkedHours   decimal.Decimal
	HourlyRate    decimal.Decimal
	EarnedSalary  decimal.Decimal
}

// CalculateMonth computes earned salary for one calendar month.
//
// Expected hours come from the working-day schedule: every scheduled weekday
// in the month contributes DailyHours, whether or not the day was worked.
// Worked hours sum the net minutes of valid days only. Earned salary is
// worked hours times the hourly rate, capped at the base salary. A month
// with zero expected hours earns zero.
func CalculateMonth(in MonthInputs) MonthBreakdown {
	monthStart := time.Date(in.Year, in.Month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := timeutil.EndOfMonth(monthStart)

	var breakdown MonthBreakdown

	for d := monthStart; !d.After(monthEnd); d = d.AddDate(0, 0, 1) {
		if in.WorkingDays.Contains(d.Weekday()) {
			breakdown.ScheduledDays++
		}
	}

	breakdown.ExpectedHours = in.DailyHours.Mul(decimal.NewFromInt(int64(breakdown.ScheduledDays)))

	workedMinutes := 0
	for _, att := range in.Records {
		if !attendance.IsValidDay(att, in.MinimumValidHours) {
			continue
		}
		breakdown.ValidDays++
		workedMinutes += attendance.NetMinutes(att)
	}
	breakdown.WorkedHours = decimal.NewFromInt(int64(workedMinutes)).Div(sixty)

	if breakdown.ExpectedHours.IsZero() {
		breakdown.HourlyRate = decimal.Zero
		breakdown.EarnedSalary = decimal.Zero
		return breakdown
	}

	breakdown.HourlyRate = in.BaseSalary.Div(breakdown.ExpectedHours)

	earned := breakdown.HourlyRate.Mul(breakdown.WorkedHours)
	if earned.GreaterThan(in.BaseSalary) {
		earned = in.BaseSalary
	}
	breakdown.EarnedSalary = earned.Round(2)
	breakdown.HourlyRate = breakdown.HourlyRate.Round(2)
	breakdown.WorkedHours = breakdown.WorkedHours.Round(2)

	return breakdown
}
