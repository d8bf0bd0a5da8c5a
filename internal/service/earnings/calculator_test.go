package earnings

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/attendance"
	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
)

var weekdaySchedule = employee.WorkingDays{"monday", "tuesday", "wednesday", "thursday", "friday"}

// fullDay builds a present attendance record with the given net hours on
// the given date (no breaks).
func fullDay(date time.Time, hours int) attendance.Attendance {
	checkIn := time.Date(date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(time.Duration(hours) * time.Hour)
	return attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       date,
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
	}
}

func TestCalculateMonth_ProRatedEarnings(t *testing.T) {
	// July 2025 has 23 weekdays; April 2025 has 22. Use April for a clean
	// 22-weekday month: 22 days x 8h = 176 expected hours.
	var records []attendance.Attendance
	workedDays := 0
	for d := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC); d.Month() == 4; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if workedDays < 11 {
			records = append(records, fullDay(d, 8))
			workedDays++
		}
	}

	breakdown := CalculateMonth(MonthInputs{
		Year:              2025,
		Month:             time.April,
		WorkingDays:       weekdaySchedule,
		DailyHours:        decimal.NewFromInt(8),
		BaseSalary:        decimal.NewFromInt(20000),
		MinimumValidHours: 6,
		Records:           records,
	})

	assert.Equal(t, 22, breakdown.ScheduledDays)
	assert.Equal(t, 11, breakdown.ValidDays)
	assert.Equal(t, "176", breakdown.ExpectedHours.String())
	assert.Equal(t, "88", breakdown.WorkedHours.String())
	assert.Equal(t, "113.64", breakdown.HourlyRate.StringFixed(2))
	// Half the expected hours worked earns exactly half the base salary.
	assert.Equal(t, "10000.00", breakdown.EarnedSalary.StringFixed(2))
}

func TestCalculateMonth_CappedAtBaseSalary(t *testing.T) {
	var records []attendance.Attendance
	for d := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC); d.Month() == 4; d = d.AddDate(0, 0, 1) {
		// Worked every single day, including weekends, 12h each.
		records = append(records, fullDay(d, 12))
	}

	breakdown := CalculateMonth(MonthInputs{
		Year:              2025,
		Month:             time.April,
		WorkingDays:       weekdaySchedule,
		DailyHours:        decimal.NewFromInt(8),
		BaseSalary:        decimal.NewFromInt(20000),
		MinimumValidHours: 6,
		Records:           records,
	})

	assert.Equal(t, "20000.00", breakdown.EarnedSalary.StringFixed(2))
}

func TestCalculateMonth_ZeroExpectedHours(t *testing.T) {
	breakdown := CalculateMonth(MonthInputs{
		Year:              2025,
		Month:             time.April,
		WorkingDays:       employee.WorkingDays{},
		DailyHours:        decimal.NewFromInt(8),
		BaseSalary:        decimal.NewFromInt(20000),
		MinimumValidHours: 6,
		Records:           []attendance.Attendance{fullDay(time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), 8)},
	})

	assert.True(t, breakdown.ExpectedHours.IsZero())
	assert.True(t, breakdown.EarnedSalary.IsZero())
	assert.True(t, breakdown.HourlyRate.IsZero())
}

func TestCalculateMonth_ExpectedHoursCountEveryScheduledWeekday(t *testing.T) {
	// The denominator is fixed by the schedule alone. A week off (no
	// attendance records at all) still leaves all 22 weekdays expected.
	breakdown := CalculateMonth(MonthInputs{
		Year:              2025,
		Month:             time.April,
		WorkingDays:       weekdaySchedule,
		DailyHours:        decimal.NewFromInt(8),
		BaseSalary:        decimal.NewFromInt(20000),
		MinimumValidHours: 6,
	})

	assert.Equal(t, 22, breakdown.ScheduledDays)
	assert.Equal(t, "176", breakdown.ExpectedHours.String())
	assert.True(t, breakdown.EarnedSalary.IsZero())
}

func TestCalculateMonth_InvalidDaysEarnNothing(t *testing.T) {
	// Below the minimum-hours threshold: present but not a valid day.
	records := []attendance.Attendance{
		fullDay(time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), 4),
	}

	breakdown := CalculateMonth(MonthInputs{
		Year:              2025,
		Month:             time.April,
		WorkingDays:       weekdaySchedule,
		DailyHours:        decimal.NewFromInt(8),
		BaseSalary:        decimal.NewFromInt(20000),
		MinimumValidHours: 6,
		Records:           records,
	})

	assert.Equal(t, 0, breakdown.ValidDays)
	assert.True(t, breakdown.WorkedHours.IsZero())
	assert.True(t, breakdown.EarnedSalary.IsZero())
}
