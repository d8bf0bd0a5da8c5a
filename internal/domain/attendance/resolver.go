package attendance

import (
	"time"

	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/timeutil"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
)

// DefaultMinimumValidHours is the net-hours threshold for a valid day.
const DefaultMinimumValidHours = 6.0

// ResolveStatus derives the day's status from record completeness alone.
func ResolveStatus(att Attendance) Status {
	switch {
	case att.CheckIn == nil:
		return StatusAbsent
	case att.CheckOut == nil:
		return StatusIncomplete
	default:
		return StatusPresent
	}
}

// NetMinutes is the authoritative worked time: the check-in to check-out
// span minus all break time, floored at zero. Break durations are derived
// from their start/end times, never read from a stored field.
func NetMinutes(att Attendance) int {
	if att.CheckIn == nil || att.CheckOut == nil {
		return 0
	}

	gross := timeutil.MinutesBetween(*att.CheckIn, *att.CheckOut)

	breakMinutes := 0
	for _, b := range att.Breaks {
		breakMinutes += timeutil.MinutesBetween(b.StartTime, b.EndTime)
	}

	net := gross - breakMinutes
	if net < 0 {
		net = 0
	}
	return net
}

// NetHours converts NetMinutes to fractional hours.
func NetHours(att Attendance) float64 {
	return timeutil.HoursFromMinutes(NetMinutes(att))
}

// IsValidDay reports whether the day counts toward monthly totals: a
// recorded check-out and at least minimumHours of net time. A day missing
// check-out is never valid regardless of elapsed time.
func IsValidDay(att Attendance, minimumHours float64) bool {
	if att.CheckOut == nil {
		return false
	}
	return NetHours(att) >= minimumHours
}

// ValidateBreakWindow checks that [start, end) is a well-formed break that
// fits the record's check-in/check-out window. Violations are reported as
// validation errors; times are never clamped.
func ValidateBreakWindow(att Attendance, start, end time.Time) error {
	var errs validator.ValidationErrors

	if !start.Before(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "break start must be before break end",
		})
		return errs
	}

	if att.CheckIn == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "cannot attach a break to a day without check-in",
		})
		return errs
	}

	if start.Before(*att.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "break starts before check-in",
		})
	}
	if att.CheckOut != nil && end.After(*att.CheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "break ends after check-out",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
