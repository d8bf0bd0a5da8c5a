package timeutil

import (
	"fmt"
	"math"
	"time"
)

// MinutesBetween returns the whole minutes from start to end, floored at zero.
func MinutesBetween(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(math.Floor(end.Sub(start).Minutes()))
}

// HoursFromMinutes converts whole minutes to fractional hours.
func HoursFromMinutes(minutes int) float64 {
	return float64(minutes) / 60.0
}

// OverlapMinutes returns the whole minutes the span [start, end) overlaps
// the window [windowStart, windowEnd). Zero when the ranges are disjoint
// or inverted.
func OverlapMinutes(start, end, windowStart, windowEnd time.Time) int {
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(windowEnd) {
		end = windowEnd
	}
	return MinutesBetween(start, end)
}

// FormatHours renders fractional hours as "8h 30m".
func FormatHours(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	totalMinutes := int(math.Round(hours * 60))
	return fmt.Sprintf("%dh %02dm", totalMinutes/60, totalMinutes%60)
}

// StartOfMonth returns midnight UTC on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns midnight UTC on the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// DateOnly truncates t to a calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
