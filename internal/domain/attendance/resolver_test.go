package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timeAt(hour, min int) *time.Time {
	t := time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
	return &t
}

func TestResolveStatus(t *testing.T) {
	cases := []struct {
		name string
		att  Attendance
		want Status
	}{
		{"no check-in is absent", Attendance{}, StatusAbsent},
		{"check-in only is incomplete", Attendance{CheckIn: timeAt(9, 0)}, StatusIncomplete},
		{"both is present", Attendance{CheckIn: timeAt(9, 0), CheckOut: timeAt(18, 0)}, StatusPresent},
		{"check-out without check-in is absent", Attendance{CheckOut: timeAt(18, 0)}, StatusAbsent},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ResolveStatus(c.att), c.name)
	}
}

func TestNetHours_WithBreak(t *testing.T) {
	// check-in 09:00, break 13:00-13:30, check-out 18:00 -> 8.5h
	att := Attendance{
		CheckIn:  timeAt(9, 0),
		CheckOut: timeAt(18, 0),
		Breaks: BreakList{
			{ID: "b1", StartTime: *timeAt(13, 0), EndTime: *timeAt(13, 30), DurationMinutes: 30},
		},
	}

	assert.Equal(t, 510, NetMinutes(att))
	assert.Equal(t, 8.5, NetHours(att))
	assert.True(t, IsValidDay(att, DefaultMinimumValidHours))
}

func TestNetHours_BreaksExceedSpan_ClampsAtZero(t *testing.T) {
	att := Attendance{
		CheckIn:  timeAt(9, 0),
		CheckOut: timeAt(10, 0),
		Breaks: BreakList{
			{ID: "b1", StartTime: *timeAt(9, 0), EndTime: *timeAt(10, 30)},
			{ID: "b2", StartTime: *timeAt(9, 15), EndTime: *timeAt(9, 45)},
		},
	}

	assert.Equal(t, 0, NetMinutes(att))
	assert.GreaterOrEqual(t, NetHours(att), 0.0)
}

func TestIsValidDay_MissingCheckOutNeverValid(t *testing.T) {
	// Checked in yesterday, still open: elapsed time is irrelevant.
	yesterday := time.Now().UTC().Add(-26 * time.Hour)
	att := Attendance{CheckIn: &yesterday}

	assert.Equal(t, StatusIncomplete, ResolveStatus(att))
	assert.False(t, IsValidDay(att, DefaultMinimumValidHours))
}

func TestIsValidDay_BelowMinimum(t *testing.T) {
	att := Attendance{CheckIn: timeAt(9, 0), CheckOut: timeAt(13, 0)}

	assert.False(t, IsValidDay(att, DefaultMinimumValidHours))
	assert.True(t, IsValidDay(att, 4))
}

func TestValidateBreakWindow(t *testing.T) {
	closed := Attendance{CheckIn: timeAt(9, 0), CheckOut: timeAt(18, 0)}
	open := Attendance{CheckIn: timeAt(9, 0)}

	cases := []struct {
		name    string
		att     Attendance
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"inside closed window", closed, *timeAt(13, 0), *timeAt(13, 30), false},
		{"start equals check-in", closed, *timeAt(9, 0), *timeAt(9, 30), false},
		{"end equals check-out", closed, *timeAt(17, 30), *timeAt(18, 0), false},
		{"inverted range", closed, *timeAt(14, 0), *timeAt(13, 0), true},
		{"before check-in", closed, *timeAt(8, 0), *timeAt(8, 30), true},
		{"after check-out", closed, *timeAt(18, 0), *timeAt(19, 0), true},
		{"open window allows future end", open, *timeAt(13, 0), *timeAt(13, 30), false},
		{"no check-in at all", Attendance{}, *timeAt(13, 0), *timeAt(13, 30), true},
	}
	for _, c := range cases {
		err := ValidateBreakWindow(c.att, c.start, c.end)
		if c.wantErr {
			assert.Error(t, err, c.name)
		} else {
			assert.NoError(t, err, c.name)
		}
	}
}
