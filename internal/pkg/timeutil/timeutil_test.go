package timeutil

import (
	"testing"
	"time"
)

func ts(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestMinutesBetween(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"normal span", ts(9, 0), ts(17, 30), 510},
		{"zero span", ts(9, 0), ts(9, 0), 0},
		{"inverted span clamps to zero", ts(17, 0), ts(9, 0), 0},
		{"sub-minute floors", ts(9, 0), ts(9, 0).Add(59 * time.Second), 0},
	}
	for _, c := range cases {
		if got := MinutesBetween(c.start, c.end); got != c.want {
			t.Errorf("%s: MinutesBetween = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestHoursFromMinutes(t *testing.T) {
	if got := HoursFromMinutes(510); got != 8.5 {
		t.Errorf("HoursFromMinutes(510) = %v, want 8.5", got)
	}
	if got := HoursFromMinutes(0); got != 0 {
		t.Errorf("HoursFromMinutes(0) = %v, want 0", got)
	}
}

func TestOverlapMinutes(t *testing.T) {
	cases := []struct {
		name                   string
		start, end             time.Time
		windowStart, windowEnd time.Time
		want                   int
	}{
		{"fully inside", ts(13, 0), ts(13, 30), ts(9, 0), ts(18, 0), 30},
		{"clipped at window end", ts(17, 30), ts(18, 30), ts(9, 0), ts(18, 0), 30},
		{"clipped at window start", ts(8, 30), ts(9, 30), ts(9, 0), ts(18, 0), 30},
		{"disjoint", ts(19, 0), ts(20, 0), ts(9, 0), ts(18, 0), 0},
	}
	for _, c := range cases {
		if got := OverlapMinutes(c.start, c.end, c.windowStart, c.windowEnd); got != c.want {
			t.Errorf("%s: OverlapMinutes = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{8.5, "8h 30m"},
		{0, "0h 00m"},
		{-1, "0h 00m"},
		{0.25, "0h 15m"},
	}
	for _, c := range cases {
		if got := FormatHours(c.hours); got != c.want {
			t.Errorf("FormatHours(%v) = %q, want %q", c.hours, got, c.want)
		}
	}
}

func TestStartAndEndOfMonth(t *testing.T) {
	d := time.Date(2025, 2, 14, 13, 45, 0, 0, time.UTC)
	if got := StartOfMonth(d); !got.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartOfMonth = %v", got)
	}
	if got := EndOfMonth(d); !got.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("EndOfMonth = %v", got)
	}
}
