package salary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextEffectiveDate(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "mid month",
			now:      time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC),
			expected: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "first of month still moves forward",
			now:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "december rolls into next year",
			now:      time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC),
			expected: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "last day of january",
			now:      time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextEffectiveDate(tt.now))
		})
	}
}
