package salary

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleSnapshot captures the working schedule in force when a salary
// record was written, stored as JSONB. Earnings for past months read the
// snapshot, not the live profile.
type ScheduleSnapshot struct {
	WorkingDays []string        `json:"working_days"`
	DailyHours  decimal.Decimal `json:"daily_hours"`
}

// Value implements driver.Valuer for JSONB storage
func (s ScheduleSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB retrieval
func (s *ScheduleSnapshot) Scan(value interface{}) error {
	if value == nil {
		*s = ScheduleSnapshot{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for ScheduleSnapshot")
	}

	return json.Unmarshal(data, s)
}

// Record is one row of the append-only salary ledger. The amount in force
// on a given date is the record with the latest effective_from not after
// that date; ties resolve to the most recently created row. PreviousAmount
// preserves the value the row replaced so the ledger reads as a history of
// changes, not just states.
type Record struct {
	ID         string
	EmployeeID string
	OrgID      string

	PreviousAmount decimal.Decimal
	Amount         decimal.Decimal
	EffectiveFrom  time.Time
	Schedule       ScheduleSnapshot

	Reason    *string
	Notes     *string
	CreatedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextEffectiveDate returns the first day of the month after now. A raise
// recorded mid-month defaults to taking effect at the next month boundary.
func NextEffectiveDate(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
}
