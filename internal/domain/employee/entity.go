package employee

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// WorkingDays is the set of scheduled weekdays, stored as a JSONB array of
// lowercase day names ("monday" .. "sunday").
type WorkingDays []string

// Value implements driver.Valuer for JSONB storage
func (w WorkingDays) Value() (driver.Value, error) {
	if w == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(w)
}

// Scan implements sql.Scanner for JSONB retrieval
func (w *WorkingDays) Scan(value interface{}) error {
	if value == nil {
		*w = WorkingDays{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for WorkingDays")
	}

	return json.Unmarshal(data, w)
}

// Contains reports whether the given weekday is a scheduled working day.
func (w WorkingDays) Contains(day time.Weekday) bool {
	name := weekdayName(day)
	for _, d := range w {
		if d == name {
			return true
		}
	}
	return false
}

func weekdayName(day time.Weekday) string {
	switch day {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}

// Employee carries the profile fields the attendance and earnings engines
// read: the working schedule, the base salary, and whether clock-in must
// pass the network location check.
type Employee struct {
	ID    string
	OrgID string

	FirstName string
	LastName  *string
	Email     string
	Role      Role

	WorkingDays WorkingDays
	DailyHours  decimal.Decimal
	BaseSalary  decimal.Decimal

	RequireWiFiCheck bool

	EmploymentStart time.Time
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the display name
func (e *Employee) FullName() string {
	if e.LastName != nil && *e.LastName != "" {
		return e.FirstName + " " + *e.LastName
	}
	return e.FirstName
}
