package attendance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Status is the derived state of an attendance day. It is a closed set:
// every record resolves to exactly one of these.
type Status string

const (
	// StatusAbsent means no check-in was recorded for the day.
	StatusAbsent Status = "absent"
	// StatusIncomplete means the day has a check-in but no check-out yet.
	// Incomplete days never count toward monthly totals.
	StatusIncomplete Status = "incomplete"
	// StatusPresent means both check-in and check-out are recorded. It says
	// nothing about whether minimum hours were met.
	StatusPresent Status = "present"
)

// Method records how the attendance row came to exist.
type Method string

const (
	MethodSelfService Method = "self_service"
	MethodHR          Method = "hr"
)

// Break is one approved break embedded in an attendance record. The ID is
// assigned at creation and is the only key used to locate a break later;
// (start, end) pairs are not unique.
type Break struct {
	ID              string    `json:"id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           *string   `json:"notes,omitempty"`
}

// BreakList is the JSONB-backed break collection on an attendance row.
type BreakList []Break

// Value implements driver.Valuer for database storage
func (b BreakList) Value() (driver.Value, error) {
	if b == nil {
		return json.Marshal(BreakList{})
	}
	return json.Marshal(b)
}

// Scan implements sql.Scanner for database retrieval
func (b *BreakList) Scan(value interface{}) error {
	if value == nil {
		*b = BreakList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan BreakList: invalid type")
	}

	return json.Unmarshal(bytes, b)
}

// Attendance is one record per (employee, calendar date).
type Attendance struct {
	ID          string
	EmployeeID  string
	OrgID       string
	Date        time.Time
	CheckIn     *time.Time
	CheckOut    *time.Time
	Breaks      BreakList
	WorkMinutes *int
	Notes       *string
	MarkedBy    string
	Method      Method
	// Version guards the break-list read-modify-write. Every persisted
	// change to the row increments it.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}
