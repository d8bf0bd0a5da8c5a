package org

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// AllowedSSIDs is the list of office network names admitted at clock-in,
// stored as a JSONB array.
type AllowedSSIDs []string

// Value implements driver.Valuer for JSONB storage
func (a AllowedSSIDs) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB retrieval
func (a *AllowedSSIDs) Scan(value interface{}) error {
	if value == nil {
		*a = AllowedSSIDs{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for AllowedSSIDs")
	}

	return json.Unmarshal(data, a)
}

// Organization is the tenant. Attendance policy knobs live here.
type Organization struct {
	ID   string
	Name string

	AllowedSSIDs AllowedSSIDs

	// MinimumValidHours is the net-hours threshold for a day to count as
	// valid. Zero means use the application default.
	MinimumValidHours float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
