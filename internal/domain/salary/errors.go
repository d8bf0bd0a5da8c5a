package salary

import "errors"

// Salary domain errors
var (
	ErrSalaryRecordNotFound = errors.New("salary record not found")
	ErrNoSalaryInForce      = errors.New("no salary record in force for the given date")
)
