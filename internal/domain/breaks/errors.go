package breaks

import "errors"

// Break request domain errors
var (
	ErrBreakRequestNotFound         = errors.New("break request not found")
	ErrBreakRequestAlreadyProcessed = errors.New("break request has already been processed")
	ErrBreakNotFound                = errors.New("break not found on the attendance record")
	ErrOnlyPendingDeletable         = errors.New("only pending break requests can be deleted")
)
