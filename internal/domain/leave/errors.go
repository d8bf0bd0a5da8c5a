package leave

import "errors"

// Leave request domain errors
var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request has already been processed")
	ErrLeaveBalanceNotFound         = errors.New("leave balance not found")
	ErrInsufficientLeaveBalance     = errors.New("insufficient leave balance")
)
