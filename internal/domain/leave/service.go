package leave

import (
	"context"
)

// LeaveService defines business logic for leave requests.
type LeaveService interface {
	// Submit files a pending leave request for the caller
	Submit(ctx context.Context, req SubmitLeaveRequestRequest) (LeaveRequestResponse, error)

	// Approve marks a pending request approved (HR)
	Approve(ctx context.Context, req ReviewLeaveRequestRequest) (LeaveRequestResponse, error)

	// Reject marks a pending request rejected (HR)
	Reject(ctx context.Context, req ReviewLeaveRequestRequest) (LeaveRequestResponse, error)

	// ListLeaveRequests retrieves requests with filters (HR)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)

	// GetMyLeaveRequests retrieves the caller's own requests
	GetMyLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)

	// GetMyLeaveBalance retrieves the caller's balance for the current year
	GetMyLeaveBalance(ctx context.Context) (LeaveBalanceResponse, error)
}
