package breaks

import (
	"context"
)

// BreakRequestService defines business logic for the break request lifecycle.
type BreakRequestService interface {
	// Submit files a pending request against one of the caller's own
	// attendance records.
	Submit(ctx context.Context, req SubmitBreakRequestRequest) (BreakRequestResponse, error)

	// Approve marks a pending request approved and atomically appends the
	// break to the linked attendance record (HR).
	Approve(ctx context.Context, req ApproveBreakRequestRequest) (BreakRequestResponse, error)

	// Reject marks a pending request rejected with a reason (HR)
	Reject(ctx context.Context, req RejectBreakRequestRequest) (BreakRequestResponse, error)

	// Cancel withdraws the caller's own pending request; terminal, with a
	// system-authored note.
	Cancel(ctx context.Context, id string) (BreakRequestResponse, error)

	// DirectAssign creates an already-approved request and appends the
	// break in the same operation (HR).
	DirectAssign(ctx context.Context, req DirectAssignBreakRequest) (BreakRequestResponse, error)

	// EditApproved revises an approved break's times on both the request
	// and the attendance record (HR).
	EditApproved(ctx context.Context, req EditApprovedBreakRequest) (BreakRequestResponse, error)

	// Delete removes a pending request entirely
	Delete(ctx context.Context, id string) error

	// GetBreakRequest retrieves a single request by ID
	GetBreakRequest(ctx context.Context, id string) (BreakRequestResponse, error)

	// ListBreakRequests retrieves requests with filters (HR)
	ListBreakRequests(ctx context.Context, filter BreakRequestFilter) (ListBreakRequestResponse, error)

	// GetMyBreakRequests retrieves the caller's own requests
	GetMyBreakRequests(ctx context.Context, filter BreakRequestFilter) (ListBreakRequestResponse, error)
}
