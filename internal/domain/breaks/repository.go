package breaks

import (
	"context"
)

// BreakRequestRepository defines data access methods for break requests.
type BreakRequestRepository interface {
	// Create creates a new break request
	Create(ctx context.Context, request BreakRequest) (BreakRequest, error)

	// GetByID retrieves a break request by ID with organization isolation
	GetByID(ctx context.Context, id string, orgID string) (BreakRequest, error)

	// Update persists status, approved times, reviewer fields and break link
	Update(ctx context.Context, request BreakRequest) error

	// Delete hard-deletes a break request. The service layer only allows
	// this for pending requests.
	Delete(ctx context.Context, id string, orgID string) error

	// List retrieves break requests with filters and pagination
	List(ctx context.Context, filter BreakRequestFilter, orgID string) ([]BreakRequest, int64, error)
}
