package org

import (
	"context"
)

// OrganizationService defines business logic for organization settings.
type OrganizationService interface {
	// GetSettings retrieves the caller's organization settings
	GetSettings(ctx context.Context) (OrganizationResponse, error)

	// UpdateAllowedSSIDs replaces the admitted network list (HR)
	UpdateAllowedSSIDs(ctx context.Context, req UpdateSSIDsRequest) (OrganizationResponse, error)
}
