package org

import (
	"context"
)

// OrganizationRepository defines data access methods for organizations.
type OrganizationRepository interface {
	// GetByID retrieves an organization by ID
	GetByID(ctx context.Context, id string) (Organization, error)

	// List retrieves all organizations. Used by background jobs that
	// sweep every tenant.
	List(ctx context.Context) ([]Organization, error)

	// UpdateAllowedSSIDs replaces the admitted network list
	UpdateAllowedSSIDs(ctx context.Context, id string, ssids AllowedSSIDs) error
}
