package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/org"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/database"
)

type orgRepository struct {
	db *database.DB
}

// GetByID implements org.OrganizationRepository.
func (o *orgRepository) GetByID(ctx context.Context, id string) (org.Organization, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, name, allowed_ssids, minimum_valid_hours, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var organization org.Organization
	err := q.QueryRow(ctx, query, id).Scan(
		&organization.ID,
		&organization.Name,
		&organization.AllowedSSIDs,
		&organization.MinimumValidHours,
		&organization.CreatedAt,
		&organization.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return org.Organization{}, org.ErrOrganizationNotFound
		}
		return org.Organization{}, fmt.Errorf("failed to get organization: %w", err)
	}

	return organization, nil
}

// List implements org.OrganizationRepository.
func (o *orgRepository) List(ctx context.Context) ([]org.Organization, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT id, name, allowed_ssids, minimum_valid_hours, created_at, updated_at
		FROM organizations
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations: %w", err)
	}
	defer rows.Close()

	var organizations []org.Organization
	for rows.Next() {
		var organization org.Organization
		err := rows.Scan(
			&organization.ID,
			&organization.Name,
			&organization.AllowedSSIDs,
			&organization.MinimumValidHours,
			&organization.CreatedAt,
			&organization.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		organizations = append(organizations, organization)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate organizations: %w", err)
	}

	return organizations, nil
}

// UpdateAllowedSSIDs implements org.OrganizationRepository.
func (o *orgRepository) UpdateAllowedSSIDs(ctx context.Context, id string, ssids org.AllowedSSIDs) error {
	q := GetQuerier(ctx, o.db)

	query := `
		UPDATE organizations
		SET allowed_ssids = $1,
			updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, ssids, id)
	if err != nil {
		return fmt.Errorf("failed to update allowed ssids: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return org.ErrOrganizationNotFound
	}

	return nil
}

// NewOrgRepository creates a new PostgreSQL organization repository
func NewOrgRepository(db *database.DB) org.OrganizationRepository {
	return &orgRepository{db: db}
}
