package org

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/org"
)

type OrganizationServiceImpl struct {
	org.OrganizationRepository
}

func orgIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return "", fmt.Errorf("org_id claim is missing or invalid")
	}

	return orgID, nil
}

func toResponse(organization org.Organization) org.OrganizationResponse {
	return org.OrganizationResponse{
		ID:                organization.ID,
		Name:              organization.Name,
		AllowedSSIDs:      organization.AllowedSSIDs,
		MinimumValidHours: organization.MinimumValidHours,
	}
}

// GetSettings implements org.OrganizationService.
func (o *OrganizationServiceImpl) GetSettings(ctx context.Context) (org.OrganizationResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return org.OrganizationResponse{}, err
	}

	organization, err := o.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		return org.OrganizationResponse{}, err
	}

	return toResponse(organization), nil
}

// UpdateAllowedSSIDs implements org.OrganizationService.
func (o *OrganizationServiceImpl) UpdateAllowedSSIDs(ctx context.Context, req org.UpdateSSIDsRequest) (org.OrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return org.OrganizationResponse{}, err
	}

	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return org.OrganizationResponse{}, err
	}

	if err := o.OrganizationRepository.UpdateAllowedSSIDs(ctx, orgID, org.AllowedSSIDs(req.AllowedSSIDs)); err != nil {
		return org.OrganizationResponse{}, err
	}

	organization, err := o.OrganizationRepository.GetByID(ctx, orgID)
	if err != nil {
		return org.OrganizationResponse{}, err
	}

	return toResponse(organization), nil
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(orgRepo org.OrganizationRepository) org.OrganizationService {
	return &OrganizationServiceImpl{
		OrganizationRepository: orgRepo,
	}
}
