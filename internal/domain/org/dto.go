package org

import (
	"strings"

	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/validator"
)

// UpdateSSIDsRequest replaces the organization's admitted network list.
// An empty list is allowed and means no network ever passes the gate.
type UpdateSSIDsRequest struct {
	AllowedSSIDs []string `json:"allowed_ssids"`
}

func (r *UpdateSSIDsRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, ssid := range r.AllowedSSIDs {
		if strings.TrimSpace(ssid) == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "allowed_ssids",
				Message: "allowed_ssids entries must not be blank",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OrganizationResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	AllowedSSIDs      []string `json:"allowed_ssids"`
	MinimumValidHours float64  `json:"minimum_valid_hours"`
}
