package org

import "errors"

// Organization domain errors
var (
	ErrOrganizationNotFound = errors.New("organization not found")
)
