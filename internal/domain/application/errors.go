package application

import "care-app-go/internal/domain/apperr"

var (
	ErrApplicationNotFound = apperr.NotFound("application_not_found", "application not found")
	ErrInvalidTransition   = apperr.Conflict("invalid_status_transition", "status transition not allowed")
	ErrStatusChanged       = apperr.Conflict("status_changed", "application status changed concurrently")
)
