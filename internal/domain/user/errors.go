package user

import "care-app-go/internal/domain/apperr"

var (
	ErrProfileNotFound = apperr.NotFound("profile_not_found", "user profile not found")
	ErrNoIdentity      = apperr.Unauthenticated("unauthenticated", "authentication required")
)
