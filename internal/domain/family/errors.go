package family

import "care-app-go/internal/domain/apperr"

var (
	ErrFamilyNotFound = apperr.NotFound("family_not_found", "family not found")
	ErrEmptyUpdate    = apperr.Validation("empty_update", "nothing to update")
)
