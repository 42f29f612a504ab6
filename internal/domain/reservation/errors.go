package reservation

import "care-app-go/internal/domain/apperr"

var (
	ErrReservationNotFound         = apperr.NotFound("reservation_not_found", "reservation not found")
	ErrApprovedApplicationNotFound = apperr.NotFound("approved_application_not_found", "no approved application found for this reservation")
	ErrAdminFieldsForbidden        = apperr.PermissionDenied("admin_fields_forbidden", "only an admin can change status or admin note")
	ErrReservationTerminal         = apperr.Conflict("reservation_terminal", "reservation is already completed or cancelled")
	ErrInvalidTransition           = apperr.Conflict("invalid_status_transition", "status transition not allowed")
	ErrStatusChanged               = apperr.Conflict("status_changed", "reservation status changed concurrently")
	ErrEmptyUpdate                 = apperr.Validation("empty_update", "nothing to update")
)
