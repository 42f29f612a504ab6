package idempotency

import "care-app-go/internal/domain/apperr"

var (
	ErrPayloadMismatch   = apperr.Conflict("idempotency_key_payload_mismatch", "idempotency key was used with a different payload")
	ErrRequestInProgress = apperr.Conflict("request_in_progress", "a request with this idempotency key is still in progress")
)
