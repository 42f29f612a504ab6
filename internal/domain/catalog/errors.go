package catalog

import "care-app-go/internal/domain/apperr"

var ErrServiceNotFound = apperr.NotFound("service_not_found", "service not found")
