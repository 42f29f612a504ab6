package notification

import "care-app-go/internal/domain/apperr"

var ErrNotificationNotFound = apperr.NotFound("notification_not_found", "notification not found")
