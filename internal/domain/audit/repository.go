package audit

import "context"

type Repository interface {
	Append(ctx context.Context, entry *ActivityLog) error
	ListRecent(ctx context.Context, limit int) ([]ActivityLog, error)
}
