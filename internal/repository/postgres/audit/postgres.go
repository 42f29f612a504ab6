package audit

import (
	"context"

	auditdomain "care-app-go/internal/domain/audit"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, entry *auditdomain.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]auditdomain.ActivityLog, error) {
	var entries []auditdomain.ActivityLog
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
