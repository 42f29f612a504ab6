package idempotency

import (
	"context"
	"errors"
	"time"

	idempotencydomain "care-app-go/internal/domain/idempotency"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Reserve(ctx context.Context, record *idempotencydomain.Record) (bool, *idempotencydomain.Record, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "actor_id"},
				{Name: "scope"},
				{Name: "idempotency_key"},
			},
			DoNothing: true,
		}).
		Create(record)
	if result.Error != nil {
		return false, nil, result.Error
	}
	if result.RowsAffected == 1 {
		return true, nil, nil
	}

	var existing idempotencydomain.Record
	if err := r.db.WithContext(ctx).
		Where("actor_id = ? AND scope = ? AND idempotency_key = ?", record.ActorID, record.Scope, record.Key).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}

	return false, &existing, nil
}

func (r *PostgresRepository) Takeover(ctx context.Context, id string, staleBefore, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&idempotencydomain.Record{}).
		Where("id = ? AND status = ? AND updated_at < ?", id, idempotencydomain.StateProcessing, staleBefore).
		UpdateColumn("updated_at", now)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *PostgresRepository) Complete(ctx context.Context, id, resourceID string) error {
	return r.db.WithContext(ctx).
		Model(&idempotencydomain.Record{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      idempotencydomain.StateCompleted,
			"resource_id": resourceID,
		}).Error
}

func (r *PostgresRepository) Release(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, idempotencydomain.StateProcessing).
		Delete(&idempotencydomain.Record{}).Error
}
