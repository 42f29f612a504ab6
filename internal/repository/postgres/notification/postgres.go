package notification

import (
	"context"
	"errors"

	notificationdomain "care-app-go/internal/domain/notification"
	"care-app-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, notification *notificationdomain.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *PostgresRepository) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]notificationdomain.Notification, error) {
	var items []notificationdomain.Notification
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) SetRead(ctx context.Context, recipientID, id string, isRead bool) (*notificationdomain.Notification, error) {
	if !pgerr.ValidID(id) {
		return nil, notificationdomain.ErrNotificationNotFound
	}
	var item notificationdomain.Notification
	err := r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notificationdomain.ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}

	if item.IsRead != isRead {
		if err := r.db.WithContext(ctx).
			Model(&notificationdomain.Notification{}).
			Where("id = ?", item.ID).
			Update("is_read", isRead).Error; err != nil {
			return nil, err
		}
		item.IsRead = isRead
	}
	return &item, nil
}

func (r *PostgresRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&notificationdomain.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
