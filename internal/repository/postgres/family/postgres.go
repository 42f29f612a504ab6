package family

import (
	"context"
	"errors"

	familydomain "care-app-go/internal/domain/family"
	"care-app-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(familydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, family *familydomain.Family) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*familydomain.Family, error) {
	if !pgerr.ValidID(id) {
		return nil, familydomain.ErrFamilyNotFound
	}
	var family familydomain.Family
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrFamilyNotFound
		}
		return nil, err
	}
	return &family, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]familydomain.Family, error) {
	var families []familydomain.Family
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&families).Error; err != nil {
		return nil, err
	}
	return families, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	if !pgerr.ValidID(id) {
		return familydomain.ErrFamilyNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&familydomain.Family{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return familydomain.ErrFamilyNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !pgerr.ValidID(id) {
		return familydomain.ErrFamilyNotFound
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&familydomain.Family{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return familydomain.ErrFamilyNotFound
	}
	return nil
}

func (r *PostgresRepository) DetachApplications(ctx context.Context, familyID string) error {
	return r.db.WithContext(ctx).
		Table("applications").
		Where("family_id = ?", familyID).
		Update("family_id", nil).Error
}
