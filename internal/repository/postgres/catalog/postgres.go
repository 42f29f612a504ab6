package catalog

import (
	"context"
	"errors"

	catalogdomain "care-app-go/internal/domain/catalog"
	"care-app-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]catalogdomain.CareService, error) {
	var services []catalogdomain.CareService
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at asc").
		Order("name asc").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*catalogdomain.CareService, error) {
	if !pgerr.ValidID(id) {
		return nil, catalogdomain.ErrServiceNotFound
	}
	var service catalogdomain.CareService
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrServiceNotFound
		}
		return nil, err
	}
	return &service, nil
}
