package reservation

import (
	"context"
	"errors"

	reservationdomain "care-app-go/internal/domain/reservation"
	"care-app-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) withApplication(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Application.Service").
		Preload("Application.Family").
		Preload("Application.Applicant")
}

func (r *PostgresRepository) Create(ctx context.Context, reservation *reservationdomain.Reservation) error {
	err := r.db.WithContext(ctx).Omit("Application").Create(reservation).Error
	if _, ok := pgerr.ForeignKeyViolation(err); ok || pgerr.IsInvalidText(err) {
		return reservationdomain.ErrApprovedApplicationNotFound
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*reservationdomain.Reservation, error) {
	if !pgerr.ValidID(id) {
		return nil, reservationdomain.ErrReservationNotFound
	}
	var reservation reservationdomain.Reservation
	if err := r.withApplication(ctx).Where("id = ?", id).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reservationdomain.ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter reservationdomain.ListFilter) ([]reservationdomain.Reservation, error) {
	query := r.withApplication(ctx)
	if filter.ApplicantID != "" {
		owned := r.db.WithContext(ctx).
			Table("applications").
			Select("id").
			Where("applicant_id = ?", filter.ApplicantID)
		query = query.Where("application_id IN (?)", owned)
	}

	var reservations []reservationdomain.Reservation
	if err := query.
		Order("reserved_date desc").
		Order("start_time desc").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, expected reservationdomain.Status, updates map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&reservationdomain.Reservation{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
