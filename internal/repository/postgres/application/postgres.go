package application

import (
	"context"
	"errors"
	"strings"

	applicationdomain "care-app-go/internal/domain/application"
	"care-app-go/internal/domain/apperr"
	"care-app-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, application *applicationdomain.Application) error {
	err := r.db.WithContext(ctx).Omit("Service", "Family", "Applicant").Create(application).Error
	if constraint, ok := pgerr.ForeignKeyViolation(err); ok {
		if strings.Contains(constraint, "family") {
			return apperr.Invalid("family_id", "family not found")
		}
		return apperr.Invalid("service_id", "service not found")
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*applicationdomain.Application, error) {
	if !pgerr.ValidID(id) {
		return nil, applicationdomain.ErrApplicationNotFound
	}
	var application applicationdomain.Application
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Family").
		Where("id = ?", id).
		First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, applicationdomain.ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *PostgresRepository) ListByApplicant(ctx context.Context, applicantID string) ([]applicationdomain.Application, error) {
	var applications []applicationdomain.Application
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Family").
		Where("applicant_id = ?", applicantID).
		Order("request_date desc").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter applicationdomain.ListFilter) ([]applicationdomain.Application, error) {
	query := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Family").
		Preload("Applicant")
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var applications []applicationdomain.Application
	if err := query.Order("request_date desc").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *PostgresRepository) CountByStatus(ctx context.Context) (map[applicationdomain.Status]int64, error) {
	type row struct {
		Status applicationdomain.Status
		Count  int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&applicationdomain.Application{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[applicationdomain.Status]int64, len(rows))
	for _, item := range rows {
		counts[item.Status] = item.Count
	}
	return counts, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, change applicationdomain.StatusChange) (bool, error) {
	updates := map[string]interface{}{
		"status":          change.To,
		"processed_at":    change.ProcessedAt,
		"processed_by_id": change.ProcessedByID,
	}
	if change.AdminNotes != nil {
		updates["admin_notes"] = *change.AdminNotes
	}

	result := r.db.WithContext(ctx).
		Model(&applicationdomain.Application{}).
		Where("id = ? AND status = ?", id, change.From).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
