package dashboard

import (
	"context"

	applicationdomain "care-app-go/internal/domain/application"
	dashboarddomain "care-app-go/internal/domain/dashboard"
	familydomain "care-app-go/internal/domain/family"
	reservationdomain "care-app-go/internal/domain/reservation"
	userdomain "care-app-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Counts(ctx context.Context) (dashboarddomain.Counts, error) {
	var counts dashboarddomain.Counts
	db := r.db.WithContext(ctx)

	steps := []struct {
		model interface{}
		where []interface{}
		dst   *int64
	}{
		{model: &userdomain.Profile{}, dst: &counts.Users},
		{model: &familydomain.Family{}, dst: &counts.Families},
		{model: &applicationdomain.Application{}, dst: &counts.Applications},
		{model: &applicationdomain.Application{}, where: []interface{}{"status = ?", applicationdomain.StatusPending}, dst: &counts.PendingApplications},
		{model: &applicationdomain.Application{}, where: []interface{}{"status = ?", applicationdomain.StatusApproved}, dst: &counts.ApprovedApplications},
		{model: &reservationdomain.Reservation{}, dst: &counts.Reservations},
		{model: &reservationdomain.Reservation{}, where: []interface{}{"status = ?", reservationdomain.StatusPending}, dst: &counts.PendingReservations},
	}

	for _, step := range steps {
		query := db.Model(step.model)
		if len(step.where) > 0 {
			query = query.Where(step.where[0], step.where[1:]...)
		}
		if err := query.Count(step.dst).Error; err != nil {
			return dashboarddomain.Counts{}, err
		}
	}

	return counts, nil
}

func (r *PostgresRepository) RecentApplications(ctx context.Context, limit int) ([]applicationdomain.Application, error) {
	var applications []applicationdomain.Application
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Applicant").
		Order("request_date desc").
		Limit(limit).
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}
