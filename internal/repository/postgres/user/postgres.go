package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"care-app-go/internal/domain/authz"
	domain "care-app-go/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureProfile inserts profile, or refreshes the contact fields of the row
// holding its external id. The refresh only fires when one of them changed,
// so repeat logins do not write.
func (r *PostgresRepository) EnsureProfile(ctx context.Context, profile *domain.Profile) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	var changed []string
	if profile.Email != "" {
		updates["email"] = profile.Email
		changed = append(changed, "user_profiles.email <> excluded.email")
	}
	if profile.FirstName != nil {
		updates["first_name"] = profile.FirstName
		changed = append(changed, "COALESCE(user_profiles.first_name, '') <> excluded.first_name")
	}
	if profile.LastName != nil {
		updates["last_name"] = profile.LastName
		changed = append(changed, "COALESCE(user_profiles.last_name, '') <> excluded.last_name")
	}

	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "external_id"}}}
	if len(changed) == 0 {
		conflict.DoNothing = true
	} else {
		conflict.DoUpdates = clause.Assignments(updates)
		conflict.Where = clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "(" + strings.Join(changed, " OR ") + ")"},
		}}
	}

	return r.db.WithContext(ctx).Clauses(conflict).Create(profile).Error
}

func (r *PostgresRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Profile, error) {
	return r.first(ctx, "external_id = ?", externalID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.first(ctx, "lower(email) = lower(?)", email)
}

func (r *PostgresRepository) first(ctx context.Context, query string, arg interface{}) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.WithContext(ctx).Where(query, arg).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, id string, role authz.Role) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Profile, error) {
	var profiles []domain.Profile
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
