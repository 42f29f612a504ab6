// Package dbtest opens a throwaway SQLite database with the full schema for
// repository and HTTP tests.
package dbtest

import (
	"strings"
	"testing"
	"time"

	"care-app-go/internal/domain/application"
	"care-app-go/internal/domain/audit"
	"care-app-go/internal/domain/authz"
	"care-app-go/internal/domain/catalog"
	"care-app-go/internal/domain/family"
	"care-app-go/internal/domain/idempotency"
	"care-app-go/internal/domain/notification"
	"care-app-go/internal/domain/reservation"
	"care-app-go/internal/domain/user"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Models() []interface{} {
	return []interface{}{
		&user.Profile{},
		&family.Family{},
		&catalog.CareService{},
		&application.Application{},
		&reservation.Reservation{},
		&notification.Notification{},
		&audit.ActivityLog{},
		&idempotency.Record{},
	}
}

// Open returns an in-memory database private to t.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gormDB, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gormDB.AutoMigrate(Models()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gormDB
}

func SeedProfile(t *testing.T, gormDB *gorm.DB, email string, role authz.Role) *user.Profile {
	t.Helper()
	profile := &user.Profile{
		ID:         uuid.NewString(),
		ExternalID: "ext-" + email,
		Email:      email,
		Role:       role,
	}
	if err := gormDB.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func SeedService(t *testing.T, gormDB *gorm.DB, name string, active bool) *catalog.CareService {
	t.Helper()
	service := &catalog.CareService{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    catalog.CategoryEmergencyCare,
		Description: name + " description",
		IsActive:    true,
	}
	if err := gormDB.Create(service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	if !active {
		if err := gormDB.Model(service).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate service: %v", err)
		}
		service.IsActive = false
	}
	return service
}
