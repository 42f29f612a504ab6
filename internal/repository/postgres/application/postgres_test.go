package application

import (
	"context"
	"testing"
	"time"

	"care-app-go/internal/db/dbtest"
	applicationdomain "care-app-go/internal/domain/application"
	"care-app-go/internal/domain/apperr"
	"care-app-go/internal/domain/authz"
	catalogdomain "care-app-go/internal/domain/catalog"
	familydomain "care-app-go/internal/domain/family"
	catalogrepo "care-app-go/internal/repository/postgres/catalog"
	familyrepo "care-app-go/internal/repository/postgres/family"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationLifecycleOverSQLite(t *testing.T) {
	gormDB := dbtest.Open(t)
	applicant := dbtest.SeedProfile(t, gormDB, "u@example.com", authz.RoleUser)
	admin := dbtest.SeedProfile(t, gormDB, "admin@example.com", authz.RoleAdmin)
	service := dbtest.SeedService(t, gormDB, "긴급돌봄", true)

	families := familyrepo.NewPostgres(gormDB)
	catalog := catalogdomain.NewService(catalogrepo.NewPostgres(gormDB), nil, 0)
	repo := NewPostgres(gormDB)
	svc := applicationdomain.NewService(repo, catalog, families, nil)
	ctx := context.Background()

	family, err := familydomain.NewService(families, nil).Create(ctx, applicant.Actor(), familydomain.CreateInput{FamilyName: "Han", MemberCount: 2})
	require.NoError(t, err)

	created, err := svc.Create(ctx, applicant.Actor(), applicationdomain.CreateInput{
		ServiceID: service.ID,
		FamilyID:  family.ID,
		Content:   "need care for my child",
	})
	require.NoError(t, err)

	loaded, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Service)
	assert.Equal(t, "긴급돌봄", loaded.Service.Name)
	require.NotNil(t, loaded.Family)
	assert.Equal(t, "Han", loaded.Family.FamilyName)

	approved, err := svc.Transition(ctx, admin.Actor(), applicationdomain.TransitionInput{
		ApplicationID: created.ID,
		Status:        applicationdomain.StatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, applicationdomain.StatusApproved, approved.Status)
	require.NotNil(t, approved.ProcessedByID)
	assert.Equal(t, admin.ID, *approved.ProcessedByID)

	listing, err := svc.ListAll(ctx, admin.Actor(), applicationdomain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	require.NotNil(t, listing.Items[0].Applicant)
	assert.Equal(t, "u@example.com", listing.Items[0].Applicant.Email)
	assert.Equal(t, int64(1), listing.Stats.ByStatus[applicationdomain.StatusApproved])
}

func TestUpdateStatusIsConditional(t *testing.T) {
	gormDB := dbtest.Open(t)
	applicant := dbtest.SeedProfile(t, gormDB, "u@example.com", authz.RoleUser)
	service := dbtest.SeedService(t, gormDB, "Counseling", true)
	repo := NewPostgres(gormDB)
	ctx := context.Background()

	app := applicationdomain.Application{
		ID:          "8d9a3a0e-0000-4000-8000-000000000001",
		ApplicantID: applicant.ID,
		ServiceID:   service.ID,
		Content:     "please help us this week",
		Status:      applicationdomain.StatusPending,
		RequestDate: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, &app))

	change := applicationdomain.StatusChange{
		From:          applicationdomain.StatusPending,
		To:            applicationdomain.StatusRejected,
		ProcessedAt:   time.Now().UTC(),
		ProcessedByID: applicant.ID,
	}
	changed, err := repo.UpdateStatus(ctx, app.ID, change)
	require.NoError(t, err)
	assert.True(t, changed)

	change.To = applicationdomain.StatusApproved
	changed, err = repo.UpdateStatus(ctx, app.ID, change)
	require.NoError(t, err)
	assert.False(t, changed)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[applicationdomain.StatusRejected])
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	gormDB := dbtest.Open(t)
	applicant := dbtest.SeedProfile(t, gormDB, "u@example.com", authz.RoleUser)
	service := dbtest.SeedService(t, gormDB, "Counseling", true)
	repo := NewPostgres(gormDB)
	catalog := catalogdomain.NewService(catalogrepo.NewPostgres(gormDB), nil, 0)
	svc := applicationdomain.NewService(repo, catalog, familyrepo.NewPostgres(gormDB), nil)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, applicationdomain.ErrApplicationNotFound)

	_, err = svc.Create(ctx, applicant.Actor(), applicationdomain.CreateInput{ServiceID: "abc", Content: "need care for my child"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	target, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, target.Fields, "service_id")

	_, err = svc.Create(ctx, applicant.Actor(), applicationdomain.CreateInput{ServiceID: service.ID, FamilyID: "abc", Content: "need care for my child"})
	target, ok = apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, target.Fields, "family_id")
}
