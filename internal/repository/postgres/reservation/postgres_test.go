package reservation

import (
	"context"
	"testing"
	"time"

	"care-app-go/internal/db/dbtest"
	applicationdomain "care-app-go/internal/domain/application"
	"care-app-go/internal/domain/authz"
	reservationdomain "care-app-go/internal/domain/reservation"
	"care-app-go/internal/domain/user"
	applicationrepo "care-app-go/internal/repository/postgres/application"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedApproved(t *testing.T, gormDB *gorm.DB, applicant *user.Profile, serviceID string) *applicationdomain.Application {
	t.Helper()
	app := &applicationdomain.Application{
		ID:          uuid.NewString(),
		ApplicantID: applicant.ID,
		ServiceID:   serviceID,
		Content:     "approved application content",
		Status:      applicationdomain.StatusApproved,
		RequestDate: time.Now().UTC(),
	}
	require.NoError(t, gormDB.Create(app).Error)
	return app
}

func TestReservationRepositoryOverSQLite(t *testing.T) {
	gormDB := dbtest.Open(t)
	userU := dbtest.SeedProfile(t, gormDB, "u@example.com", authz.RoleUser)
	userV := dbtest.SeedProfile(t, gormDB, "v@example.com", authz.RoleUser)
	admin := dbtest.SeedProfile(t, gormDB, "admin@example.com", authz.RoleAdmin)
	service := dbtest.SeedService(t, gormDB, "방과후 홈티", true)
	appU := seedApproved(t, gormDB, userU, service.ID)
	appV := seedApproved(t, gormDB, userV, service.ID)

	repo := NewPostgres(gormDB)
	svc := reservationdomain.NewService(repo, applicationrepo.NewPostgres(gormDB), nil, nil, time.UTC, nil)
	ctx := context.Background()
	tomorrow := reservationdomain.DateOnly(time.Now().UTC().Add(24 * time.Hour))

	mine, err := svc.Create(ctx, userU.Actor(), reservationdomain.CreateInput{
		ApplicationID: appU.ID,
		ReservedDate:  tomorrow,
		StartTime:     "14:00",
		EndTime:       "15:00",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, userV.Actor(), reservationdomain.CreateInput{
		ApplicationID: appV.ID,
		ReservedDate:  tomorrow.Add(24 * time.Hour),
		StartTime:     "10:00",
	})
	require.NoError(t, err)

	loaded, err := repo.GetByID(ctx, mine.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Application)
	assert.Equal(t, userU.ID, loaded.OwnerID())
	require.NotNil(t, loaded.Application.Service)
	assert.Equal(t, "방과후 홈티", loaded.Application.Service.Name)
	require.NotNil(t, loaded.Application.Applicant)
	assert.Equal(t, "u@example.com", loaded.Application.Applicant.Email)

	listedU, err := svc.List(ctx, userU.Actor())
	require.NoError(t, err)
	require.Len(t, listedU, 1)
	assert.Equal(t, mine.ID, listedU[0].ID)

	listedAll, err := svc.List(ctx, admin.Actor())
	require.NoError(t, err)
	require.Len(t, listedAll, 2)
	assert.Equal(t, appV.ID, listedAll[0].ApplicationID)

	cancelled, err := svc.Cancel(ctx, admin.Actor(), mine.ID)
	require.NoError(t, err)
	assert.Equal(t, reservationdomain.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.AdminNote)
	assert.Equal(t, reservationdomain.AdminCancelNote, *cancelled.AdminNote)

	_, err = svc.Cancel(ctx, admin.Actor(), mine.ID)
	assert.ErrorIs(t, err, reservationdomain.ErrReservationTerminal)
}

func TestUpdateIsConditionalOnStatus(t *testing.T) {
	gormDB := dbtest.Open(t)
	userU := dbtest.SeedProfile(t, gormDB, "u@example.com", authz.RoleUser)
	service := dbtest.SeedService(t, gormDB, "Travel", true)
	app := seedApproved(t, gormDB, userU, service.ID)
	repo := NewPostgres(gormDB)
	ctx := context.Background()

	reservation := reservationdomain.Reservation{
		ID:            uuid.NewString(),
		ApplicationID: app.ID,
		ReservedDate:  reservationdomain.DateOnly(time.Now().UTC()),
		StartTime:     "09:00",
		Status:        reservationdomain.StatusPending,
	}
	require.NoError(t, repo.Create(ctx, &reservation))

	applied, err := repo.Update(ctx, reservation.ID, reservationdomain.StatusConfirmed, map[string]interface{}{"note": "x"})
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = repo.Update(ctx, reservation.ID, reservationdomain.StatusPending, map[string]interface{}{"note": "x"})
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	gormDB := dbtest.Open(t)
	userU := dbtest.SeedProfile(t, gormDB, "u@example.com", authz.RoleUser)
	repo := NewPostgres(gormDB)
	svc := reservationdomain.NewService(repo, applicationrepo.NewPostgres(gormDB), nil, nil, time.UTC, nil)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, reservationdomain.ErrReservationNotFound)

	_, err = svc.Create(ctx, userU.Actor(), reservationdomain.CreateInput{
		ApplicationID: "abc",
		ReservedDate:  reservationdomain.DateOnly(time.Now().UTC().Add(24 * time.Hour)),
		StartTime:     "10:00",
	})
	assert.ErrorIs(t, err, reservationdomain.ErrApprovedApplicationNotFound)
}
