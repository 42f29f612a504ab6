package user

import (
	"context"
	"testing"
	"time"

	"care-app-go/internal/db/dbtest"
	"care-app-go/internal/domain/authz"
	domain "care-app-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureProfileKeepsRoleOnConflict(t *testing.T) {
	gormDB := dbtest.Open(t)
	repo := NewPostgres(gormDB)
	svc := domain.NewService(repo)
	ctx := context.Background()

	first, err := svc.EnsureProfile(ctx, domain.Identity{ExternalID: "ext-1", Email: "a@example.com", FirstName: "Min"})
	require.NoError(t, err)
	assert.Equal(t, authz.RoleUser, first.Role)

	require.NoError(t, repo.UpdateRole(ctx, first.ID, authz.RoleAdmin))

	again, err := svc.EnsureProfile(ctx, domain.Identity{ExternalID: "ext-1", Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, authz.RoleAdmin, again.Role)
	assert.Equal(t, "new@example.com", again.Email)
	require.NotNil(t, again.FirstName)
	assert.Equal(t, "Min", *again.FirstName)

	var count int64
	require.NoError(t, gormDB.Model(&domain.Profile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureProfileSkipsUnchangedRows(t *testing.T) {
	gormDB := dbtest.Open(t)
	repo := NewPostgres(gormDB)
	svc := domain.NewService(repo)
	ctx := context.Background()
	identity := domain.Identity{ExternalID: "ext-1", Email: "a@example.com", FirstName: "Min"}

	first, err := svc.EnsureProfile(ctx, identity)
	require.NoError(t, err)

	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, gormDB.Model(&domain.Profile{}).Where("id = ?", first.ID).UpdateColumn("updated_at", stale).Error)

	again, err := svc.EnsureProfile(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, 2020, again.UpdatedAt.Year())

	_, err = svc.EnsureProfile(ctx, domain.Identity{ExternalID: "ext-1"})
	require.NoError(t, err)

	renamed, err := svc.EnsureProfile(ctx, domain.Identity{ExternalID: "ext-1", Email: "a@example.com", FirstName: "Minji"})
	require.NoError(t, err)
	assert.NotEqual(t, 2020, renamed.UpdatedAt.Year())
	require.NotNil(t, renamed.FirstName)
	assert.Equal(t, "Minji", *renamed.FirstName)
	assert.Equal(t, "a@example.com", renamed.Email)
}

func TestGetByEmailIgnoresCase(t *testing.T) {
	gormDB := dbtest.Open(t)
	repo := NewPostgres(gormDB)
	seeded := dbtest.SeedProfile(t, gormDB, "Admin@Example.com", authz.RoleUser)

	found, err := repo.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestUpdateRoleMissingProfile(t *testing.T) {
	repo := NewPostgres(dbtest.Open(t))

	err := repo.UpdateRole(context.Background(), "00000000-0000-0000-0000-000000000000", authz.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
