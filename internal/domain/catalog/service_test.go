package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogRepo struct {
	services  []CareService
	listCalls int
}

func (r *fakeCatalogRepo) ListActive(ctx context.Context) ([]CareService, error) {
	r.listCalls++
	result := make([]CareService, 0, len(r.services))
	for _, service := range r.services {
		if service.IsActive {
			result = append(result, service)
		}
	}
	return result, nil
}

func (r *fakeCatalogRepo) GetByID(ctx context.Context, id string) (*CareService, error) {
	for _, service := range r.services {
		if service.ID == id {
			copied := service
			return &copied, nil
		}
	}
	return nil, ErrServiceNotFound
}

type mapCache struct {
	items []CareService
	set   bool
}

func (c *mapCache) GetActive() ([]CareService, bool) {
	return c.items, c.set
}

func (c *mapCache) SetActive(services []CareService, ttl time.Duration) {
	c.items = services
	c.set = true
}

func (c *mapCache) Invalidate() {
	c.items = nil
	c.set = false
}

func seededRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{services: []CareService{
		{ID: "s1", Name: "Emergency care", Category: CategoryEmergencyCare, IsActive: true},
		{ID: "s2", Name: "Travel", Category: CategoryTravel, IsActive: false},
	}}
}

func TestListActiveSkipsInactive(t *testing.T) {
	svc := NewService(seededRepo(), nil, 0)

	services, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "s1", services[0].ID)
}

func TestListActiveUsesCache(t *testing.T) {
	repo := seededRepo()
	svc := NewService(repo, &mapCache{}, time.Minute)

	_, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	_, err = svc.ListActive(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls)
}

func TestZeroTTLDisablesCache(t *testing.T) {
	repo := seededRepo()
	svc := NewService(repo, &mapCache{}, 0)

	_, _ = svc.ListActive(context.Background())
	_, _ = svc.ListActive(context.Background())

	assert.Equal(t, 2, repo.listCalls)
}

func TestGetMissingService(t *testing.T) {
	svc := NewService(seededRepo(), nil, 0)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
