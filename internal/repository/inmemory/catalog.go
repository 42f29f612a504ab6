package inmemory

import (
	"sync"
	"time"

	catalogdomain "care-app-go/internal/domain/catalog"
)

// CatalogCache holds the active service list for a fixed TTL.
type CatalogCache struct {
	mu        sync.RWMutex
	items     []catalogdomain.CareService
	expiresAt time.Time
	loaded    bool
	now       func() time.Time
}

func NewCatalogCache() *CatalogCache {
	return &CatalogCache{now: time.Now}
}

func (c *CatalogCache) GetActive() ([]catalogdomain.CareService, bool) {
	now := c.now()

	c.mu.RLock()
	items, expiresAt, loaded := c.items, c.expiresAt, c.loaded
	c.mu.RUnlock()
	if !loaded {
		return nil, false
	}

	if !expiresAt.After(now) {
		c.mu.Lock()
		if c.loaded && !c.expiresAt.After(now) {
			c.items = nil
			c.loaded = false
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneServices(items), true
}

func (c *CatalogCache) SetActive(services []catalogdomain.CareService, ttl time.Duration) {
	if ttl <= 0 {
		c.Invalidate()
		return
	}

	c.mu.Lock()
	c.items = cloneServices(services)
	c.expiresAt = c.now().Add(ttl)
	c.loaded = true
	c.mu.Unlock()
}

func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.items = nil
	c.loaded = false
	c.mu.Unlock()
}

func cloneServices(services []catalogdomain.CareService) []catalogdomain.CareService {
	if services == nil {
		return nil
	}
	cloned := make([]catalogdomain.CareService, len(services))
	copy(cloned, services)
	return cloned
}
