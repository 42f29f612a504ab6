package catalog

import "time"

type Cache interface {
	GetActive() ([]CareService, bool)
	SetActive(services []CareService, ttl time.Duration)
	Invalidate()
}

type noopCache struct{}

func (noopCache) GetActive() ([]CareService, bool) {
	return nil, false
}

func (noopCache) SetActive([]CareService, time.Duration) {}

func (noopCache) Invalidate() {}
