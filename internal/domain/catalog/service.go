package catalog

import (
	"context"
	"time"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository, cache Cache, cacheTTL time.Duration) *Service {
	if cache == nil || cacheTTL <= 0 {
		cache = noopCache{}
	}
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// ListActive returns the active services in creation order.
func (s *Service) ListActive(ctx context.Context) ([]CareService, error) {
	if cached, ok := s.cache.GetActive(); ok {
		return cached, nil
	}

	services, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetActive(services, s.cacheTTL)
	return services, nil
}

func (s *Service) Get(ctx context.Context, id string) (*CareService, error) {
	return s.repo.GetByID(ctx, id)
}
