package dashboard

import (
	"context"

	"care-app-go/internal/domain/authz"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Overview(ctx context.Context, actor authz.Actor) (*Overview, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}

	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentApplications(ctx, recentApplicationsLimit)
	if err != nil {
		return nil, err
	}

	return &Overview{Counts: counts, RecentApplications: recent}, nil
}
