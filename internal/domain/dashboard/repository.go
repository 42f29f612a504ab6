package dashboard

import (
	"context"

	"care-app-go/internal/domain/application"
)

type Repository interface {
	Counts(ctx context.Context) (Counts, error)
	// RecentApplications preloads Service and Applicant.
	RecentApplications(ctx context.Context, limit int) ([]application.Application, error)
}
