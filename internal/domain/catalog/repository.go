package catalog

import "context"

type Repository interface {
	ListActive(ctx context.Context) ([]CareService, error)
	GetByID(ctx context.Context, id string) (*CareService, error)
}
