package application

import "context"

type Repository interface {
	Create(ctx context.Context, application *Application) error
	// GetByID preloads Service and Family.
	GetByID(ctx context.Context, id string) (*Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]Application, error)
	List(ctx context.Context, filter ListFilter) ([]Application, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	// UpdateStatus reports false when the row no longer has change.From.
	UpdateStatus(ctx context.Context, id string, change StatusChange) (bool, error)
}
