package reservation

import "context"

type Repository interface {
	Create(ctx context.Context, reservation *Reservation) error
	// GetByID preloads Application with its Service, Family and Applicant.
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter ListFilter) ([]Reservation, error)
	// Update applies updates only while the row still has status expected.
	Update(ctx context.Context, id string, expected Status, updates map[string]interface{}) (bool, error)
}
