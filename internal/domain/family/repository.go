package family

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Create(ctx context.Context, family *Family) error
	GetByID(ctx context.Context, id string) (*Family, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Family, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	// DetachApplications clears family_id on applications that point at the
	// family so the delete does not orphan them.
	DetachApplications(ctx context.Context, familyID string) error
}
