package user

import (
	"context"

	"care-app-go/internal/domain/authz"
)

type Repository interface {
	// EnsureProfile inserts profile or, when external_id already exists,
	// refreshes email and names. Role is never overwritten.
	EnsureProfile(ctx context.Context, profile *Profile) error
	GetByExternalID(ctx context.Context, externalID string) (*Profile, error)
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	UpdateRole(ctx context.Context, id string, role authz.Role) error
	List(ctx context.Context) ([]Profile, error)
}
