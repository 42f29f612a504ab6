package user

import (
	"context"
	"fmt"
	"strings"

	"care-app-go/internal/domain/authz"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureProfile resolves an external identity to its profile, creating one
// with role USER the first time the identity is seen. Safe to call
// concurrently for the same identity: the unique external_id decides.
func (s *Service) EnsureProfile(ctx context.Context, identity Identity) (*Profile, error) {
	externalID := strings.TrimSpace(identity.ExternalID)
	if externalID == "" {
		return nil, ErrNoIdentity
	}

	profile := Profile{
		ID:         uuid.NewString(),
		ExternalID: externalID,
		Email:      strings.TrimSpace(identity.Email),
		FirstName:  optionalString(identity.FirstName),
		LastName:   optionalString(identity.LastName),
		Role:       authz.RoleUser,
	}
	if err := s.repo.EnsureProfile(ctx, &profile); err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	return s.repo.GetByExternalID(ctx, externalID)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// PromoteByEmail grants the admin role. It reports whether anything changed.
func (s *Service) PromoteByEmail(ctx context.Context, email string) (*Profile, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, false, fmt.Errorf("email is required")
	}

	profile, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if profile.Role == authz.RoleAdmin {
		return profile, false, nil
	}

	if err := s.repo.UpdateRole(ctx, profile.ID, authz.RoleAdmin); err != nil {
		return nil, false, err
	}
	profile.Role = authz.RoleAdmin
	return profile, true, nil
}

func (s *Service) ListProfiles(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx)
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
