package family

import (
	"context"
	"strings"

	"care-app-go/internal/domain/apperr"
	"care-app-go/internal/domain/audit"
	"care-app-go/internal/domain/authz"
	"care-app-go/internal/domain/emitter"
	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	events emitter.Sink
}

func NewService(repo Repository, events emitter.Sink) *Service {
	if events == nil {
		events = emitter.Nop{}
	}
	return &Service{repo: repo, events: events}
}

func (s *Service) List(ctx context.Context, actor authz.Actor) ([]Family, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, actor.ID)
}

func (s *Service) Create(ctx context.Context, actor authz.Actor, input CreateInput) (*Family, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.FamilyName)
	var v apperr.Validator
	v.Check(name != "", "family_name", "family name is required")
	v.Check(input.MemberCount >= 1, "member_count", "must be at least 1")
	if err := v.Err(); err != nil {
		return nil, err
	}

	family := Family{
		ID:               uuid.NewString(),
		OwnerID:          actor.ID,
		FamilyName:       name,
		MemberCount:      input.MemberCount,
		DisabilityType:   optionalString(input.DisabilityType),
		DisabilityLevel:  optionalString(input.DisabilityLevel),
		SpecialNotes:     optionalString(input.SpecialNotes),
		Address:          optionalString(input.Address),
		EmergencyContact: optionalString(input.EmergencyContact),
	}
	if err := s.repo.Create(ctx, &family); err != nil {
		return nil, err
	}

	s.events.Record(ctx, audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionFamilyCreated,
		Description: "family created: " + family.FamilyName,
		Metadata:    map[string]any{"familyId": family.ID},
	})

	return &family, nil
}

func (s *Service) Get(ctx context.Context, actor authz.Actor, id string) (*Family, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	family, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnerOrAdmin(actor, family.OwnerID); err != nil {
		return nil, err
	}
	return family, nil
}

func (s *Service) Update(ctx context.Context, actor authz.Actor, id string, input UpdateInput) (*Family, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if input.empty() {
		return nil, ErrEmptyUpdate
	}

	updates := make(map[string]interface{})
	var v apperr.Validator
	if input.FamilyName != nil {
		name := strings.TrimSpace(*input.FamilyName)
		v.Check(name != "", "family_name", "family name is required")
		updates["family_name"] = name
	}
	if input.MemberCount != nil {
		v.Check(*input.MemberCount >= 1, "member_count", "must be at least 1")
		updates["member_count"] = *input.MemberCount
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	setOptional(updates, "disability_type", input.DisabilityType)
	setOptional(updates, "disability_level", input.DisabilityLevel)
	setOptional(updates, "special_notes", input.SpecialNotes)
	setOptional(updates, "address", input.Address)
	setOptional(updates, "emergency_contact", input.EmergencyContact)

	var result *Family
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := authz.RequireOwner(actor, current.OwnerID); err != nil {
			return err
		}
		if err := tx.Update(ctx, id, updates); err != nil {
			return err
		}
		result, err = tx.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.events.Record(ctx, audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionFamilyUpdated,
		Description: "family updated: " + result.FamilyName,
		Metadata:    map[string]any{"familyId": result.ID},
	})

	return result, nil
}

func (s *Service) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return err
	}

	var name string
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := authz.RequireOwner(actor, current.OwnerID); err != nil {
			return err
		}
		name = current.FamilyName
		if err := tx.DetachApplications(ctx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.events.Record(ctx, audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionFamilyDeleted,
		Description: "family deleted: " + name,
		Metadata:    map[string]any{"familyId": id},
	})
	return nil
}

func setOptional(updates map[string]interface{}, column string, value *string) {
	if value == nil {
		return
	}
	if trimmed := optionalString(*value); trimmed != nil {
		updates[column] = *trimmed
		return
	}
	updates[column] = nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
