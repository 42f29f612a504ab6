package application

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"care-app-go/internal/domain/apperr"
	"care-app-go/internal/domain/audit"
	"care-app-go/internal/domain/authz"
	"care-app-go/internal/domain/catalog"
	"care-app-go/internal/domain/emitter"
	"care-app-go/internal/domain/family"
	"care-app-go/internal/domain/notification"
	"github.com/google/uuid"
)

const (
	minContentLength = 10
	dashboardLink    = "/dashboard"
)

type ServiceLookup interface {
	Get(ctx context.Context, id string) (*catalog.CareService, error)
}

type FamilyLookup interface {
	GetByID(ctx context.Context, id string) (*family.Family, error)
}

type Service struct {
	repo     Repository
	services ServiceLookup
	families FamilyLookup
	events   emitter.Sink
	now      func() time.Time
}

func NewService(repo Repository, services ServiceLookup, families FamilyLookup, events emitter.Sink) *Service {
	if events == nil {
		events = emitter.Nop{}
	}
	return &Service{
		repo:     repo,
		services: services,
		families: families,
		events:   events,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, actor authz.Actor, input CreateInput) (*Application, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	if utf8.RuneCountInString(content) < minContentLength {
		return nil, apperr.Invalid("content", "must be at least 10 characters")
	}

	service, err := s.services.Get(ctx, strings.TrimSpace(input.ServiceID))
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return nil, apperr.Invalid("service_id", "service not found")
		}
		return nil, err
	}
	if !service.IsActive {
		return nil, apperr.Invalid("service_id", "service is not available")
	}

	var familyID *string
	if id := strings.TrimSpace(input.FamilyID); id != "" {
		owned, err := s.families.GetByID(ctx, id)
		if err != nil && !errors.Is(err, family.ErrFamilyNotFound) {
			return nil, err
		}
		if owned == nil || owned.OwnerID != actor.ID {
			return nil, apperr.Invalid("family_id", "family not found")
		}
		familyID = &owned.ID
	}

	application := Application{
		ID:            uuid.NewString(),
		ApplicantID:   actor.ID,
		ServiceID:     service.ID,
		FamilyID:      familyID,
		Content:       content,
		PreferredDate: input.PreferredDate,
		Status:        StatusPending,
		RequestDate:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, &application); err != nil {
		return nil, err
	}
	application.Service = service

	s.events.Record(ctx, audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionApplicationCreated,
		Description: "application created for " + service.Name,
		Metadata: map[string]any{
			"applicationId": application.ID,
			"serviceId":     service.ID,
			"serviceName":   service.Name,
		},
	})

	return &application, nil
}

// Transition moves an application along the admin edge table and notifies the
// applicant.
func (s *Service) Transition(ctx context.Context, actor authz.Actor, input TransitionInput) (*Application, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if !targetStatus(input.Status) {
		return nil, apperr.Invalid("status", "must be one of APPROVED, REJECTED, COMPLETED, CANCELLED")
	}

	current, err := s.repo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, input.Status) {
		return nil, ErrInvalidTransition.WithField("status", string(current.Status)+" -> "+string(input.Status))
	}

	change := StatusChange{
		From:          current.Status,
		To:            input.Status,
		ProcessedAt:   s.now().UTC(),
		ProcessedByID: actor.ID,
		AdminNotes:    trimmedOrNil(input.AdminNotes),
	}
	changed, err := s.repo.UpdateStatus(ctx, current.ID, change)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrStatusChanged
	}

	updated, err := s.repo.GetByID(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	s.events.Record(ctx, audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionApplicationUpdated,
		Description: "application status " + string(change.From) + " -> " + string(change.To),
		Metadata: map[string]any{
			"applicationId": updated.ID,
			"oldStatus":     string(change.From),
			"newStatus":     string(change.To),
			"applicantId":   updated.ApplicantID,
		},
	})

	title, message := statusMessage(change.To, serviceName(updated))
	s.events.Notify(ctx, notification.NotifyInput{
		RecipientID: updated.ApplicantID,
		Type:        notification.TypeApplicationStatus,
		Title:       title,
		Message:     message,
		Link:        dashboardLink,
	})

	return updated, nil
}

func (s *Service) Get(ctx context.Context, actor authz.Actor, id string) (*Application, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	application, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnerOrAdmin(actor, application.ApplicantID); err != nil {
		return nil, err
	}
	return application, nil
}

func (s *Service) ListMine(ctx context.Context, actor authz.Actor) ([]Application, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.repo.ListByApplicant(ctx, actor.ID)
}

// ListAll is the admin review queue. Stats always cover every application,
// regardless of the filter.
func (s *Service) ListAll(ctx context.Context, actor authz.Actor, filter ListFilter) (*Listing, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperr.Invalid("status", "unknown status")
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := Stats{ByStatus: make(map[Status]int64, len(AllStatuses))}
	for _, status := range AllStatuses {
		stats.ByStatus[status] = counts[status]
		stats.Total += counts[status]
	}

	return &Listing{Items: items, Stats: stats}, nil
}

func serviceName(application *Application) string {
	if application.Service != nil && application.Service.Name != "" {
		return application.Service.Name
	}
	return "서비스"
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
