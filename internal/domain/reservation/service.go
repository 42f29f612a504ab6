package reservation

import (
	"context"
	"strings"
	"time"

	"care-app-go/internal/domain/application"
	"care-app-go/internal/domain/apperr"
	"care-app-go/internal/domain/audit"
	"care-app-go/internal/domain/authz"
	"care-app-go/internal/domain/emitter"
	"care-app-go/internal/domain/idempotency"
	"care-app-go/pkg/logger"
	"github.com/google/uuid"
)

const createScope = "reservation.create"

type ApplicationLookup interface {
	GetByID(ctx context.Context, id string) (*application.Application, error)
}

type Idempotency interface {
	Begin(ctx context.Context, actorID, scope, key, requestHash string) (idempotency.Claim, error)
	Complete(ctx context.Context, claim idempotency.Claim, resourceID string) error
	Release(ctx context.Context, claim idempotency.Claim) error
}

type Service struct {
	repo         Repository
	applications ApplicationLookup
	idempotency  Idempotency
	events       emitter.Sink
	location     *time.Location
	log          logger.Logger
	now          func() time.Time
}

func NewService(repo Repository, applications ApplicationLookup, idem Idempotency, events emitter.Sink, location *time.Location, log logger.Logger) *Service {
	if events == nil {
		events = emitter.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:         repo,
		applications: applications,
		idempotency:  idem,
		events:       events,
		location:     location,
		log:          log,
		now:          time.Now,
	}
}

func (s *Service) today() time.Time {
	return DateOnly(s.now().In(s.location))
}

func (s *Service) Create(ctx context.Context, actor authz.Actor, input CreateInput) (*Reservation, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	app, err := s.applications.GetByID(ctx, strings.TrimSpace(input.ApplicationID))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, ErrApprovedApplicationNotFound
		}
		return nil, err
	}
	if app.ApplicantID != actor.ID || app.Status != application.StatusApproved {
		return nil, ErrApprovedApplicationNotFound
	}

	startTime := strings.TrimSpace(input.StartTime)
	endTime := optionalString(input.EndTime)
	var v apperr.Validator
	validateSchedule(&v, schedule{date: input.ReservedDate, startTime: startTime, endTime: endTime}, s.today(), true)
	if err := v.Err(); err != nil {
		return nil, err
	}

	reservation := Reservation{
		ID:            uuid.NewString(),
		ApplicationID: app.ID,
		ReservedDate:  DateOnly(input.ReservedDate),
		StartTime:     startTime,
		EndTime:       endTime,
		Note:          optionalString(input.Note),
		Status:        StatusPending,
	}
	if err := s.repo.Create(ctx, &reservation); err != nil {
		return nil, err
	}
	reservation.Application = app

	s.events.Record(ctx, audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionReservationCreate,
		Description: "reservation created for " + FormatDate(reservation.ReservedDate),
		Metadata: map[string]any{
			"reservationId": reservation.ID,
			"applicationId": app.ID,
			"reservedDate":  FormatDate(reservation.ReservedDate),
		},
	})

	return &reservation, nil
}

// CreateOnce is Create guarded by an idempotency key. The bool result is true
// when the reservation was created by an earlier request with the same key.
func (s *Service) CreateOnce(ctx context.Context, actor authz.Actor, key string, input CreateInput) (*Reservation, bool, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, false, err
	}
	if s.idempotency == nil {
		created, err := s.Create(ctx, actor, input)
		return created, false, err
	}

	key, err := idempotency.NormalizeKey(key)
	if err != nil {
		return nil, false, err
	}
	hash, err := idempotency.Fingerprint(normalizedCreate(input))
	if err != nil {
		return nil, false, err
	}

	claim, err := s.idempotency.Begin(ctx, actor.ID, createScope, key, hash)
	if err != nil {
		return nil, false, err
	}
	if claim.Replayed() {
		existing, err := s.repo.GetByID(ctx, claim.ResourceID)
		if err != nil {
			return nil, false, err
		}
		return existing, true, nil
	}

	created, err := s.Create(ctx, actor, input)
	if err != nil {
		if releaseErr := s.idempotency.Release(context.WithoutCancel(ctx), claim); releaseErr != nil {
			s.log.InternalError("reservations.create_once: release idempotency claim failed", releaseErr, "actor_id", actor.ID, "idempotency_key", key)
		}
		return nil, false, err
	}
	// The claim stays processing until it goes stale; the reservation itself is committed.
	if err := s.idempotency.Complete(context.WithoutCancel(ctx), claim, created.ID); err != nil {
		s.log.InternalError("reservations.create_once: complete idempotency claim failed", err, "actor_id", actor.ID, "reservation_id", created.ID, "idempotency_key", key)
	}
	return created, false, nil
}

func normalizedCreate(input CreateInput) CreateInput {
	return CreateInput{
		ApplicationID: strings.TrimSpace(input.ApplicationID),
		ReservedDate:  DateOnly(input.ReservedDate),
		StartTime:     strings.TrimSpace(input.StartTime),
		EndTime:       strings.TrimSpace(input.EndTime),
		Note:          strings.TrimSpace(input.Note),
	}
}

func (s *Service) Update(ctx context.Context, actor authz.Actor, input UpdateInput) (*Reservation, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnerOrAdmin(actor, current.OwnerID()); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (input.Status != nil || input.AdminNote != nil) {
		return nil, ErrAdminFieldsForbidden
	}
	if input.empty() {
		return nil, ErrEmptyUpdate
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, apperr.Invalid("status", "unknown status")
	}

	statusChange := input.Status != nil && *input.Status != current.Status
	if current.Status.Terminal() && (input.touchesSchedule() || statusChange) {
		return nil, ErrReservationTerminal
	}
	if statusChange && !CanTransition(current.Status, *input.Status) {
		return nil, ErrInvalidTransition.WithField("status", string(current.Status)+" -> "+string(*input.Status))
	}

	updates := make(map[string]interface{})
	changes := make(map[string]any)

	if input.touchesSchedule() {
		merged := schedule{date: current.ReservedDate, startTime: current.StartTime, endTime: current.EndTime}
		dateChanged := false
		if input.ReservedDate != nil {
			merged.date = DateOnly(*input.ReservedDate)
			dateChanged = !merged.date.Equal(DateOnly(current.ReservedDate))
		}
		if input.StartTime != nil {
			merged.startTime = strings.TrimSpace(*input.StartTime)
		}
		if input.EndTime != nil {
			merged.endTime = optionalString(*input.EndTime)
		}

		var v apperr.Validator
		validateSchedule(&v, merged, s.today(), dateChanged)
		if err := v.Err(); err != nil {
			return nil, err
		}

		if input.ReservedDate != nil {
			updates["reserved_date"] = merged.date
			changes["reservedDate"] = FormatDate(merged.date)
		}
		if input.StartTime != nil {
			updates["start_time"] = merged.startTime
			changes["startTime"] = merged.startTime
		}
		if input.EndTime != nil {
			updates["end_time"] = nullable(merged.endTime)
			changes["endTime"] = nullable(merged.endTime)
		}
	}
	if input.Note != nil {
		note := optionalString(*input.Note)
		updates["note"] = nullable(note)
		changes["note"] = nullable(note)
	}
	if input.AdminNote != nil {
		note := optionalString(*input.AdminNote)
		updates["admin_note"] = nullable(note)
		changes["adminNote"] = nullable(note)
	}
	if statusChange {
		updates["status"] = *input.Status
		changes["status"] = string(*input.Status)
	}

	if len(updates) == 0 {
		return current, nil
	}
	applied, err := s.repo.Update(ctx, current.ID, current.Status, updates)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrStatusChanged
	}

	updated, err := s.repo.GetByID(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	s.events.Record(ctx, audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionReservationUpdate,
		Description: "reservation updated",
		Metadata: map[string]any{
			"reservationId": updated.ID,
			"changes":       changes,
		},
	})

	return updated, nil
}

func (s *Service) Cancel(ctx context.Context, actor authz.Actor, id string) (*Reservation, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnerOrAdmin(actor, current.OwnerID()); err != nil {
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, ErrReservationTerminal
	}

	updates := map[string]interface{}{"status": StatusCancelled}
	if actor.IsAdmin() {
		updates["admin_note"] = AdminCancelNote
	}
	applied, err := s.repo.Update(ctx, current.ID, current.Status, updates)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrStatusChanged
	}

	updated, err := s.repo.GetByID(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	s.events.Record(ctx, audit.Entry{
		ActorID:     actor.ID,
		Action:      audit.ActionReservationCancel,
		Description: "reservation cancelled",
		Metadata:    map[string]any{"reservationId": updated.ID},
	})

	return updated, nil
}

func (s *Service) Get(ctx context.Context, actor authz.Actor, id string) (*Reservation, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnerOrAdmin(actor, reservation.OwnerID()); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *Service) List(ctx context.Context, actor authz.Actor) ([]Reservation, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	filter := ListFilter{ApplicantID: actor.ID}
	if actor.IsAdmin() {
		filter = ListFilter{}
	}
	return s.repo.List(ctx, filter)
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func nullable(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
