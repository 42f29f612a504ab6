package family

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"care-app-go/internal/domain/apperr"
	"care-app-go/internal/domain/audit"
	"care-app-go/internal/domain/authz"
	"care-app-go/internal/domain/notification"
)

type fakeFamilyRepo struct {
	families map[string]*Family
	detached []string
}

func newFakeFamilyRepo() *fakeFamilyRepo {
	return &fakeFamilyRepo{families: make(map[string]*Family)}
}

func (r *fakeFamilyRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeFamilyRepo) Create(ctx context.Context, family *Family) error {
	now := time.Now().UTC()
	family.CreatedAt = now
	family.UpdatedAt = now
	copied := *family
	r.families[family.ID] = &copied
	return nil
}

func (r *fakeFamilyRepo) GetByID(ctx context.Context, id string) (*Family, error) {
	family, ok := r.families[id]
	if !ok {
		return nil, ErrFamilyNotFound
	}
	copied := *family
	return &copied, nil
}

func (r *fakeFamilyRepo) ListByOwner(ctx context.Context, ownerID string) ([]Family, error) {
	result := make([]Family, 0)
	for _, family := range r.families {
		if family.OwnerID == ownerID {
			result = append(result, *family)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeFamilyRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	family, ok := r.families[id]
	if !ok {
		return ErrFamilyNotFound
	}
	for column, value := range updates {
		switch column {
		case "family_name":
			family.FamilyName = value.(string)
		case "member_count":
			family.MemberCount = value.(int)
		case "disability_type":
			family.DisabilityType = stringOrNil(value)
		case "disability_level":
			family.DisabilityLevel = stringOrNil(value)
		case "special_notes":
			family.SpecialNotes = stringOrNil(value)
		case "address":
			family.Address = stringOrNil(value)
		case "emergency_contact":
			family.EmergencyContact = stringOrNil(value)
		}
	}
	return nil
}

func (r *fakeFamilyRepo) Delete(ctx context.Context, id string) error {
	delete(r.families, id)
	return nil
}

func (r *fakeFamilyRepo) DetachApplications(ctx context.Context, familyID string) error {
	r.detached = append(r.detached, familyID)
	return nil
}

func stringOrNil(value interface{}) *string {
	if value == nil {
		return nil
	}
	s := value.(string)
	return &s
}

type recordingSink struct {
	entries []audit.Entry
}

func (s *recordingSink) Record(ctx context.Context, entry audit.Entry) {
	s.entries = append(s.entries, entry)
}

func (s *recordingSink) Notify(ctx context.Context, input notification.NotifyInput) {}

var (
	owner    = authz.Actor{ID: "owner-1", Role: authz.RoleUser}
	stranger = authz.Actor{ID: "user-2", Role: authz.RoleUser}
	admin    = authz.Actor{ID: "admin-1", Role: authz.RoleAdmin}
)

func strPtr(value string) *string {
	return &value
}

func createFamily(t *testing.T, svc *Service) *Family {
	t.Helper()
	family, err := svc.Create(context.Background(), owner, CreateInput{
		FamilyName:      "Kim family",
		MemberCount:     4,
		DisabilityType:  "autism",
		DisabilityLevel: "mild",
		Address:         "Seoul",
	})
	if err != nil {
		t.Fatalf("create family: %v", err)
	}
	return family
}

func TestCreateFamilyRoundTrip(t *testing.T) {
	sink := &recordingSink{}
	svc := NewService(newFakeFamilyRepo(), sink)

	created := createFamily(t, svc)

	got, err := svc.Get(context.Background(), owner, created.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.FamilyName != "Kim family" || got.MemberCount != 4 {
		t.Fatalf("unexpected family %+v", got)
	}
	if got.DisabilityType == nil || *got.DisabilityType != "autism" {
		t.Fatalf("expected disability type autism, got %v", got.DisabilityType)
	}
	if got.SpecialNotes != nil {
		t.Fatalf("expected special notes nil, got %v", *got.SpecialNotes)
	}
	if len(sink.entries) != 1 || sink.entries[0].Action != audit.ActionFamilyCreated {
		t.Fatalf("expected FAMILY_CREATED entry, got %+v", sink.entries)
	}
	if sink.entries[0].Metadata["familyId"] != created.ID {
		t.Fatalf("expected familyId metadata, got %+v", sink.entries[0].Metadata)
	}
}

func TestCreateFamilyValidation(t *testing.T) {
	svc := NewService(newFakeFamilyRepo(), nil)

	_, err := svc.Create(context.Background(), owner, CreateInput{FamilyName: "  ", MemberCount: 0})
	target, ok := apperr.As(err)
	if !ok || target.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := target.Fields["family_name"]; !ok {
		t.Fatalf("expected family_name field error, got %+v", target.Fields)
	}
	if _, ok := target.Fields["member_count"]; !ok {
		t.Fatalf("expected member_count field error, got %+v", target.Fields)
	}
}

func TestUpdateFamilyLeavesUnspecifiedFields(t *testing.T) {
	sink := &recordingSink{}
	svc := NewService(newFakeFamilyRepo(), sink)
	created := createFamily(t, svc)

	updated, err := svc.Update(context.Background(), owner, created.ID, UpdateInput{
		MemberCount: intPtr(5),
		Address:     strPtr(""),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.MemberCount != 5 {
		t.Fatalf("expected member count 5, got %d", updated.MemberCount)
	}
	if updated.FamilyName != "Kim family" {
		t.Fatalf("expected name unchanged, got %q", updated.FamilyName)
	}
	if updated.DisabilityLevel == nil || *updated.DisabilityLevel != "mild" {
		t.Fatalf("expected disability level unchanged, got %v", updated.DisabilityLevel)
	}
	if updated.Address != nil {
		t.Fatalf("expected address cleared, got %v", *updated.Address)
	}
	if last := sink.entries[len(sink.entries)-1]; last.Action != audit.ActionFamilyUpdated {
		t.Fatalf("expected FAMILY_UPDATED, got %s", last.Action)
	}
}

func TestUpdateFamilyRejectsEmptyPayload(t *testing.T) {
	svc := NewService(newFakeFamilyRepo(), nil)
	created := createFamily(t, svc)

	_, err := svc.Update(context.Background(), owner, created.ID, UpdateInput{})
	if !errors.Is(err, ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
}

func TestFamilyOwnershipChecks(t *testing.T) {
	svc := NewService(newFakeFamilyRepo(), nil)
	created := createFamily(t, svc)

	if _, err := svc.Get(context.Background(), stranger, created.ID); !errors.Is(err, authz.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on get, got %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, created.ID); err != nil {
		t.Fatalf("expected admin read allowed, got %v", err)
	}
	if _, err := svc.Update(context.Background(), admin, created.ID, UpdateInput{FamilyName: strPtr("x")}); !errors.Is(err, authz.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on admin update, got %v", err)
	}
	if err := svc.Delete(context.Background(), stranger, created.ID); !errors.Is(err, authz.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on delete, got %v", err)
	}
}

func TestDeleteFamilyDetachesApplications(t *testing.T) {
	repo := newFakeFamilyRepo()
	sink := &recordingSink{}
	svc := NewService(repo, sink)
	created := createFamily(t, svc)

	if err := svc.Delete(context.Background(), owner, created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.detached) != 1 || repo.detached[0] != created.ID {
		t.Fatalf("expected applications detached, got %v", repo.detached)
	}
	if _, err := svc.Get(context.Background(), owner, created.ID); !errors.Is(err, ErrFamilyNotFound) {
		t.Fatalf("expected ErrFamilyNotFound after delete, got %v", err)
	}
	if last := sink.entries[len(sink.entries)-1]; last.Action != audit.ActionFamilyDeleted {
		t.Fatalf("expected FAMILY_DELETED, got %s", last.Action)
	}
}

func TestDeleteMissingFamily(t *testing.T) {
	svc := NewService(newFakeFamilyRepo(), nil)

	if err := svc.Delete(context.Background(), owner, "missing"); !errors.Is(err, ErrFamilyNotFound) {
		t.Fatalf("expected ErrFamilyNotFound, got %v", err)
	}
}

func TestListFamiliesOnlyOwn(t *testing.T) {
	svc := NewService(newFakeFamilyRepo(), nil)
	createFamily(t, svc)
	if _, err := svc.Create(context.Background(), stranger, CreateInput{FamilyName: "Lee", MemberCount: 2}); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := svc.List(context.Background(), owner)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].OwnerID != owner.ID {
		t.Fatalf("expected only owner's family, got %+v", items)
	}
}

func intPtr(value int) *int {
	return &value
}
