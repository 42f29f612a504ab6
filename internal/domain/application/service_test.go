package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"care-app-go/internal/domain/apperr"
	"care-app-go/internal/domain/audit"
	"care-app-go/internal/domain/authz"
	"care-app-go/internal/domain/catalog"
	"care-app-go/internal/domain/family"
	"care-app-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[string]*Application
	services     map[string]*catalog.CareService
	// stale makes the next UpdateStatus behave as if another admin won.
	stale bool
}

func newFakeApplicationRepo(services map[string]*catalog.CareService) *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[string]*Application), services: services}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, application *Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *application
	copied.CreatedAt = time.Now().UTC()
	r.applications[application.ID] = &copied
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id string) (*Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.applications[id]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	copied := *application
	copied.Service = r.services[copied.ServiceID]
	return &copied, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]Application, error) {
	return r.filter(func(a *Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r *fakeApplicationRepo) List(ctx context.Context, filter ListFilter) ([]Application, error) {
	return r.filter(func(a *Application) bool {
		return filter.Status == nil || a.Status == *filter.Status
	}), nil
}

func (r *fakeApplicationRepo) filter(keep func(*Application) bool) []Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Application, 0)
	for _, application := range r.applications {
		if keep(application) {
			result = append(result, *application)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RequestDate.After(result[j].RequestDate)
	})
	return result
}

func (r *fakeApplicationRepo) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[Status]int64)
	for _, application := range r.applications {
		counts[application.Status]++
	}
	return counts, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id string, change StatusChange) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.applications[id]
	if !ok || application.Status != change.From || r.stale {
		return false, nil
	}
	processedAt := change.ProcessedAt
	processedBy := change.ProcessedByID
	application.Status = change.To
	application.ProcessedAt = &processedAt
	application.ProcessedByID = &processedBy
	if change.AdminNotes != nil {
		application.AdminNotes = change.AdminNotes
	}
	return true, nil
}

type fakeServiceLookup map[string]*catalog.CareService

func (f fakeServiceLookup) Get(ctx context.Context, id string) (*catalog.CareService, error) {
	service, ok := f[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return service, nil
}

type fakeFamilyLookup map[string]*family.Family

func (f fakeFamilyLookup) GetByID(ctx context.Context, id string) (*family.Family, error) {
	item, ok := f[id]
	if !ok {
		return nil, family.ErrFamilyNotFound
	}
	return item, nil
}

type recordingSink struct {
	entries       []audit.Entry
	notifications []notification.NotifyInput
}

func (s *recordingSink) Record(ctx context.Context, entry audit.Entry) {
	s.entries = append(s.entries, entry)
}

func (s *recordingSink) Notify(ctx context.Context, input notification.NotifyInput) {
	s.notifications = append(s.notifications, input)
}

var (
	applicant = authz.Actor{ID: "user-u", Role: authz.RoleUser}
	other     = authz.Actor{ID: "user-v", Role: authz.RoleUser}
	admin     = authz.Actor{ID: "admin-1", Role: authz.RoleAdmin}
)

type fixture struct {
	svc  *Service
	repo *fakeApplicationRepo
	sink *recordingSink
	now  time.Time
}

func newFixture() *fixture {
	services := map[string]*catalog.CareService{
		"svc-care":   {ID: "svc-care", Name: "긴급돌봄", Category: catalog.CategoryEmergencyCare, IsActive: true},
		"svc-closed": {ID: "svc-closed", Name: "맞춤형 여행", Category: catalog.CategoryTravel, IsActive: false},
	}
	families := fakeFamilyLookup{
		"fam-u": {ID: "fam-u", OwnerID: applicant.ID, FamilyName: "U", MemberCount: 3},
		"fam-v": {ID: "fam-v", OwnerID: other.ID, FamilyName: "V", MemberCount: 2},
	}
	repo := newFakeApplicationRepo(services)
	sink := &recordingSink{}
	f := &fixture{repo: repo, sink: sink, now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	f.svc = NewService(repo, fakeServiceLookup(services), families, sink)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) create(t *testing.T) *Application {
	t.Helper()
	created, err := f.svc.Create(context.Background(), applicant, CreateInput{
		ServiceID: "svc-care",
		FamilyID:  "fam-u",
		Content:   "need care for my child",
	})
	require.NoError(t, err)
	return created
}

func TestScenarioCreateThenApprove(t *testing.T) {
	f := newFixture()

	created := f.create(t)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, f.now, created.RequestDate)
	require.Len(t, f.sink.entries, 1)
	assert.Equal(t, audit.ActionApplicationCreated, f.sink.entries[0].Action)
	assert.Empty(t, f.sink.notifications)

	f.now = f.now.Add(time.Hour)
	approved, err := f.svc.Transition(context.Background(), admin, TransitionInput{
		ApplicationID: created.ID,
		Status:        StatusApproved,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, approved.Status)
	require.NotNil(t, approved.ProcessedAt)
	assert.Equal(t, f.now, *approved.ProcessedAt)
	require.NotNil(t, approved.ProcessedByID)
	assert.Equal(t, admin.ID, *approved.ProcessedByID)

	require.Len(t, f.sink.entries, 2)
	entry := f.sink.entries[1]
	assert.Equal(t, audit.ActionApplicationUpdated, entry.Action)
	assert.Equal(t, "PENDING", entry.Metadata["oldStatus"])
	assert.Equal(t, "APPROVED", entry.Metadata["newStatus"])
	assert.Equal(t, applicant.ID, entry.Metadata["applicantId"])

	require.Len(t, f.sink.notifications, 1)
	note := f.sink.notifications[0]
	assert.Equal(t, applicant.ID, note.RecipientID)
	assert.Equal(t, notification.TypeApplicationStatus, note.Type)
	assert.Equal(t, "/dashboard", note.Link)
	assert.Equal(t, "서비스 신청이 승인되었습니다", note.Title)
	assert.Contains(t, note.Message, "긴급돌봄")
}

func TestCreateValidation(t *testing.T) {
	cases := []struct {
		name  string
		input CreateInput
		field string
	}{
		{name: "short content", input: CreateInput{ServiceID: "svc-care", Content: "  too short "}, field: "content"},
		{name: "unknown service", input: CreateInput{ServiceID: "nope", Content: "long enough content"}, field: "service_id"},
		{name: "inactive service", input: CreateInput{ServiceID: "svc-closed", Content: "long enough content"}, field: "service_id"},
		{name: "foreign family", input: CreateInput{ServiceID: "svc-care", FamilyID: "fam-v", Content: "long enough content"}, field: "family_id"},
		{name: "missing family", input: CreateInput{ServiceID: "svc-care", FamilyID: "ghost", Content: "long enough content"}, field: "family_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Create(context.Background(), applicant, tc.input)

			target, ok := apperr.As(err)
			require.True(t, ok, "expected apperr, got %v", err)
			assert.Equal(t, apperr.KindValidation, target.Kind)
			assert.Contains(t, target.Fields, tc.field)
			assert.Empty(t, f.repo.applications)
		})
	}
}

func TestCreateCountsRunesNotBytes(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), applicant, CreateInput{ServiceID: "svc-care", Content: "아이돌봄이필요합니다"})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), applicant, CreateInput{ServiceID: "svc-care", Content: "돌봄이필요해요"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestTransitionEdges(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusApproved}:   true,
		{StatusPending, StatusRejected}:   true,
		{StatusApproved, StatusCompleted}: true,
		{StatusApproved, StatusCancelled}: true,
	}

	for _, from := range AllStatuses {
		for _, to := range []Status{StatusApproved, StatusRejected, StatusCompleted, StatusCancelled} {
			from, to := from, to
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				f := newFixture()
				created := f.create(t)
				f.repo.applications[created.ID].Status = from

				_, err := f.svc.Transition(context.Background(), admin, TransitionInput{ApplicationID: created.ID, Status: to})
				if allowed[[2]Status{from, to}] {
					require.NoError(t, err)
					assert.Equal(t, to, f.repo.applications[created.ID].Status)
					return
				}
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, from, f.repo.applications[created.ID].Status)
			})
		}
	}
}

func TestTransitionRequiresAdmin(t *testing.T) {
	f := newFixture()
	created := f.create(t)

	_, err := f.svc.Transition(context.Background(), applicant, TransitionInput{ApplicationID: created.ID, Status: StatusApproved})
	assert.ErrorIs(t, err, authz.ErrAdminRequired)
	assert.Equal(t, StatusPending, f.repo.applications[created.ID].Status)
}

func TestTransitionRejectsPendingTarget(t *testing.T) {
	f := newFixture()
	created := f.create(t)

	_, err := f.svc.Transition(context.Background(), admin, TransitionInput{ApplicationID: created.ID, Status: StatusPending})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestTransitionMissingApplication(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Transition(context.Background(), admin, TransitionInput{ApplicationID: "ghost", Status: StatusApproved})
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestTransitionLostRace(t *testing.T) {
	f := newFixture()
	created := f.create(t)
	f.repo.stale = true

	_, err := f.svc.Transition(context.Background(), admin, TransitionInput{ApplicationID: created.ID, Status: StatusRejected})
	assert.ErrorIs(t, err, ErrStatusChanged)
	assert.Len(t, f.sink.notifications, 0)
}

func TestTransitionKeepsAdminNotes(t *testing.T) {
	f := newFixture()
	created := f.create(t)
	notes := "  documents verified  "

	updated, err := f.svc.Transition(context.Background(), admin, TransitionInput{ApplicationID: created.ID, Status: StatusRejected, AdminNotes: &notes})
	require.NoError(t, err)
	require.NotNil(t, updated.AdminNotes)
	assert.Equal(t, "documents verified", *updated.AdminNotes)
	assert.Equal(t, "서비스 신청이 거절되었습니다", f.sink.notifications[0].Title)
}

func TestGetOwnership(t *testing.T) {
	f := newFixture()
	created := f.create(t)

	_, err := f.svc.Get(context.Background(), other, created.ID)
	assert.True(t, errors.Is(err, authz.ErrNotOwner))

	got, err := f.svc.Get(context.Background(), admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.Get(context.Background(), applicant, "ghost")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestListAllStats(t *testing.T) {
	f := newFixture()
	first := f.create(t)
	f.create(t)
	_, err := f.svc.Transition(context.Background(), admin, TransitionInput{ApplicationID: first.ID, Status: StatusApproved})
	require.NoError(t, err)

	pending := StatusPending
	listing, err := f.svc.ListAll(context.Background(), admin, ListFilter{Status: &pending})
	require.NoError(t, err)

	assert.Len(t, listing.Items, 1)
	assert.Equal(t, int64(2), listing.Stats.Total)
	assert.Equal(t, int64(1), listing.Stats.ByStatus[StatusPending])
	assert.Equal(t, int64(1), listing.Stats.ByStatus[StatusApproved])
	assert.Equal(t, int64(0), listing.Stats.ByStatus[StatusRejected])

	_, err = f.svc.ListAll(context.Background(), applicant, ListFilter{})
	assert.ErrorIs(t, err, authz.ErrAdminRequired)
}

func TestListMineOnlyOwn(t *testing.T) {
	f := newFixture()
	f.create(t)
	_, err := f.svc.Create(context.Background(), other, CreateInput{ServiceID: "svc-care", Content: "another request text"})
	require.NoError(t, err)

	mine, err := f.svc.ListMine(context.Background(), applicant)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, applicant.ID, mine[0].ApplicantID)
}
