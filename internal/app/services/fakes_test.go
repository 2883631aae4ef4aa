package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/app/repositories"
	"github.com/emre/clubsphere/internal/metrics"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/entrypass"
	"github.com/emre/clubsphere/internal/pkg/reportgen"
)

// Prometheus collectors register globally, so every test shares one registry.
var (
	metricsOnce      sync.Once
	sharedMetricsReg *metrics.Registry
)

func testMetrics() *metrics.Registry {
	metricsOnce.Do(func() {
		sharedMetricsReg = metrics.NewRegistry()
	})
	return sharedMetricsReg
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testSigner() *entrypass.Signer {
	return entrypass.NewSigner("service-test-pass-secret", "clubsphere.test")
}

// --- club repository fake ---

type fakeClubStore struct {
	clubs  map[int64]*models.Club
	nextID int64

	// memberships, when set, receives the founding membership row that the
	// real repository inserts in the same transaction as an approval.
	memberships *fakeMembershipStore
}

func newFakeClubStore() *fakeClubStore {
	return &fakeClubStore{clubs: make(map[int64]*models.Club), nextID: 1}
}

func (f *fakeClubStore) Create(_ context.Context, club *models.Club) error {
	club.ID = f.nextID
	f.nextID++
	club.Status = models.ClubStatusPending
	club.CreatedAt = time.Now()
	club.UpdatedAt = club.CreatedAt
	f.clubs[club.ID] = club
	return nil
}

func (f *fakeClubStore) GetByID(_ context.Context, id int64) (*models.Club, error) {
	club, ok := f.clubs[id]
	if !ok {
		return nil, apperrors.ErrClubNotFound
	}
	copied := *club
	return &copied, nil
}

func (f *fakeClubStore) GetAll(_ context.Context, status, _ *string, _, _ int) ([]*models.Club, int64, error) {
	var out []*models.Club
	for _, club := range f.clubs {
		if status != nil && *status != "" && string(club.Status) != *status {
			continue
		}
		copied := *club
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeClubStore) Update(_ context.Context, club *models.Club) error {
	if _, ok := f.clubs[club.ID]; !ok {
		return apperrors.ErrClubNotFound
	}
	copied := *club
	f.clubs[club.ID] = &copied
	return nil
}

func (f *fakeClubStore) Approve(_ context.Context, clubID int64) error {
	club, ok := f.clubs[clubID]
	if !ok {
		return apperrors.ErrClubNotFound
	}
	if club.Status != models.ClubStatusPending {
		return apperrors.ErrClubNotPending
	}
	club.Status = models.ClubStatusApproved
	if f.memberships != nil {
		if _, err := f.memberships.AddMember(context.Background(), club.AdminID, club.ID); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeClubStore) Reject(_ context.Context, clubID int64) error {
	club, ok := f.clubs[clubID]
	if !ok {
		return apperrors.ErrClubNotFound
	}
	if club.Status != models.ClubStatusPending {
		return apperrors.ErrClubNotPending
	}
	club.Status = models.ClubStatusRejected
	return nil
}

func (f *fakeClubStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.clubs[id]; !ok {
		return apperrors.ErrClubNotFound
	}
	delete(f.clubs, id)
	return nil
}

// --- membership repository fake ---

type memberKey struct{ userID, clubID int64 }

type fakeMembershipStore struct {
	members map[memberKey]time.Time
	nextID  int64
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{members: make(map[memberKey]time.Time), nextID: 1}
}

func (f *fakeMembershipStore) AddMember(_ context.Context, userID, clubID int64) (int64, error) {
	key := memberKey{userID, clubID}
	if _, exists := f.members[key]; exists {
		return 0, apperrors.ErrMembershipExists
	}
	f.members[key] = time.Now()
	id := f.nextID
	f.nextID++
	return id, nil
}

func (f *fakeMembershipStore) RemoveMember(_ context.Context, userID, clubID int64) error {
	key := memberKey{userID, clubID}
	if _, exists := f.members[key]; !exists {
		return apperrors.ErrMembershipMissing
	}
	delete(f.members, key)
	return nil
}

func (f *fakeMembershipStore) IsMember(_ context.Context, userID, clubID int64) (bool, error) {
	_, exists := f.members[memberKey{userID, clubID}]
	return exists, nil
}

func (f *fakeMembershipStore) GetMembersByClubID(_ context.Context, clubID int64, _, _ int) ([]*models.ClubMembership, int64, error) {
	var out []*models.ClubMembership
	for key, joined := range f.members {
		if key.clubID == clubID {
			out = append(out, &models.ClubMembership{UserID: key.userID, ClubID: clubID, JoinDate: joined})
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMembershipStore) CountByClubID(_ context.Context, clubID int64) (int, error) {
	count := 0
	for key := range f.members {
		if key.clubID == clubID {
			count++
		}
	}
	return count, nil
}

// --- user repository fake ---

type fakeUserStore struct {
	users map[int64]*models.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// --- authorizer fake ---

type fakeAuthz struct {
	globalAdmins map[int64]bool
	clubAdmins   map[memberKey]bool
}

func newFakeAuthz() *fakeAuthz {
	return &fakeAuthz{
		globalAdmins: make(map[int64]bool),
		clubAdmins:   make(map[memberKey]bool),
	}
}

func (f *fakeAuthz) ValidateGlobalAdmin(_ context.Context, userID int64) error {
	if !f.globalAdmins[userID] {
		return apperrors.NewForbiddenError("this action requires platform admin rights")
	}
	return nil
}

func (f *fakeAuthz) ValidateClubAdmin(ctx context.Context, userID, clubID int64) error {
	if f.clubAdmins[memberKey{userID, clubID}] || f.globalAdmins[userID] {
		return nil
	}
	return apperrors.NewForbiddenError("this action requires club admin rights")
}

func (f *fakeAuthz) IsGlobalAdmin(_ context.Context, userID int64) (bool, error) {
	return f.globalAdmins[userID], nil
}

func (f *fakeAuthz) IsClubAdmin(_ context.Context, userID, clubID int64) (bool, error) {
	return f.clubAdmins[memberKey{userID, clubID}], nil
}

func (f *fakeAuthz) InvalidateClubAdmin(int64) {}

// --- event repository fake ---

type fakeEventStore struct {
	events map[int64]*models.ClubEvent
	nextID int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*models.ClubEvent), nextID: 1}
}

func (f *fakeEventStore) Create(_ context.Context, event *models.ClubEvent) error {
	event.ID = f.nextID
	f.nextID++
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*models.ClubEvent, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventStore) GetAll(_ context.Context, filter repositories.EventFilter, _, _ int) ([]*models.ClubEvent, int64, error) {
	var out []*models.ClubEvent
	for _, event := range f.events {
		if filter.ClubID != nil && event.ClubID != *filter.ClubID {
			continue
		}
		copied := *event
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEventStore) Update(_ context.Context, event *models.ClubEvent) error {
	if _, ok := f.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventStore) SetReport(_ context.Context, eventID int64, report string) error {
	event, ok := f.events[eventID]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	event.Report = &report
	return nil
}

// --- registration repository fake ---

type fakeRegistrationStore struct {
	registrations map[memberKey]*models.Registration
	events        *fakeEventStore
	nextID        int64
}

func newFakeRegistrationStore(events *fakeEventStore) *fakeRegistrationStore {
	return &fakeRegistrationStore{
		registrations: make(map[memberKey]*models.Registration),
		events:        events,
		nextID:        1,
	}
}

func (f *fakeRegistrationStore) Register(_ context.Context, userID, eventID int64, signPass repositories.PassSignFn) (*models.Registration, error) {
	key := memberKey{userID, eventID}
	if _, exists := f.registrations[key]; exists {
		return nil, apperrors.ErrRegistrationExists
	}

	reg := &models.Registration{
		ID:               f.nextID,
		UserID:           userID,
		EventID:          eventID,
		RegistrationDate: time.Now(),
	}
	f.nextID++

	pass, err := signPass(reg.ID)
	if err != nil {
		return nil, err
	}
	reg.QRCode = pass

	f.registrations[key] = reg
	if event, ok := f.events.events[eventID]; ok {
		event.AttendanceCount++
	}
	return reg, nil
}

func (f *fakeRegistrationStore) Cancel(_ context.Context, userID, eventID int64) error {
	key := memberKey{userID, eventID}
	if _, exists := f.registrations[key]; !exists {
		return apperrors.NewResourceNotFoundError("registration not found")
	}
	delete(f.registrations, key)
	if event, ok := f.events.events[eventID]; ok {
		event.AttendanceCount--
	}
	return nil
}

func (f *fakeRegistrationStore) GetByUserAndEvent(_ context.Context, userID, eventID int64) (*models.Registration, error) {
	reg, exists := f.registrations[memberKey{userID, eventID}]
	if !exists {
		return nil, apperrors.NewResourceNotFoundError("registration not found")
	}
	return reg, nil
}

func (f *fakeRegistrationStore) GetByEventID(_ context.Context, eventID int64, _, _ int) ([]*models.Registration, int64, error) {
	var out []*models.Registration
	for key, reg := range f.registrations {
		if key.clubID == eventID {
			out = append(out, reg)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRegistrationStore) GetEventsByUserID(_ context.Context, userID int64, _, _ int) ([]*models.ClubEvent, int64, error) {
	var out []*models.ClubEvent
	for key := range f.registrations {
		if key.userID == userID {
			if event, ok := f.events.events[key.clubID]; ok {
				copied := *event
				out = append(out, &copied)
			}
		}
	}
	return out, int64(len(out)), nil
}

// --- report generator fake ---

type fakeGenerator struct {
	report string
	err    error
	calls  int
}

func (f *fakeGenerator) GenerateReport(_ context.Context, _ reportgen.EventSummary) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.report, nil
}
