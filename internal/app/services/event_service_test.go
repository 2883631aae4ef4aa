package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
)

type eventServiceFixture struct {
	svc          EventService
	impl         *eventServiceImpl
	clubs        *fakeClubStore
	events       *fakeEventStore
	regs         *fakeRegistrationStore
	authz        *fakeAuthz
	approvedClub *models.Club
}

func newEventServiceForTest(t *testing.T) *eventServiceFixture {
	t.Helper()
	clubs := newFakeClubStore()
	events := newFakeEventStore()
	regs := newFakeRegistrationStore(events)
	authz := newFakeAuthz()

	club := seedClub(t, clubs, 1, models.ClubStatusApproved)
	authz.clubAdmins[memberKey{1, club.ID}] = true

	svc := NewEventService(events, regs, clubs, authz, testSigner(), testMetrics(), testLogger())
	return &eventServiceFixture{
		svc:          svc,
		impl:         svc.(*eventServiceImpl),
		clubs:        clubs,
		events:       events,
		regs:         regs,
		authz:        authz,
		approvedClub: club,
	}
}

func (f *eventServiceFixture) seedEvent(t *testing.T, dateTime time.Time) *models.ClubEvent {
	t.Helper()
	event := &models.ClubEvent{
		ClubID:      f.approvedClub.ID,
		Name:        "Line Follower Race",
		Description: "Autonomous robots race the track.",
		DateTime:    dateTime,
		Location:    "Engineering B-204",
	}
	require.NoError(t, f.events.Create(context.Background(), event))
	return event
}

func TestCreateEventRules(t *testing.T) {
	f := newEventServiceForTest(t)
	future := time.Now().Add(48 * time.Hour)

	// Non-admin cannot create.
	_, err := f.svc.CreateEvent(context.Background(), 2, f.approvedClub.ID, &dto.CreateEventRequest{
		Name: "Race", Description: "Robots racing.", DateTime: future, Location: "B-204",
	})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	// Past date is refused.
	_, err = f.svc.CreateEvent(context.Background(), 1, f.approvedClub.ID, &dto.CreateEventRequest{
		Name: "Race", Description: "Robots racing.", DateTime: time.Now().Add(-time.Hour), Location: "B-204",
	})
	assert.True(t, errors.Is(err, apperrors.ErrEventInPast))

	// Pending club cannot host events.
	pending := seedClub(t, f.clubs, 1, models.ClubStatusPending)
	f.authz.clubAdmins[memberKey{1, pending.ID}] = true
	_, err = f.svc.CreateEvent(context.Background(), 1, pending.ID, &dto.CreateEventRequest{
		Name: "Race", Description: "Robots racing.", DateTime: future, Location: "B-204",
	})
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))

	resp, err := f.svc.CreateEvent(context.Background(), 1, f.approvedClub.ID, &dto.CreateEventRequest{
		Name: "Race", Description: "Robots racing.", DateTime: future, Location: "B-204",
	})
	require.NoError(t, err)
	assert.Equal(t, f.approvedClub.ID, resp.ClubID)
	assert.Zero(t, resp.AttendanceCount)
}

func TestRegisterForEventIssuesPass(t *testing.T) {
	f := newEventServiceForTest(t)
	event := f.seedEvent(t, time.Now().Add(24*time.Hour))

	resp, err := f.svc.RegisterForEvent(context.Background(), 2, event.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.QRCode)

	// The stored pass verifies and names this user, event, and registration.
	claims, err := testSigner().Verify(resp.QRCode)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claims.UserID)
	assert.Equal(t, event.ID, claims.EventID)
	assert.Equal(t, resp.ID, claims.RegistrationID)

	stored, err := f.events.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AttendanceCount)
}

func TestRegisterForPastEvent(t *testing.T) {
	f := newEventServiceForTest(t)
	event := f.seedEvent(t, time.Now().Add(24*time.Hour))

	// Freeze the clock past the event date.
	f.impl.now = func() time.Time { return event.DateTime.Add(time.Minute) }

	_, err := f.svc.RegisterForEvent(context.Background(), 2, event.ID)
	assert.True(t, errors.Is(err, apperrors.ErrEventInPast))
}

func TestRegisterTwiceConflicts(t *testing.T) {
	f := newEventServiceForTest(t)
	event := f.seedEvent(t, time.Now().Add(24*time.Hour))

	_, err := f.svc.RegisterForEvent(context.Background(), 2, event.ID)
	require.NoError(t, err)

	_, err = f.svc.RegisterForEvent(context.Background(), 2, event.ID)
	assert.True(t, errors.Is(err, apperrors.ErrRegistrationExists))

	stored, _ := f.events.GetByID(context.Background(), event.ID)
	assert.Equal(t, 1, stored.AttendanceCount)
}

func TestCancelRegistration(t *testing.T) {
	f := newEventServiceForTest(t)
	event := f.seedEvent(t, time.Now().Add(24*time.Hour))

	_, err := f.svc.RegisterForEvent(context.Background(), 2, event.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.CancelRegistration(context.Background(), 2, event.ID))

	stored, _ := f.events.GetByID(context.Background(), event.ID)
	assert.Equal(t, 0, stored.AttendanceCount)

	_, err = f.svc.GetMyRegistration(context.Background(), 2, event.ID)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestCancelAfterEventStarted(t *testing.T) {
	f := newEventServiceForTest(t)
	event := f.seedEvent(t, time.Now().Add(24*time.Hour))

	_, err := f.svc.RegisterForEvent(context.Background(), 2, event.ID)
	require.NoError(t, err)

	f.impl.now = func() time.Time { return event.DateTime.Add(time.Minute) }

	err = f.svc.CancelRegistration(context.Background(), 2, event.ID)
	assert.True(t, errors.Is(err, apperrors.ErrEventInPast))
}

func TestGetEntryPassImage(t *testing.T) {
	f := newEventServiceForTest(t)
	event := f.seedEvent(t, time.Now().Add(24*time.Hour))

	_, err := f.svc.RegisterForEvent(context.Background(), 2, event.ID)
	require.NoError(t, err)

	png, err := f.svc.GetEntryPassImage(context.Background(), 2, event.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))

	_, err = f.svc.GetEntryPassImage(context.Background(), 7, event.ID)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestVerifyEntryPass(t *testing.T) {
	f := newEventServiceForTest(t)
	event := f.seedEvent(t, time.Now().Add(24*time.Hour))
	other := f.seedEvent(t, time.Now().Add(48*time.Hour))

	reg, err := f.svc.RegisterForEvent(context.Background(), 2, event.ID)
	require.NoError(t, err)

	// Only the club admin may scan passes.
	_, err = f.svc.VerifyEntryPass(context.Background(), 2, event.ID, reg.QRCode)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	resp, err := f.svc.VerifyEntryPass(context.Background(), 1, event.ID, reg.QRCode)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, int64(2), resp.UserID)
	assert.Equal(t, reg.ID, resp.RegistrationID)

	// A valid pass scanned at a different event is refused.
	resp, err = f.svc.VerifyEntryPass(context.Background(), 1, other.ID, reg.QRCode)
	require.NoError(t, err)
	assert.False(t, resp.Valid)

	// Garbage is refused without an error.
	resp, err = f.svc.VerifyEntryPass(context.Background(), 1, event.ID, "not-a-pass")
	require.NoError(t, err)
	assert.False(t, resp.Valid)
}

func TestVerifyEntryPassAfterCancellation(t *testing.T) {
	f := newEventServiceForTest(t)
	event := f.seedEvent(t, time.Now().Add(24*time.Hour))

	reg, err := f.svc.RegisterForEvent(context.Background(), 2, event.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.CancelRegistration(context.Background(), 2, event.ID))

	resp, err := f.svc.VerifyEntryPass(context.Background(), 1, event.ID, reg.QRCode)
	require.NoError(t, err)
	assert.False(t, resp.Valid)
}

func TestUpdateEventRequiresClubAdmin(t *testing.T) {
	f := newEventServiceForTest(t)
	event := f.seedEvent(t, time.Now().Add(24*time.Hour))

	_, err := f.svc.UpdateEvent(context.Background(), 2, event.ID, &dto.UpdateEventRequest{
		Name: "Renamed", Description: "Robots racing, now longer.", DateTime: event.DateTime, Location: "B-205",
	})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	resp, err := f.svc.UpdateEvent(context.Background(), 1, event.ID, &dto.UpdateEventRequest{
		Name: "Renamed", Description: "Robots racing, now longer.", DateTime: event.DateTime, Location: "B-205",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
	assert.Equal(t, "B-205", resp.Location)
}

func TestGetMyEvents(t *testing.T) {
	f := newEventServiceForTest(t)
	event := f.seedEvent(t, time.Now().Add(24*time.Hour))
	f.seedEvent(t, time.Now().Add(48*time.Hour))

	_, err := f.svc.RegisterForEvent(context.Background(), 2, event.ID)
	require.NoError(t, err)

	resp, err := f.svc.GetMyEvents(context.Background(), 2, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, event.ID, resp.Events[0].ID)
}
