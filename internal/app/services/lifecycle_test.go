package services

import (
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

// TestClubLifecycle walks the whole happy path across services: a student
// proposes a club, a platform admin approves it, another student joins,
// the club admin schedules an event, the member registers and presents a
// valid entry pass, announcements stay member-only, and once the event is
// over the club admin drafts a report.
func TestClubLifecycle(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC)

	clubs := newFakeClubStore()
	memberships := newFakeMembershipStore()
	clubs.memberships = memberships
	events := newFakeEventStore()
	regs := newFakeRegistrationStore(events)
	announcements := newFakeAnnouncementStore()
	authz := newFakeAuthz()
	generator := &fakeGenerator{report: "Twelve boards, one winner."}
	users := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Email: "founder@uni.edu", FirstName: "Ada", LastName: "Aksoy"},
		2: {ID: 2, Email: "player@uni.edu", FirstName: "Bora", LastName: "Bilgin"},
		9: {ID: 9, Email: "dean@uni.edu", FirstName: "Deniz", LastName: "Demir", RoleType: models.RoleAdmin},
	}}
	authz.globalAdmins[9] = true

	clubSvc := NewClubService(clubs, memberships, users, authz, testMetrics(), testLogger())
	eventSvc := NewEventService(events, regs, clubs, authz, testSigner(), testMetrics(), testLogger())
	reportSvc := NewReportService(events, clubs, authz, generator, testMetrics(), testLogger())
	annSvc := NewAnnouncementService(announcements, memberships, authz, testLogger())

	eventImpl := eventSvc.(*eventServiceImpl)
	reportImpl := reportSvc.(*reportServiceImpl)
	eventImpl.now = func() time.Time { return base }
	reportImpl.now = func() time.Time { return base }

	// Student 1 proposes the chess club; it starts pending.
	club, err := clubSvc.ProposeClub(ctx, 1, &dto.CreateClubRequest{
		Name:        "Chess Club",
		Description: "Weekly blitz tournaments and endgame lectures.",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.ClubStatusPending), club.Status)

	// Nobody can join before approval.
	err = clubSvc.JoinClub(ctx, 2, club.ID)
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))

	// The platform admin approves; the founder becomes the first member
	// and the club's admin.
	require.NoError(t, clubSvc.ApproveClub(ctx, 9, club.ID))
	authz.clubAdmins[memberKey{1, club.ID}] = true

	isMember, _ := memberships.IsMember(ctx, 1, club.ID)
	assert.True(t, isMember)

	// Student 2 joins the now approved club.
	require.NoError(t, clubSvc.JoinClub(ctx, 2, club.ID))

	// The founder schedules a tournament next week.
	event, err := eventSvc.CreateEvent(ctx, 1, club.ID, &dto.CreateEventRequest{
		Name:        "Spring Blitz Open",
		Description: "5+0 blitz, all levels welcome.",
		DateTime:    base.Add(7 * 24 * time.Hour),
		Location:    "Student Center Hall A",
	})
	require.NoError(t, err)

	// Student 2 registers and gets a signed pass that verifies at the door.
	reg, err := eventSvc.RegisterForEvent(ctx, 2, event.ID)
	require.NoError(t, err)
	require.NotEmpty(t, reg.QRCode)

	verdict, err := eventSvc.VerifyEntryPass(ctx, 1, event.ID, reg.QRCode)
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
	assert.Equal(t, int64(2), verdict.UserID)

	stored, err := events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AttendanceCount)

	// Announcements are visible to members only.
	_, err = annSvc.CreateAnnouncement(ctx, 1, club.ID, &dto.CreateAnnouncementRequest{
		Title:   "Pairings posted",
		Content: "Round one pairings are on the board.",
	})
	require.NoError(t, err)

	list, err := annSvc.GetClubAnnouncements(ctx, 2, club.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, list.Announcements, 1)

	_, err = annSvc.GetClubAnnouncements(ctx, 7, club.ID, 1, 10)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	// After the tournament the founder drafts a report.
	after := base.Add(8 * 24 * time.Hour)
	eventImpl.now = func() time.Time { return after }
	reportImpl.now = func() time.Time { return after }

	report, err := reportSvc.GenerateReport(ctx, 1, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Twelve boards, one winner.", report.Report)

	stored, err = events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Report)
	assert.Equal(t, "Twelve boards, one winner.", *stored.Report)
}
