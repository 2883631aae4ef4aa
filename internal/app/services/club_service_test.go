package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
)

func newClubServiceForTest(t *testing.T) (ClubService, *fakeClubStore, *fakeMembershipStore, *fakeAuthz, *fakeUserStore) {
	t.Helper()
	clubs := newFakeClubStore()
	memberships := newFakeMembershipStore()
	clubs.memberships = memberships
	authz := newFakeAuthz()
	users := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Email: "admin@uni.edu", FirstName: "Ada", LastName: "Aksoy"},
		2: {ID: 2, Email: "student@uni.edu", FirstName: "Bora", LastName: "Bilgin"},
	}}
	svc := NewClubService(clubs, memberships, users, authz, testMetrics(), testLogger())
	return svc, clubs, memberships, authz, users
}

func seedClub(t *testing.T, clubs *fakeClubStore, adminID int64, status models.ClubStatus) *models.Club {
	t.Helper()
	club := &models.Club{Name: "Robotics Society", Description: "We build and race robots.", AdminID: adminID}
	require.NoError(t, clubs.Create(context.Background(), club))
	club.Status = status
	return club
}

func TestProposeClubStartsPending(t *testing.T) {
	svc, clubs, _, _, _ := newClubServiceForTest(t)

	resp, err := svc.ProposeClub(context.Background(), 2, &dto.CreateClubRequest{
		Name:        "Chess Club",
		Description: "Weekly blitz tournaments and lectures.",
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.ClubStatusPending), resp.Status)
	assert.Equal(t, int64(2), resp.AdminID)

	stored, err := clubs.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClubStatusPending, stored.Status)
}

func TestApproveClubRequiresGlobalAdmin(t *testing.T) {
	svc, clubs, _, _, _ := newClubServiceForTest(t)
	club := seedClub(t, clubs, 1, models.ClubStatusPending)

	err := svc.ApproveClub(context.Background(), 2, club.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	stored, err := clubs.GetByID(context.Background(), club.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClubStatusPending, stored.Status)
}

func TestApproveClubTransitionsOnce(t *testing.T) {
	svc, clubs, memberships, authz, _ := newClubServiceForTest(t)
	authz.globalAdmins[9] = true
	club := seedClub(t, clubs, 1, models.ClubStatusPending)

	require.NoError(t, svc.ApproveClub(context.Background(), 9, club.ID))

	stored, err := clubs.GetByID(context.Background(), club.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClubStatusApproved, stored.Status)

	// The founding membership for the proposer commits with the approval.
	isMember, _ := memberships.IsMember(context.Background(), 1, club.ID)
	assert.True(t, isMember)
	count, _ := memberships.CountByClubID(context.Background(), club.ID)
	assert.Equal(t, 1, count)

	// A second decision on an already decided club must fail.
	err = svc.RejectClub(context.Background(), 9, club.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrClubNotPending))
	stored, _ = clubs.GetByID(context.Background(), club.ID)
	assert.Equal(t, models.ClubStatusApproved, stored.Status)
}

func TestRejectClub(t *testing.T) {
	svc, clubs, _, authz, _ := newClubServiceForTest(t)
	authz.globalAdmins[9] = true
	club := seedClub(t, clubs, 1, models.ClubStatusPending)

	require.NoError(t, svc.RejectClub(context.Background(), 9, club.ID))

	stored, err := clubs.GetByID(context.Background(), club.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClubStatusRejected, stored.Status)
}

func TestApproveMissingClub(t *testing.T) {
	svc, _, _, authz, _ := newClubServiceForTest(t)
	authz.globalAdmins[9] = true

	err := svc.ApproveClub(context.Background(), 9, 4242)
	assert.True(t, errors.Is(err, apperrors.ErrClubNotFound))
}

func TestJoinClubOnlyWhenApproved(t *testing.T) {
	svc, clubs, memberships, _, _ := newClubServiceForTest(t)
	pending := seedClub(t, clubs, 1, models.ClubStatusPending)

	err := svc.JoinClub(context.Background(), 2, pending.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))

	approved := seedClub(t, clubs, 1, models.ClubStatusApproved)
	require.NoError(t, svc.JoinClub(context.Background(), 2, approved.ID))

	isMember, err := memberships.IsMember(context.Background(), 2, approved.ID)
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestJoinClubTwiceConflicts(t *testing.T) {
	svc, clubs, _, _, _ := newClubServiceForTest(t)
	club := seedClub(t, clubs, 1, models.ClubStatusApproved)

	require.NoError(t, svc.JoinClub(context.Background(), 2, club.ID))

	err := svc.JoinClub(context.Background(), 2, club.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMembershipExists))
}

func TestClubAdminCannotLeaveOwnClub(t *testing.T) {
	svc, clubs, memberships, authz, _ := newClubServiceForTest(t)
	club := seedClub(t, clubs, 1, models.ClubStatusApproved)
	authz.clubAdmins[memberKey{1, club.ID}] = true
	_, err := memberships.AddMember(context.Background(), 1, club.ID)
	require.NoError(t, err)

	err = svc.LeaveClub(context.Background(), 1, club.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))

	isMember, _ := memberships.IsMember(context.Background(), 1, club.ID)
	assert.True(t, isMember)
}

func TestLeaveClubWithoutMembership(t *testing.T) {
	svc, clubs, _, _, _ := newClubServiceForTest(t)
	club := seedClub(t, clubs, 1, models.ClubStatusApproved)

	err := svc.LeaveClub(context.Background(), 2, club.ID)
	assert.True(t, errors.Is(err, apperrors.ErrMembershipMissing))
}

func TestRemoveMemberBlocksClubAdmin(t *testing.T) {
	svc, clubs, memberships, authz, _ := newClubServiceForTest(t)
	club := seedClub(t, clubs, 1, models.ClubStatusApproved)
	authz.clubAdmins[memberKey{1, club.ID}] = true
	authz.globalAdmins[9] = true
	_, err := memberships.AddMember(context.Background(), 1, club.ID)
	require.NoError(t, err)

	err = svc.RemoveMember(context.Background(), 9, club.ID, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestAddMemberRequiresClubAdmin(t *testing.T) {
	svc, clubs, memberships, authz, _ := newClubServiceForTest(t)
	club := seedClub(t, clubs, 1, models.ClubStatusApproved)

	err := svc.AddMember(context.Background(), 2, club.ID, "student@uni.edu")
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	authz.clubAdmins[memberKey{1, club.ID}] = true
	require.NoError(t, svc.AddMember(context.Background(), 1, club.ID, "student@uni.edu"))

	isMember, _ := memberships.IsMember(context.Background(), 2, club.ID)
	assert.True(t, isMember)

	// Unknown email cannot be added.
	err = svc.AddMember(context.Background(), 1, club.ID, "nobody@uni.edu")
	assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
}

func TestGetClubMembersVisibility(t *testing.T) {
	svc, clubs, memberships, authz, _ := newClubServiceForTest(t)
	club := seedClub(t, clubs, 1, models.ClubStatusApproved)
	_, err := memberships.AddMember(context.Background(), 2, club.ID)
	require.NoError(t, err)

	// Outsider is refused.
	_, err = svc.GetClubMembers(context.Background(), 7, club.ID, 1, 10)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	// A member can see the list.
	resp, err := svc.GetClubMembers(context.Background(), 2, club.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Members, 1)

	// So can the club admin without a membership row.
	authz.clubAdmins[memberKey{1, club.ID}] = true
	_, err = svc.GetClubMembers(context.Background(), 1, club.ID, 1, 10)
	assert.NoError(t, err)
}

func TestDeleteClubRequiresGlobalAdmin(t *testing.T) {
	svc, clubs, _, authz, _ := newClubServiceForTest(t)
	club := seedClub(t, clubs, 1, models.ClubStatusApproved)

	err := svc.DeleteClub(context.Background(), 1, club.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	authz.globalAdmins[9] = true
	require.NoError(t, svc.DeleteClub(context.Background(), 9, club.ID))

	_, err = clubs.GetByID(context.Background(), club.ID)
	assert.True(t, errors.Is(err, apperrors.ErrClubNotFound))
}
