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

type fakeAnnouncementStore struct {
	announcements map[int64]*models.Announcement
	nextID        int64
}

func newFakeAnnouncementStore() *fakeAnnouncementStore {
	return &fakeAnnouncementStore{announcements: make(map[int64]*models.Announcement), nextID: 1}
}

func (f *fakeAnnouncementStore) Create(_ context.Context, a *models.Announcement) error {
	a.ID = f.nextID
	f.nextID++
	f.announcements[a.ID] = a
	return nil
}

func (f *fakeAnnouncementStore) GetByID(_ context.Context, id int64) (*models.Announcement, error) {
	a, ok := f.announcements[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("announcement not found")
	}
	return a, nil
}

func (f *fakeAnnouncementStore) GetByClubID(_ context.Context, clubID int64, _, _ int) ([]*models.Announcement, int64, error) {
	var out []*models.Announcement
	for _, a := range f.announcements {
		if a.ClubID == clubID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAnnouncementStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.announcements[id]; !ok {
		return apperrors.NewResourceNotFoundError("announcement not found")
	}
	delete(f.announcements, id)
	return nil
}

func newAnnouncementServiceForTest(t *testing.T) (AnnouncementService, *fakeAnnouncementStore, *fakeMembershipStore, *fakeAuthz) {
	t.Helper()
	announcements := newFakeAnnouncementStore()
	memberships := newFakeMembershipStore()
	authz := newFakeAuthz()
	svc := NewAnnouncementService(announcements, memberships, authz, testLogger())
	return svc, announcements, memberships, authz
}

func TestCreateAnnouncementRequiresClubAdmin(t *testing.T) {
	svc, _, _, authz := newAnnouncementServiceForTest(t)

	_, err := svc.CreateAnnouncement(context.Background(), 2, 10, &dto.CreateAnnouncementRequest{
		Title: "General assembly", Content: "This Friday at 18:00 in B-204.",
	})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	authz.clubAdmins[memberKey{1, 10}] = true
	resp, err := svc.CreateAnnouncement(context.Background(), 1, 10, &dto.CreateAnnouncementRequest{
		Title: "General assembly", Content: "This Friday at 18:00 in B-204.",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ClubID)
	assert.Equal(t, "General assembly", resp.Title)
}

func TestAnnouncementVisibility(t *testing.T) {
	svc, _, memberships, authz := newAnnouncementServiceForTest(t)
	authz.clubAdmins[memberKey{1, 10}] = true

	_, err := svc.CreateAnnouncement(context.Background(), 1, 10, &dto.CreateAnnouncementRequest{
		Title: "General assembly", Content: "This Friday at 18:00 in B-204.",
	})
	require.NoError(t, err)

	// Outsiders cannot read announcements.
	_, err = svc.GetClubAnnouncements(context.Background(), 7, 10, 1, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	// Members can.
	_, err = memberships.AddMember(context.Background(), 2, 10)
	require.NoError(t, err)
	resp, err := svc.GetClubAnnouncements(context.Background(), 2, 10, 1, 10)
	require.NoError(t, err)
	assert.Len(t, resp.Announcements, 1)

	// The club admin can, with no membership row.
	_, err = svc.GetClubAnnouncements(context.Background(), 1, 10, 1, 10)
	assert.NoError(t, err)

	// So can a platform admin.
	authz.globalAdmins[9] = true
	_, err = svc.GetClubAnnouncements(context.Background(), 9, 10, 1, 10)
	assert.NoError(t, err)
}

func TestDeleteAnnouncement(t *testing.T) {
	svc, announcements, _, authz := newAnnouncementServiceForTest(t)
	authz.clubAdmins[memberKey{1, 10}] = true

	created, err := svc.CreateAnnouncement(context.Background(), 1, 10, &dto.CreateAnnouncementRequest{
		Title: "General assembly", Content: "This Friday at 18:00 in B-204.",
	})
	require.NoError(t, err)

	// A member without admin rights cannot delete.
	err = svc.DeleteAnnouncement(context.Background(), 2, created.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	require.NoError(t, svc.DeleteAnnouncement(context.Background(), 1, created.ID))
	_, err = announcements.GetByID(context.Background(), created.ID)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}
