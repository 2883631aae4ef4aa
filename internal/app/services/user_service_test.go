package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/app/models/dto"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/auth"
)

type fakeProfileStore struct {
	users map[int64]*models.User
}

func (f *fakeProfileStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeProfileStore) GetAll(_ context.Context, role, email, name *string, page, pageSize int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, user := range f.users {
		if role != nil && string(user.RoleType) != *role {
			continue
		}
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProfileStore) UpdateProfile(_ context.Context, userID int64, firstName, lastName string, department *string, year *int) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.Department = department
	user.Year = year
	return nil
}

func (f *fakeProfileStore) UpdatePassword(_ context.Context, userID int64, hashedPassword string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

type fakeTokenRevoker struct {
	revokedFor []int64
}

func (f *fakeTokenRevoker) RevokeAllUserTokens(_ context.Context, userID int64) error {
	f.revokedFor = append(f.revokedFor, userID)
	return nil
}

type fakeUserClubs struct {
	clubsByUser map[int64][]int64
}

func (f *fakeUserClubs) GetClubIDsByUserID(_ context.Context, userID int64) ([]int64, error) {
	return f.clubsByUser[userID], nil
}

func newUserServiceForTest() (UserService, *fakeProfileStore, *fakeTokenRevoker, *fakeAuthz) {
	users := &fakeProfileStore{users: make(map[int64]*models.User)}
	tokens := &fakeTokenRevoker{}
	clubs := &fakeUserClubs{clubsByUser: make(map[int64][]int64)}
	authz := newFakeAuthz()
	svc := NewUserService(users, clubs, tokens, authz, testLogger())
	return svc, users, tokens, authz
}

func seedUser(users *fakeProfileStore, id int64, password string) *models.User {
	hashed, _ := auth.HashPassword(password)
	user := &models.User{
		ID:        id,
		Email:     "student@campus.edu",
		Password:  hashed,
		FirstName: "Ada",
		LastName:  "Lovelace",
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}
	users.users[id] = user
	return user
}

func TestGetProfile(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest()
	seedUser(users, 1, "OldPass123!")

	resp, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Ada", resp.FirstName)

	_, err = svc.GetProfile(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, users, _, _ := newUserServiceForTest()
	seedUser(users, 1, "OldPass123!")

	dept := "Mathematics"
	year := 2
	resp, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateUserRequest{
		FirstName:  "Grace",
		LastName:   "Hopper",
		Department: &dept,
		Year:       &year,
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", resp.FirstName)
	assert.Equal(t, "Hopper", resp.LastName)
	require.NotNil(t, resp.Department)
	assert.Equal(t, "Mathematics", *resp.Department)
}

func TestChangePassword(t *testing.T) {
	svc, users, tokens, _ := newUserServiceForTest()
	user := seedUser(users, 1, "OldPass123!")

	err := svc.ChangePassword(context.Background(), 1, &dto.ChangePasswordRequest{
		CurrentPassword: "OldPass123!",
		NewPassword:     "NewPass456!",
	})
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(user.Password, "NewPass456!"))
	assert.Equal(t, []int64{1}, tokens.revokedFor, "refresh tokens should be revoked after a password change")
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, users, tokens, _ := newUserServiceForTest()
	user := seedUser(users, 1, "OldPass123!")

	err := svc.ChangePassword(context.Background(), 1, &dto.ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "NewPass456!",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.True(t, auth.CheckPassword(user.Password, "OldPass123!"), "password should be unchanged")
	assert.Empty(t, tokens.revokedFor)
}

func TestGetAllUsersRequiresGlobalAdmin(t *testing.T) {
	svc, users, _, authz := newUserServiceForTest()
	seedUser(users, 1, "OldPass123!")
	admin := seedUser(users, 2, "AdminPass1!")
	admin.RoleType = models.RoleAdmin
	authz.globalAdmins[2] = true

	_, err := svc.GetAllUsers(context.Background(), 1, &dto.UserFilterRequest{Page: 1, PageSize: 10})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := svc.GetAllUsers(context.Background(), 2, &dto.UserFilterRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Users, 2)
	assert.Equal(t, int64(2), resp.TotalItems)
}
