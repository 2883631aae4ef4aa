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
	"github.com/emre/clubsphere/internal/pkg/auth"
)

// --- auth-side fakes ---

type fakeAuthUserStore struct {
	byID    map[int64]*models.User
	byEmail map[string]*models.User
	nextID  int64
}

func newFakeAuthUserStore() *fakeAuthUserStore {
	return &fakeAuthUserStore{
		byID:    make(map[int64]*models.User),
		byEmail: make(map[string]*models.User),
		nextID:  1,
	}
}

func (f *fakeAuthUserStore) Create(_ context.Context, user *models.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return apperrors.ErrEmailAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeAuthUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	user, ok := f.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

type fakeTokenStore struct {
	tokens map[string]struct {
		userID  int64
		expiry  time.Time
		revoked bool
	}
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]struct {
		userID  int64
		expiry  time.Time
		revoked bool
	})}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = struct {
		userID  int64
		expiry  time.Time
		revoked bool
	}{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, bool, error) {
	entry, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	if entry.revoked {
		return 0, time.Time{}, false, apperrors.ErrTokenRevoked
	}
	if entry.expiry.Before(time.Now()) {
		return 0, time.Time{}, false, apperrors.ErrTokenExpired
	}
	return entry.userID, entry.expiry, entry.revoked, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	entry, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	entry.revoked = true
	f.tokens[token] = entry
	return nil
}

func newAuthServiceForTest(t *testing.T) (AuthService, *fakeAuthUserStore, *fakeTokenStore) {
	t.Helper()
	users := newFakeAuthUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "auth-service-test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "clubsphere.test",
	})
	svc := NewAuthService(users, tokens, jwtService, testLogger())
	return svc, users, tokens
}

func TestRegisterCreatesStudent(t *testing.T) {
	svc, users, _ := newAuthServiceForTest(t)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "deniz@uni.edu",
		Password:  "s3cret-pass",
		FirstName: "Deniz",
		LastName:  "Demir",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, string(models.RoleStudent), resp.User.RoleType)

	stored, err := users.GetByEmail(context.Background(), "deniz@uni.edu")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	// The hash is stored, never the raw password.
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "s3cret-pass"))
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "not-an-email", Password: "s3cret-pass", FirstName: "A", LastName: "B",
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "deniz@uni.edu", Password: "short", FirstName: "A", LastName: "B",
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "deniz@uni.edu", Password: "s3cret-pass", FirstName: "Deniz", LastName: "Demir",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "deniz@uni.edu", Password: "another-pass", FirstName: "Derya", LastName: "Demir",
	})
	assert.True(t, errors.Is(err, apperrors.ErrEmailAlreadyExists))
}

func TestLogin(t *testing.T) {
	svc, users, _ := newAuthServiceForTest(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "deniz@uni.edu", Password: "s3cret-pass", FirstName: "Deniz", LastName: "Demir",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "deniz@uni.edu", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)

	stored, _ := users.GetByEmail(context.Background(), "deniz@uni.edu")
	assert.NotNil(t, stored.LastLoginAt)

	// Wrong password and unknown email produce the same error.
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "deniz@uni.edu", Password: "wrong",
	})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@uni.edu", Password: "s3cret-pass",
	})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, users, _ := newAuthServiceForTest(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "deniz@uni.edu", Password: "s3cret-pass", FirstName: "Deniz", LastName: "Demir",
	})
	require.NoError(t, err)

	stored, _ := users.GetByEmail(context.Background(), "deniz@uni.edu")
	stored.IsActive = false

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "deniz@uni.edu", Password: "s3cret-pass",
	})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, tokens := newAuthServiceForTest(t)

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "deniz@uni.edu", Password: "s3cret-pass", FirstName: "Deniz", LastName: "Demir",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), registered.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.Token.RefreshToken, refreshed.RefreshToken)

	// The presented token was revoked on rotation and cannot be replayed.
	_, err = svc.RefreshToken(context.Background(), registered.Token.RefreshToken)
	assert.True(t, errors.Is(err, apperrors.ErrTokenRevoked))

	// The replacement still works.
	_, err = svc.RefreshToken(context.Background(), refreshed.RefreshToken)
	assert.NoError(t, err)

	_, _, _, err = tokens.GetTokenByValue(context.Background(), refreshed.RefreshToken)
	assert.True(t, errors.Is(err, apperrors.ErrTokenRevoked))
}

func TestLogout(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email: "deniz@uni.edu", Password: "s3cret-pass", FirstName: "Deniz", LastName: "Demir",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), registered.Token.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), registered.Token.RefreshToken)
	assert.True(t, errors.Is(err, apperrors.ErrTokenRevoked))

	// Logging out an unknown token is not an error.
	assert.NoError(t, svc.Logout(context.Background(), "unknown-token"))
}
