package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/emre/clubsphere/internal/app/models"
	"github.com/emre/clubsphere/internal/pkg/apperrors"
	"github.com/emre/clubsphere/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleAPIErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.NewValidationError("email format is invalid"), 400},
		{"bad request", apperrors.NewBadRequestError("club is not open for membership"), 400},
		{"credentials", apperrors.ErrInvalidCredentials, 401},
		{"forbidden", apperrors.NewForbiddenError("club admin rights required"), 403},
		{"club missing", apperrors.ErrClubNotFound, 404},
		{"generic missing", apperrors.NewResourceNotFoundError("registration not found"), 404},
		{"duplicate membership", apperrors.ErrMembershipExists, 409},
		{"duplicate registration", apperrors.ErrRegistrationExists, 409},
		{"decision made", apperrors.ErrClubNotPending, 409},
		{"conflict", apperrors.NewConflictError("report generation already in progress"), 409},
		{"past event", apperrors.ErrEventInPast, 422},
		{"upstream", apperrors.NewExternalServiceError("report generation failed"), 502},
		{"unknown", apperrors.NewCustomError(nil, "something unexpected"), 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			HandleAPIError(c, tc.err)
			assert.Equal(t, tc.status, recorder.Code)
		})
	}
}

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "middleware-test-secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "clubsphere.test",
	})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/me", m.JWTAuth(), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})

	// Missing header.
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Garbage token.
	recorder = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Valid token.
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:       7,
		Email:    "deniz@uni.edu",
		RoleType: models.RoleStudent,
	})
	require.NoError(t, err)

	recorder = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"userId":7`)
}

func TestRoleRequired(t *testing.T) {
	m := NewAuthMiddleware(nil)

	router := gin.New()
	router.GET("/admin", func(c *gin.Context) {
		c.Set("roleType", string(models.RoleStudent))
	}, m.RoleRequired(string(models.RoleAdmin)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(1), 2)

	router := gin.New()
	router.GET("/ping", limiter.Handler(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.1.2.3:5555"
		router.ServeHTTP(recorder, req)
		statuses = append(statuses, recorder.Code)
	}

	// Burst of 2 passes, the third is throttled.
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	// A different client has its own bucket.
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.9.9.9:5555"
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
