package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskboard/internal/domain"
	"taskboard/internal/modules/auth"
	jwtsvc "taskboard/internal/pkg/jwt"
)

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) Refresh(ctx context.Context, refreshRaw string) (*auth.Result, error) {
	args := m.Called(ctx, refreshRaw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Result), args.Error(1)
}

func (m *mockSessionService) GetSessionUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newTokens(t *testing.T) *jwtsvc.Service {
	svc, err := jwtsvc.New(jwtsvc.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func newRouter(tokens *jwtsvc.Service, sessions *mockSessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(tokens, sessions, auth.CookieWriter{AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour}))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	})
	return r
}

func addCookie(req *http.Request, name, value string) {
	req.AddCookie(&http.Cookie{Name: name, Value: value})
}

func TestSession_NoCookies(t *testing.T) {
	sessions := new(mockSessionService)
	router := newRouter(newTokens(t), sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_ValidAccessToken(t *testing.T) {
	tokens := newTokens(t)
	sessions := new(mockSessionService)

	accessToken, err := tokens.GenerateAccessToken(42)
	require.NoError(t, err)
	sessions.On("GetSessionUser", mock.Anything, int64(42)).
		Return(&domain.User{ID: 42, Name: "Ada"}, nil)

	router := newRouter(tokens, sessions)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	addCookie(req, auth.AccessCookieName, accessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestSession_TamperedAccessToken_FailsClosed(t *testing.T) {
	tokens := newTokens(t)
	sessions := new(mockSessionService)

	accessToken, err := tokens.GenerateAccessToken(42)
	require.NoError(t, err)
	refreshToken, err := tokens.GenerateRefreshToken(42)
	require.NoError(t, err)

	router := newRouter(tokens, sessions)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	addCookie(req, auth.AccessCookieName, accessToken+"tampered")
	addCookie(req, auth.RefreshCookieName, refreshToken)
	router.ServeHTTP(w, req)

	// A present-but-invalid access token must not fall back to the
	// refresh token.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	sessions.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestSession_ExpiredAccessToken_FailsClosed(t *testing.T) {
	tokens := newTokens(t)
	sessions := new(mockSessionService)

	expired, err := jwtsvc.New(jwtsvc.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Nanosecond,
		RefreshTTL:    24 * time.Hour,
	})
	require.NoError(t, err)
	accessToken, err := expired.GenerateAccessToken(42)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	router := newRouter(tokens, sessions)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	addCookie(req, auth.AccessCookieName, accessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_SilentRefresh(t *testing.T) {
	tokens := newTokens(t)
	sessions := new(mockSessionService)

	refreshToken, err := tokens.GenerateRefreshToken(42)
	require.NoError(t, err)

	sessions.On("Refresh", mock.Anything, refreshToken).Return(&auth.Result{
		User:         &domain.User{ID: 42, Name: "Ada"},
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
	}, nil)

	router := newRouter(tokens, sessions)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	addCookie(req, auth.RefreshCookieName, refreshToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")

	// The response must carry the rotated cookie pair.
	cookies := w.Result().Cookies()
	values := map[string]string{}
	for _, c := range cookies {
		values[c.Name] = c.Value
	}
	assert.Equal(t, "new-access", values[auth.AccessCookieName])
	assert.Equal(t, "new-refresh", values[auth.RefreshCookieName])
}

func TestSession_SilentRefresh_Invalid(t *testing.T) {
	tokens := newTokens(t)
	sessions := new(mockSessionService)

	sessions.On("Refresh", mock.Anything, "stale").Return(nil, auth.ErrInvalidRefreshToken)

	router := newRouter(tokens, sessions)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	addCookie(req, auth.RefreshCookieName, "stale")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_SilentRefresh_Mismatch(t *testing.T) {
	tokens := newTokens(t)
	sessions := new(mockSessionService)

	sessions.On("Refresh", mock.Anything, "replayed").Return(nil, auth.ErrRefreshTokenMismatch)

	router := newRouter(tokens, sessions)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	addCookie(req, auth.RefreshCookieName, "replayed")
	router.ServeHTTP(w, req)

	// Replay of a rotated token signals reuse, not plain absence.
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSession_UserDeleted(t *testing.T) {
	tokens := newTokens(t)
	sessions := new(mockSessionService)

	accessToken, err := tokens.GenerateAccessToken(42)
	require.NoError(t, err)
	sessions.On("GetSessionUser", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	router := newRouter(tokens, sessions)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	addCookie(req, auth.AccessCookieName, accessToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
