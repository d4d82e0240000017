package middleware

import (
	"context"
	"errors"
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/modules/auth"
	jwtsvc "taskboard/internal/pkg/jwt"
	"taskboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// ContextUserKey and ContextUserIDKey are where Session leaves the
// authenticated identity for downstream handlers.
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

type accessTokenParser interface {
	ParseAccessToken(tokenStr string) (*jwtsvc.Claims, error)
}

type sessionService interface {
	Refresh(ctx context.Context, refreshRaw string) (*auth.Result, error)
	GetSessionUser(ctx context.Context, userID int64) (*domain.User, error)
}

// Session gates every protected endpoint on the cookie pair.
//
// Missing access cookie + present refresh cookie triggers a silent
// refresh, and the response carries freshly set cookies. A present but
// invalid or expired access cookie fails closed without falling back to
// the refresh token: a tampered or skewed access token must not extend
// the session.
func Session(tokens accessTokenParser, sessions sessionService, cookies auth.CookieWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessRaw, err := c.Cookie(auth.AccessCookieName)
		if err != nil || accessRaw == "" {
			refreshRaw, err := c.Cookie(auth.RefreshCookieName)
			if err != nil || refreshRaw == "" {
				response.AbortError(c, http.StatusUnauthorized, "Unauthorized request")
				return
			}

			result, err := sessions.Refresh(c.Request.Context(), refreshRaw)
			if err != nil {
				if errors.Is(err, auth.ErrRefreshTokenMismatch) {
					response.AbortError(c, http.StatusForbidden, "Token mismatch or expired")
					return
				}
				response.AbortError(c, http.StatusUnauthorized, "Invalid or expired refresh token")
				return
			}

			cookies.SetSession(c, result.AccessToken, result.RefreshToken)
			attachUser(c, result.User)
			c.Next()
			return
		}

		claims, err := tokens.ParseAccessToken(accessRaw)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid access token")
			return
		}

		user, err := sessions.GetSessionUser(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid access token")
			return
		}

		attachUser(c, user)
		c.Next()
	}
}

func attachUser(c *gin.Context, user *domain.User) {
	c.Set(ContextUserIDKey, user.ID)
	c.Set(ContextUserKey, user)
}

// CurrentUserID reads the identity attached by Session; zero means the
// middleware did not run.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserIDKey)
}

func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
