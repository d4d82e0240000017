package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// CookieWriter sets and clears the session cookie pair with one set of
// attributes: httpOnly, SameSite=Strict, Path=/, Secure in production.
type CookieWriter struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (w CookieWriter) SetSession(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookieName, accessToken, int(w.AccessTTL.Seconds()), "/", "", w.Secure, true)
	c.SetCookie(RefreshCookieName, refreshToken, int(w.RefreshTTL.Seconds()), "/", "", w.Secure, true)
}

// Clear removes both cookies with the same attributes they were set
// with, otherwise browsers keep the originals.
func (w CookieWriter) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookieName, "", -1, "/", "", w.Secure, true)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", w.Secure, true)
}
