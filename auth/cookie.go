package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// CookieSettings fixes one cookie policy for every place the session
// cookie is written: HttpOnly, SameSite=Strict, Secure per deployment.
type CookieSettings struct {
	Domain string
	Secure bool
}

func (s CookieSettings) SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, int(SessionDuration.Seconds()), "/", s.Domain, s.Secure, true)
}

func (s CookieSettings) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", s.Domain, s.Secure, true)
}
