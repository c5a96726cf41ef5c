package auth

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie the session credential travels in.
const SessionCookieName = "session"

// SetSessionCookie writes the session credential to the response.
func SetSessionCookie(c *gin.Context, value string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secureCookies(),
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secureCookies(),
	})
}

func secureCookies() bool {
	return os.Getenv("APP_ENV") != "development"
}
