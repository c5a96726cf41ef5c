package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/auth"
	"github.com/batibatii/textilecom-sub000/models"
)

var gatedPrefixes = []string{"/admin", "/cart", "/checkout"}

// RouteGate protects the page-level path prefixes. Anonymous visitors are
// sent to the sign-in page with the requested path preserved in a redirect
// query parameter; a credential that fails verification additionally gets its
// cookie cleared; a non-admin on an admin path is sent to the site root.
func RouteGate(v SessionVerifier, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !gatedPath(path) {
			c.Next()
			return
		}

		cookie, err := c.Cookie(auth.SessionCookieName)
		if err != nil {
			redirectToSignIn(c, path)
			return
		}

		claims, err := v.VerifySession(c.Request.Context(), cookie)
		if err != nil {
			// The cookie is stale or revoked; drop it before redirecting.
			auth.ClearSessionCookie(c)
			redirectToSignIn(c, path)
			return
		}

		if strings.HasPrefix(path, "/admin") {
			var user models.User
			if err := db.Select("role").First(&user, "id = ?", claims.UID).Error; err != nil ||
				!user.Role.Can(models.CapViewAdminPanel) {
				c.Redirect(http.StatusFound, "/")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UID)
		c.Set("email", claims.Email)
		c.Set("session_role", string(claims.Role))
		c.Next()
	}
}

func gatedPath(path string) bool {
	for _, p := range gatedPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func redirectToSignIn(c *gin.Context, from string) {
	c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(from))
	c.Abort()
}
