package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/auth"
	"github.com/batibatii/textilecom-sub000/models"
)

// SessionVerifier validates a session credential and returns its claims.
// Satisfied by auth.Service.
type SessionVerifier interface {
	VerifySession(ctx context.Context, cookie string) (auth.Claims, error)
}

// RequireSession gates JSON API routes. A missing and an invalid credential
// get the same answer so callers can't tell whether a stale cookie existed.
func RequireSession(v SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// RouteGate may already have verified this request.
		if c.GetString("user_id") != "" {
			c.Next()
			return
		}

		cookie, err := c.Cookie(auth.SessionCookieName)
		if err != nil {
			cookie = ""
		}

		claims, err := v.VerifySession(c.Request.Context(), cookie)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UID)
		c.Set("email", claims.Email)
		c.Set("session_role", string(claims.Role))
		c.Next()
	}
}

// RequireRole gates privileged routes. The role is re-read from the database
// rather than taken from the session snapshot, so a role change takes effect
// inside a still-valid session window. Any lookup error fails closed.
func RequireRole(db *gorm.DB, allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Select("role").First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		for _, r := range allowed {
			if user.Role == r {
				c.Set("role", string(user.Role))
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}
