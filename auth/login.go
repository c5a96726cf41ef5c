package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/models"
)

// POST /auth/session
//
// Exchanges a provider-issued ID token for the session cookie and upserts the
// user record. Cart reconciliation is a separate call the client makes after
// login, so nothing cart-related happens here.
func LoginHandler(svc *Service, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "idToken is required"})
			return
		}

		cookie, tok, err := svc.MintSession(c.Request.Context(), req.IDToken)
		if err != nil {
			log.Printf("❌ ID token verification failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or revoked ID token"})
			return
		}

		claims := claimsFromToken(tok)
		name, _ := tok.Claims["name"].(string)
		picture, _ := tok.Claims["picture"].(string)

		var user models.User
		err = db.Where("id = ?", claims.UID).First(&user).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			user = models.User{
				ID:       claims.UID,
				Email:    claims.Email,
				Name:     name,
				Picture:  picture,
				Provider: "google",
				Role:     models.RoleCustomer,
			}
			if err := db.Create(&user).Error; err != nil {
				log.Printf("❌ Failed to create user %s: %v", claims.UID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create user, please try again"})
				return
			}
		case err == nil:
			// Returning user, refresh the provider profile fields.
			if err := db.Model(&user).Updates(models.User{Name: name, Picture: picture}).Error; err != nil {
				log.Printf("❌ Failed to refresh profile for %s: %v", claims.UID, err)
			}
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load user, please try again"})
			return
		}

		SetSessionCookie(c, cookie)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    user,
			"role":    claims.Role,
		})
	}
}

// POST /auth/logout
//
// Clears the cookie only. The server-side cart is left intact so it can be
// merged again on the next login.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ClearSessionCookie(c)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
