package adminController

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/auth"
	"github.com/batibatii/textilecom-sub000/models"
)

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// PUT /admin/users/:user_id/role
//
// Persists the new role, stamps the role claim for future sessions, and then
// revokes every live session for the user. Without the revocation a demoted
// admin would keep admin access until their session expired.
func ChangeUserRole(db *gorm.DB, svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		var req ChangeRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "role is required"})
			return
		}

		role := models.Role(req.Role)
		switch role {
		case models.RoleCustomer, models.RoleAdmin, models.RoleSuperAdmin:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid role"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if err := db.Model(&user).Update("role", role).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
			return
		}

		ctx := c.Request.Context()
		if err := svc.SetRoleClaim(ctx, userID, role); err != nil {
			log.Printf("❌ Failed to set role claim for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to propagate role change"})
			return
		}
		if err := svc.RevokeSessions(ctx, userID); err != nil {
			log.Printf("❌ Failed to revoke sessions for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Role updated but sessions could not be revoked"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Role updated", "user_id": userID, "role": role})
	}
}

// GET /admin/admins
func GetAllAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admins []models.User
		if err := db.
			Select("id", "email", "name", "picture", "role", "created_at").
			Where("role IN ?", []models.Role{models.RoleAdmin, models.RoleSuperAdmin}).
			Find(&admins).Error; err != nil {
			log.Println("❌ Failed to fetch admins:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admins"})
			return
		}

		c.JSON(http.StatusOK, admins)
	}
}
