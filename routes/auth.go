package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/batibatii/textilecom-sub000/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/session", auth.LoginHandler(d.Auth, d.DB))
		authGroup.POST("/logout", auth.LogoutHandler())
	}
}
