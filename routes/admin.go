package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/batibatii/textilecom-sub000/controllers/admin"
	cartControllers "github.com/batibatii/textilecom-sub000/controllers/cart"
	orderControllers "github.com/batibatii/textilecom-sub000/controllers/order"
	productControllers "github.com/batibatii/textilecom-sub000/controllers/product"
	userControllers "github.com/batibatii/textilecom-sub000/controllers/user"
	"github.com/batibatii/textilecom-sub000/middleware"
	"github.com/batibatii/textilecom-sub000/models"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. The role is re-read
// from the database on every request, not taken from the session snapshot.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireSession(d.Auth))
	adminGroup.Use(middleware.RequireRole(d.DB, models.RoleAdmin, models.RoleSuperAdmin))
	{
		// ─────────── Admin & User Management ───────────
		adminGroup.GET("/admins", adminController.GetAllAdmins(d.DB))
		adminGroup.GET("/users", userControllers.GetAllUsers(d.DB))
		adminGroup.DELETE("/users/:user_id", userControllers.DeleteUser(d.DB))

		// Role changes are reserved for the super admin.
		adminGroup.PUT("/users/:user_id/role",
			middleware.RequireRole(d.DB, models.RoleSuperAdmin),
			adminController.ChangeUserRole(d.DB, d.Auth),
		)

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(d.DB, d.Products))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(d.DB, d.Products))
			productAdmin.GET("", productControllers.GetProducts(d.DB, d.Products))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(d.DB, d.Products))
			productAdmin.POST("/import-excel", productControllers.ImportProductsFromExcel(d.DB, d.Products))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(d.DB))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productControllers.CreateCategory(d.DB))
			categoryAdmin.PUT("/:id", productControllers.UpdateCategory(d.DB))
			categoryAdmin.GET("", productControllers.GetAllCategories(d.DB))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(d.DB))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(d.DB))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(d.DB))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(d.DB))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(d.DB))
		}

		// websocket endpoint for real-time order updates
		adminGroup.GET("/ws/orders", d.Orders.Handler())

		// ─────────── Customer Cart Inspection ───────────
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(d.Carts))
	}
}
