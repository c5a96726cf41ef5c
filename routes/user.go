package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/batibatii/textilecom-sub000/controllers/cart"
	checkoutControllers "github.com/batibatii/textilecom-sub000/controllers/checkout"
	orderControllers "github.com/batibatii/textilecom-sub000/controllers/order"
	userControllers "github.com/batibatii/textilecom-sub000/controllers/user"
	"github.com/batibatii/textilecom-sub000/middleware"
)

// SetupUserRoutes registers the session-protected storefront endpoints.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	// ──────────────── User Profile ────────────────
	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireSession(d.Auth))
	{
		userGroup.GET("/", userControllers.GetUser(d.DB))
		userGroup.PUT("/", userControllers.UpdateUser(d.DB))
	}

	// ──────────────── Shopping Cart ────────────────
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.RequireSession(d.Auth))
	{
		cartGroup.GET("", cartControllers.GetUserCart(d.Carts))
		cartGroup.PUT("", cartControllers.SaveUserCart(d.Carts))
		cartGroup.DELETE("", cartControllers.ClearUserCart(d.Carts))
		cartGroup.POST("/merge", cartControllers.MergeUserCart(d.Carts))
	}

	// ──────────────── Checkout ────────────────
	checkoutGroup := r.Group("/checkout")
	checkoutGroup.Use(middleware.RequireSession(d.Auth))
	{
		checkoutGroup.POST("", checkoutControllers.HandleCheckout(d.DB, d.Gateway))
	}

	// ──────────────── Orders ────────────────
	orderGroup := r.Group("/orders")
	orderGroup.Use(middleware.RequireSession(d.Auth))
	{
		orderGroup.GET("", orderControllers.GetUserOrdersHandler(d.DB))
		// Polled after redirect-back from the payment gateway.
		orderGroup.GET("/session/:session_id", orderControllers.GetOrderBySessionHandler(d.DB))
	}
}
