package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/auth"
	"github.com/batibatii/textilecom-sub000/cache"
	orderControllers "github.com/batibatii/textilecom-sub000/controllers/order"
	"github.com/batibatii/textilecom-sub000/payment"
	"github.com/batibatii/textilecom-sub000/store"
)

// Deps carries the services the route handlers need. Constructed once in
// main and passed down explicitly.
type Deps struct {
	DB       *gorm.DB
	Auth     *auth.Service
	Carts    *store.CartStore
	Products cache.ProductCache
	Gateway  *payment.Gateway
	Orders   *orderControllers.Hub
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	// Public auth + storefront browsing (no middleware)
	SetupAuthRoutes(r, d)
	SetupStoreRoutes(r, d)

	// Session-protected user routes
	SetupUserRoutes(r, d)

	// Role-gated admin routes
	SetupAdminRoutes(r, d)

	// Payment gateway webhook
	SetupPaymentRoutes(r, d)
}
