package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/batibatii/textilecom-sub000/controllers/order"
	"github.com/batibatii/textilecom-sub000/middleware"
)

// SetupPaymentRoutes registers the payment gateway webhook. Order creation
// happens here, asynchronously, never in the checkout call.
func SetupPaymentRoutes(r *gin.Engine, d Deps) {
	paymentGroup := r.Group("/payment")
	{
		paymentGroup.POST("/webhook",
			middleware.PaymentWebhookAuth(),
			orderControllers.PaymentWebhookHandler(d.DB, d.Orders),
		)
	}
}
