package checkoutControllers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/models"
	"github.com/batibatii/textilecom-sub000/payment"
)

// SessionCreator starts a hosted payment session. Satisfied by
// payment.Gateway.
type SessionCreator interface {
	CreateSession(ctx context.Context, cartID string, items []payment.LineItem, customer models.User) (*payment.Session, error)
}

type CheckoutItem struct {
	PriceRef string `json:"priceRef" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type checkoutRequest struct {
	Items []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

// POST /checkout
//
// Orchestrates a hosted payment session: verify session, require a complete
// shipping address, hand the pre-registered price references to the gateway,
// return the redirect URL. No money amount is computed here; pricing belongs
// to the gateway once a price reference exists.
//
// Every call creates a new payment session. Callers must not invoke this
// speculatively or retry it blindly.
func HandleCheckout(db *gorm.DB, gw SessionCreator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid checkout payload"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		// Never start a payment for an undeliverable order.
		if !user.Address.Complete() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"code":    "no_address",
				"error":   "A complete shipping address is required before checkout",
			})
			return
		}

		lines := make([]payment.LineItem, 0, len(req.Items))
		for _, it := range req.Items {
			lines = append(lines, payment.LineItem{PriceRef: it.PriceRef, Quantity: it.Quantity})
		}

		cartID := uuid.NewString()
		sess, err := gw.CreateSession(c.Request.Context(), cartID, lines, user)
		if err != nil {
			// The gateway message is actionable for support, surface it.
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
			return
		}

		// Link the session to the user so the webhook can materialize the
		// order from this user's cart.
		record := models.CheckoutSession{SessionID: sess.ID, UserID: userID}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("❌ Failed to record checkout session %s: %v", sess.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to start checkout, please try again"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"url":        sess.URL,
			"session_id": sess.ID,
		})
	}
}
